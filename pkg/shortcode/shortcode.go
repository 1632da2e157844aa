// Package shortcode generates human-shareable hunt codes of the
// adjective-noun-verb form, e.g. "brave-otter-jumps". Codes are not
// guaranteed unique; callers retry on collision.
package shortcode

import (
	"math/rand"
	"strings"
)

var adjectives = []string{
	"brave", "calm", "clever", "eager", "fancy", "gentle", "happy",
	"jolly", "kind", "lively", "merry", "nice", "proud", "quick",
	"shiny", "silly", "smart", "sunny", "swift", "witty",
}

var nouns = []string{
	"badger", "beaver", "crow", "deer", "falcon", "fox", "hare",
	"heron", "lynx", "marten", "otter", "owl", "raven", "robin",
	"salmon", "seal", "stork", "swan", "trout", "wolf",
}

var verbs = []string{
	"climbs", "dances", "dives", "dreams", "drifts", "flies",
	"gallops", "glides", "hops", "hums", "jumps", "leaps", "naps",
	"roams", "runs", "sings", "skips", "swims", "wanders", "waves",
}

func Generate() string {
	parts := []string{
		adjectives[rand.Intn(len(adjectives))],
		nouns[rand.Intn(len(nouns))],
		verbs[rand.Intn(len(verbs))],
	}
	return strings.Join(parts, "-")
}
