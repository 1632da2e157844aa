package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()

		parts := strings.Split(code, "-")
		assert.Len(t, parts, 3)
		assert.Equal(t, strings.ToLower(code), code)
		assert.Contains(t, adjectives, parts[0])
		assert.Contains(t, nouns, parts[1])
		assert.Contains(t, verbs, parts[2])
	}
}
