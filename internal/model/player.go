package model

type Player struct {
	ID          int64
	HuntID      int64
	Name        string
	Score       int
	IsCompleted bool
}

// LeaderboardEntry is the read-only projection returned by leaderboard
// queries and the winner draw.
type LeaderboardEntry struct {
	ID    int64
	Name  string
	Score int
}
