package model

import "time"

// CheckIn records that a player registered at a challenge. At most one
// check-in exists per (player, challenge) pair; rows are never updated.
type CheckIn struct {
	ID          int64
	PlayerID    int64
	ChallengeID int64
	CheckedInAt time.Time
}

// CheckInResult is the outcome of a check-in attempt. Position is nil
// when the call hit the idempotent already-checked-in path.
type CheckInResult struct {
	Success          bool
	AlreadyCheckedIn bool
	PointsAwarded    int
	TotalPoints      int
	Position         *int
}
