package service

import (
	"context"
	"errors"

	"trailhunt/internal/model"
)

var (
	ErrHuntNotFound       = errors.New("hunt not found")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrChallengeNoHunt    = errors.New("challenge is not associated with a hunt")
	ErrOutOfSequence      = errors.New("challenges must be scanned in order")
	ErrChallengeInUse     = errors.New("challenge has recorded check-ins")
	ErrInvalidReorder     = errors.New("challenge ids do not match the hunt's challenges")
	ErrNoFinishers        = errors.New("no players have completed the last challenge yet")
	ErrShortCodeExhausted = errors.New("failed to generate a unique short code")
)

// SessionLookup resolves the calling player's id for a hunt. The engine
// never sees the credential format; the transport layer adapts whatever
// carries the session (a cookie in practice) to this shape.
type SessionLookup func(huntID int64) (int64, error)

type HuntServiceI interface {
	Create(ctx context.Context, name string) (*model.Hunt, error)
	GetByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error)
	GetByID(ctx context.Context, id int64) (*model.Hunt, error)
	Update(ctx context.Context, shortCode string, name, guidelines *string) (*model.Hunt, error)
}

type HuntRepository interface {
	CreateHunt(ctx context.Context, name, shortCode string) (*model.Hunt, error)
	GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error)
	GetHuntByID(ctx context.Context, id int64) (*model.Hunt, error)
	UpdateHunt(ctx context.Context, shortCode string, name, guidelines *string) (*model.Hunt, error)
}

type ChallengeServiceI interface {
	Create(ctx context.Context, shortCode string, ch *model.Challenge) (*model.Challenge, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.Challenge, error)
	List(ctx context.Context, shortCode string) ([]*model.Challenge, error)
	Update(ctx context.Context, shortCode string, challengeID int64, name, content *string) (*model.Challenge, error)
	Delete(ctx context.Context, shortCode string, challengeID int64) error
	Reorder(ctx context.Context, shortCode string, challengeIDs []int64) ([]*model.Challenge, error)
}

type ChallengeRepository interface {
	CreateChallenge(ctx context.Context, ch *model.Challenge) (*model.Challenge, error)
	GetChallengeByPublicID(ctx context.Context, publicID string) (*model.Challenge, error)
	GetChallengeByID(ctx context.Context, huntID, challengeID int64) (*model.Challenge, error)
	GetChallengesByHunt(ctx context.Context, huntID int64) ([]*model.Challenge, error)
	UpdateChallenge(ctx context.Context, huntID, challengeID int64, name, content *string) (*model.Challenge, error)
	DeleteChallenge(ctx context.Context, huntID, challengeID int64) error
	ReorderChallenges(ctx context.Context, huntID int64, challengeIDs []int64) ([]*model.Challenge, error)
	GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error)
}

type PlayerServiceI interface {
	Join(ctx context.Context, shortCode, name string) (*model.Player, error)
	Get(ctx context.Context, playerID int64) (*model.Player, error)
	DeleteAll(ctx context.Context, shortCode string) error
}

type PlayerRepository interface {
	CreatePlayer(ctx context.Context, huntID int64, name string) (*model.Player, error)
	GetPlayerByID(ctx context.Context, playerID int64) (*model.Player, error)
	DeleteHuntPlayers(ctx context.Context, huntID int64) error
	GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error)
}

type CheckInServiceI interface {
	CheckIn(ctx context.Context, publicID string, lookup SessionLookup) (*model.CheckInResult, error)
}

type CheckInRepository interface {
	GetChallengeByPublicID(ctx context.Context, publicID string) (*model.Challenge, error)
	GetPlayerByID(ctx context.Context, playerID int64) (*model.Player, error)
	GetCheckIn(ctx context.Context, playerID, challengeID int64) (*model.CheckIn, error)
	GetHighestCheckedOrder(ctx context.Context, playerID int64) (*int, error)
	RecordCheckIn(ctx context.Context, playerID, challengeID int64, award func(position int) int) (points, total, position int, err error)
}

type LeaderboardServiceI interface {
	Leaderboard(ctx context.Context, huntID int64, limit int) ([]*model.LeaderboardEntry, error)
	ChooseWinner(ctx context.Context, huntID int64) (*model.LeaderboardEntry, error)
}

type LeaderboardRepository interface {
	GetHuntByID(ctx context.Context, id int64) (*model.Hunt, error)
	GetLeaderboard(ctx context.Context, huntID int64, limit int) ([]*model.LeaderboardEntry, error)
	GetLastRegularChallenge(ctx context.Context, huntID int64) (*model.Challenge, error)
	GetFinishers(ctx context.Context, challengeID int64) ([]*model.LeaderboardEntry, error)
}
