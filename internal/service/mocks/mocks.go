package mocks

import (
	"context"

	"trailhunt/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCheckInRepository struct {
	mock.Mock
}

func (m *MockCheckInRepository) GetChallengeByPublicID(ctx context.Context, publicID string) (*model.Challenge, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockCheckInRepository) GetPlayerByID(ctx context.Context, playerID int64) (*model.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockCheckInRepository) GetCheckIn(ctx context.Context, playerID, challengeID int64) (*model.CheckIn, error) {
	args := m.Called(ctx, playerID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckIn), args.Error(1)
}

func (m *MockCheckInRepository) GetHighestCheckedOrder(ctx context.Context, playerID int64) (*int, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *MockCheckInRepository) RecordCheckIn(ctx context.Context, playerID, challengeID int64, award func(position int) int) (int, int, int, error) {
	args := m.Called(ctx, playerID, challengeID, award)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

type MockHuntRepository struct {
	mock.Mock
}

func (m *MockHuntRepository) CreateHunt(ctx context.Context, name, shortCode string) (*model.Hunt, error) {
	args := m.Called(ctx, name, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

func (m *MockHuntRepository) GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

func (m *MockHuntRepository) GetHuntByID(ctx context.Context, id int64) (*model.Hunt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

func (m *MockHuntRepository) UpdateHunt(ctx context.Context, shortCode string, name, guidelines *string) (*model.Hunt, error) {
	args := m.Called(ctx, shortCode, name, guidelines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) CreateChallenge(ctx context.Context, ch *model.Challenge) (*model.Challenge, error) {
	args := m.Called(ctx, ch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetChallengeByPublicID(ctx context.Context, publicID string) (*model.Challenge, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetChallengeByID(ctx context.Context, huntID, challengeID int64) (*model.Challenge, error) {
	args := m.Called(ctx, huntID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetChallengesByHunt(ctx context.Context, huntID int64) ([]*model.Challenge, error) {
	args := m.Called(ctx, huntID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) UpdateChallenge(ctx context.Context, huntID, challengeID int64, name, content *string) (*model.Challenge, error) {
	args := m.Called(ctx, huntID, challengeID, name, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) DeleteChallenge(ctx context.Context, huntID, challengeID int64) error {
	args := m.Called(ctx, huntID, challengeID)
	return args.Error(0)
}

func (m *MockChallengeRepository) ReorderChallenges(ctx context.Context, huntID int64, challengeIDs []int64) ([]*model.Challenge, error) {
	args := m.Called(ctx, huntID, challengeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) CreatePlayer(ctx context.Context, huntID int64, name string) (*model.Player, error) {
	args := m.Called(ctx, huntID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetPlayerByID(ctx context.Context, playerID int64) (*model.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockPlayerRepository) DeleteHuntPlayers(ctx context.Context, huntID int64) error {
	args := m.Called(ctx, huntID)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) GetHuntByID(ctx context.Context, id int64) (*model.Hunt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hunt), args.Error(1)
}

func (m *MockLeaderboardRepository) GetLeaderboard(ctx context.Context, huntID int64, limit int) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, huntID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardRepository) GetLastRegularChallenge(ctx context.Context, huntID int64) (*model.Challenge, error) {
	args := m.Called(ctx, huntID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Challenge), args.Error(1)
}

func (m *MockLeaderboardRepository) GetFinishers(ctx context.Context, challengeID int64) ([]*model.LeaderboardEntry, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LeaderboardEntry), args.Error(1)
}
