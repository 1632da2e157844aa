package service

import (
	"context"
	"errors"
	"testing"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
	"trailhunt/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fixedFormula struct {
	points int
}

func (f fixedFormula) Award(_ int) int {
	return f.points
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func regularChallenge(id, huntID int64, order int) *model.Challenge {
	return &model.Challenge{
		ID:       id,
		HuntID:   int64Ptr(huntID),
		PublicID: "pub-1",
		Name:     "checkpoint",
		Order:    intPtr(order),
	}
}

func TestCheckInService_CheckIn(t *testing.T) {
	errBadSession := errors.New("invalid player session")

	okLookup := func(playerID int64) SessionLookup {
		return func(huntID int64) (int64, error) {
			return playerID, nil
		}
	}

	tests := []struct {
		name           string
		lookup         SessionLookup
		setupMocks     func(repo *mocks.MockCheckInRepository)
		expectedError  error
		expectedResult *model.CheckInResult
	}{
		{
			name:   "Unknown public id",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrChallengeNotFound,
		},
		{
			name:   "Challenge without hunt",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(&model.Challenge{ID: 10, PublicID: "pub-1"}, nil)
			},
			expectedError: ErrChallengeNoHunt,
		},
		{
			name: "Session lookup fails",
			lookup: func(huntID int64) (int64, error) {
				return 0, errBadSession
			},
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(10, 5, 0), nil)
			},
			expectedError: errBadSession,
		},
		{
			name:   "Player gone",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(10, 5, 0), nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrPlayerNotFound,
		},
		{
			name:   "Rescan returns prior outcome with zero points",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(10, 5, 0), nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5, Score: 42}, nil)
				repo.On("GetCheckIn", mock.Anything, int64(1), int64(10)).
					Return(&model.CheckIn{ID: 7, PlayerID: 1, ChallengeID: 10}, nil)
			},
			expectedResult: &model.CheckInResult{
				Success:          true,
				AlreadyCheckedIn: true,
				PointsAwarded:    0,
				TotalPoints:      42,
			},
		},
		{
			name:   "First scan must be order zero",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(11, 5, 1), nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5}, nil)
				repo.On("GetCheckIn", mock.Anything, int64(1), int64(11)).
					Return(nil, repository.ErrNotFound)
				repo.On("GetHighestCheckedOrder", mock.Anything, int64(1)).
					Return(nil, nil)
			},
			expectedError: ErrOutOfSequence,
		},
		{
			name:   "Skipping ahead is rejected",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(12, 5, 2), nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5}, nil)
				repo.On("GetCheckIn", mock.Anything, int64(1), int64(12)).
					Return(nil, repository.ErrNotFound)
				repo.On("GetHighestCheckedOrder", mock.Anything, int64(1)).
					Return(intPtr(0), nil)
			},
			expectedError: ErrOutOfSequence,
		},
		{
			name:   "Next challenge in sequence scores",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(11, 5, 1), nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5, Score: 12}, nil)
				repo.On("GetCheckIn", mock.Anything, int64(1), int64(11)).
					Return(nil, repository.ErrNotFound)
				repo.On("GetHighestCheckedOrder", mock.Anything, int64(1)).
					Return(intPtr(0), nil)
				repo.On("RecordCheckIn", mock.Anything, int64(1), int64(11), mock.Anything).
					Return(12, 24, 3, nil)
			},
			expectedResult: &model.CheckInResult{
				Success:       true,
				PointsAwarded: 12,
				TotalPoints:   24,
				Position:      intPtr(3),
			},
		},
		{
			name:   "Bonus challenge ignores sequence state",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(&model.Challenge{
						ID:       20,
						HuntID:   int64Ptr(5),
						PublicID: "pub-1",
						IsBonus:  true,
					}, nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5}, nil)
				repo.On("GetCheckIn", mock.Anything, int64(1), int64(20)).
					Return(nil, repository.ErrNotFound)
				repo.On("RecordCheckIn", mock.Anything, int64(1), int64(20), mock.Anything).
					Return(12, 12, 1, nil)
			},
			expectedResult: &model.CheckInResult{
				Success:       true,
				PointsAwarded: 12,
				TotalPoints:   12,
				Position:      intPtr(1),
			},
		},
		{
			name:   "Concurrent duplicate collapses to already checked in",
			lookup: okLookup(1),
			setupMocks: func(repo *mocks.MockCheckInRepository) {
				repo.On("GetChallengeByPublicID", mock.Anything, "pub-1").
					Return(regularChallenge(10, 5, 0), nil)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5, Score: 0}, nil).Once()
				repo.On("GetCheckIn", mock.Anything, int64(1), int64(10)).
					Return(nil, repository.ErrNotFound)
				repo.On("GetHighestCheckedOrder", mock.Anything, int64(1)).
					Return(nil, nil)
				repo.On("RecordCheckIn", mock.Anything, int64(1), int64(10), mock.Anything).
					Return(0, 0, 0, repository.ErrAlreadyCheckedIn)
				repo.On("GetPlayerByID", mock.Anything, int64(1)).
					Return(&model.Player{ID: 1, HuntID: 5, Score: 15}, nil)
			},
			expectedResult: &model.CheckInResult{
				Success:          true,
				AlreadyCheckedIn: true,
				PointsAwarded:    0,
				TotalPoints:      15,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockCheckInRepository{}
			tt.setupMocks(repo)

			svc := NewCheckInService(repo, fixedFormula{points: 12})
			result, err := svc.CheckIn(context.Background(), "pub-1", tt.lookup)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
			repo.AssertExpectations(t)
		})
	}
}
