package service

import (
	"context"
	"testing"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
	"trailhunt/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLeaderboardService_Leaderboard(t *testing.T) {
	hunt := &model.Hunt{ID: 5, ShortCode: "brave-otter-jumps", Name: "city hunt"}
	entries := []*model.LeaderboardEntry{
		{ID: 2, Name: "ada", Score: 30},
		{ID: 1, Name: "grace", Score: 20},
	}

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "Default limit when unset", limit: 0, expectedLimit: 50},
		{name: "Explicit limit passes through", limit: 10, expectedLimit: 10},
		{name: "Oversized limit is capped", limit: 500, expectedLimit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockLeaderboardRepository{}
			repo.On("GetHuntByID", mock.Anything, int64(5)).Return(hunt, nil)
			repo.On("GetLeaderboard", mock.Anything, int64(5), tt.expectedLimit).
				Return(entries, nil)

			svc := NewLeaderboardService(repo, &scriptedRoller{})
			got, err := svc.Leaderboard(context.Background(), 5, tt.limit)

			assert.NoError(t, err)
			assert.Equal(t, entries, got)
			repo.AssertExpectations(t)
		})
	}

	t.Run("Unknown hunt", func(t *testing.T) {
		repo := &mocks.MockLeaderboardRepository{}
		repo.On("GetHuntByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

		svc := NewLeaderboardService(repo, &scriptedRoller{})
		_, err := svc.Leaderboard(context.Background(), 9, 0)

		assert.ErrorIs(t, err, ErrHuntNotFound)
	})
}

func TestLeaderboardService_ChooseWinner(t *testing.T) {
	last := regularChallenge(30, 5, 2)
	finishers := []*model.LeaderboardEntry{
		{ID: 1, Name: "grace", Score: 40},
		{ID: 2, Name: "ada", Score: 55},
		{ID: 3, Name: "joan", Score: 37},
	}

	t.Run("Winner comes from the finisher set", func(t *testing.T) {
		repo := &mocks.MockLeaderboardRepository{}
		repo.On("GetLastRegularChallenge", mock.Anything, int64(5)).Return(last, nil)
		repo.On("GetFinishers", mock.Anything, int64(30)).Return(finishers, nil)

		svc := NewLeaderboardService(repo, &scriptedRoller{ints: []int{1}})
		winner, err := svc.ChooseWinner(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, finishers[1], winner)
		repo.AssertExpectations(t)
	})

	t.Run("No regular challenges", func(t *testing.T) {
		repo := &mocks.MockLeaderboardRepository{}
		repo.On("GetLastRegularChallenge", mock.Anything, int64(5)).
			Return(nil, repository.ErrNotFound)

		svc := NewLeaderboardService(repo, &scriptedRoller{})
		_, err := svc.ChooseWinner(context.Background(), 5)

		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("No finishers", func(t *testing.T) {
		repo := &mocks.MockLeaderboardRepository{}
		repo.On("GetLastRegularChallenge", mock.Anything, int64(5)).Return(last, nil)
		repo.On("GetFinishers", mock.Anything, int64(30)).
			Return([]*model.LeaderboardEntry{}, nil)

		svc := NewLeaderboardService(repo, &scriptedRoller{})
		_, err := svc.ChooseWinner(context.Background(), 5)

		assert.ErrorIs(t, err, ErrNoFinishers)
	})
}
