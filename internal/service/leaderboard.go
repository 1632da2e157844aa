package service

import (
	"context"
	"errors"
	"fmt"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
)

const defaultLeaderboardLimit = 50

type LeaderboardService struct {
	repo LeaderboardRepository
	rng  Roller
}

func NewLeaderboardService(repo LeaderboardRepository, rng Roller) *LeaderboardService {
	return &LeaderboardService{
		repo: repo,
		rng:  rng,
	}
}

// Leaderboard ranks the hunt's players by score descending, ties broken
// by player id for stable output.
func (s *LeaderboardService) Leaderboard(ctx context.Context, huntID int64, limit int) ([]*model.LeaderboardEntry, error) {
	if _, err := s.repo.GetHuntByID(ctx, huntID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}

	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	entries, err := s.repo.GetLeaderboard(ctx, huntID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return entries, nil
}

// ChooseWinner picks uniformly at random among the players who hold a
// check-in for the hunt's last regular challenge. Nothing is persisted;
// every call re-randomizes.
func (s *LeaderboardService) ChooseWinner(ctx context.Context, huntID int64) (*model.LeaderboardEntry, error) {
	lastChallenge, err := s.repo.GetLastRegularChallenge(ctx, huntID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get last challenge: %w", err)
	}

	finishers, err := s.repo.GetFinishers(ctx, lastChallenge.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get finishers: %w", err)
	}
	if len(finishers) == 0 {
		return nil, ErrNoFinishers
	}

	return finishers[s.rng.Intn(len(finishers))], nil
}
