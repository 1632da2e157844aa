package service

import (
	"context"
	"errors"
	"fmt"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
)

type CheckInService struct {
	repo    CheckInRepository
	formula Formula
}

func NewCheckInService(repo CheckInRepository, formula Formula) *CheckInService {
	return &CheckInService{
		repo:    repo,
		formula: formula,
	}
}

// CheckIn validates and records a scan of a challenge's public id.
// Rescans of an already-visited challenge are safe: they return the
// prior outcome with zero points instead of failing or double-scoring.
// Regular challenges must be visited in ascending order; bonus
// challenges are exempt and never advance the sequence.
func (s *CheckInService) CheckIn(ctx context.Context, publicID string, lookup SessionLookup) (*model.CheckInResult, error) {
	challenge, err := s.repo.GetChallengeByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	if challenge.HuntID == nil {
		return nil, ErrChallengeNoHunt
	}

	playerID, err := lookup(*challenge.HuntID)
	if err != nil {
		return nil, err
	}

	player, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	_, err = s.repo.GetCheckIn(ctx, player.ID, challenge.ID)
	if err == nil {
		return alreadyCheckedIn(player.Score), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}

	if !challenge.IsBonus {
		if err := s.validateSequence(ctx, player.ID, challenge); err != nil {
			return nil, err
		}
	}

	points, total, position, err := s.repo.RecordCheckIn(ctx, player.ID, challenge.ID, s.formula.Award)
	if err != nil {
		// A concurrent scan won the insert; collapse to the
		// idempotent path rather than surfacing a conflict.
		if errors.Is(err, repository.ErrAlreadyCheckedIn) {
			current, err := s.repo.GetPlayerByID(ctx, player.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get player: %w", err)
			}
			return alreadyCheckedIn(current.Score), nil
		}
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	return &model.CheckInResult{
		Success:       true,
		PointsAwarded: points,
		TotalPoints:   total,
		Position:      &position,
	}, nil
}

// validateSequence requires the target to be the next regular challenge
// in the player's ordering: order 0 for a first scan, highest checked
// order + 1 afterwards.
func (s *CheckInService) validateSequence(ctx context.Context, playerID int64, challenge *model.Challenge) error {
	highest, err := s.repo.GetHighestCheckedOrder(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get highest checked order: %w", err)
	}

	expected := 0
	if highest != nil {
		expected = *highest + 1
	}

	if challenge.OrderValue() != expected {
		return ErrOutOfSequence
	}

	return nil
}

func alreadyCheckedIn(score int) *model.CheckInResult {
	return &model.CheckInResult{
		Success:          true,
		AlreadyCheckedIn: true,
		PointsAwarded:    0,
		TotalPoints:      score,
	}
}
