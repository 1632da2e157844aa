package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"

	"github.com/google/uuid"
)

type ChallengeService struct {
	repo ChallengeRepository
}

func NewChallengeService(repo ChallengeRepository) *ChallengeService {
	return &ChallengeService{
		repo: repo,
	}
}

// Create appends a challenge to the hunt. Regular challenges take the
// next free order slot; bonus challenges stay unordered. The public
// scan id is generated here and immutable afterwards.
func (s *ChallengeService) Create(ctx context.Context, shortCode string, ch *model.Challenge) (*model.Challenge, error) {
	hunt, err := s.resolveHunt(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	ch.HuntID = &hunt.ID
	ch.PublicID = uuid.New().String()
	ch.Name = strings.TrimSpace(ch.Name)
	if ch.Content != nil {
		trimmed := strings.TrimSpace(*ch.Content)
		ch.Content = &trimmed
	}

	created, err := s.repo.CreateChallenge(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return created, nil
}

func (s *ChallengeService) GetByPublicID(ctx context.Context, publicID string) (*model.Challenge, error) {
	challenge, err := s.repo.GetChallengeByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return challenge, nil
}

func (s *ChallengeService) List(ctx context.Context, shortCode string) ([]*model.Challenge, error) {
	hunt, err := s.resolveHunt(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	challenges, err := s.repo.GetChallengesByHunt(ctx, hunt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	return challenges, nil
}

func (s *ChallengeService) Update(ctx context.Context, shortCode string, challengeID int64, name, content *string) (*model.Challenge, error) {
	hunt, err := s.resolveHunt(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if name == nil && content == nil {
		challenge, err := s.repo.GetChallengeByID(ctx, hunt.ID, challengeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrChallengeNotFound
			}
			return nil, fmt.Errorf("failed to get challenge: %w", err)
		}
		return challenge, nil
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
	}
	if content != nil {
		trimmed := strings.TrimSpace(*content)
		content = &trimmed
	}

	challenge, err := s.repo.UpdateChallenge(ctx, hunt.ID, challengeID, name, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}

	return challenge, nil
}

func (s *ChallengeService) Delete(ctx context.Context, shortCode string, challengeID int64) error {
	hunt, err := s.resolveHunt(ctx, shortCode)
	if err != nil {
		return err
	}

	err = s.repo.DeleteChallenge(ctx, hunt.ID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrChallengeNotFound
		case errors.Is(err, repository.ErrChallengeInUse):
			return ErrChallengeInUse
		}
		return fmt.Errorf("failed to delete challenge: %w", err)
	}

	return nil
}

// Reorder reassigns order = index over the given permutation, which
// must cover the hunt's regular challenges exactly, with no duplicates
// and no foreign or missing ids. The repository applies it atomically.
func (s *ChallengeService) Reorder(ctx context.Context, shortCode string, challengeIDs []int64) ([]*model.Challenge, error) {
	if len(challengeIDs) == 0 {
		return nil, ErrInvalidReorder
	}

	hunt, err := s.resolveHunt(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(challengeIDs))
	for _, id := range challengeIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrInvalidReorder
		}
		seen[id] = struct{}{}
	}

	reordered, err := s.repo.ReorderChallenges(ctx, hunt.ID, challengeIDs)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeSetMismatch) {
			return nil, ErrInvalidReorder
		}
		return nil, fmt.Errorf("failed to reorder challenges: %w", err)
	}

	return reordered, nil
}

func (s *ChallengeService) resolveHunt(ctx context.Context, shortCode string) (*model.Hunt, error) {
	hunt, err := s.repo.GetHuntByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}
	return hunt, nil
}
