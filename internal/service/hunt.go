package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
	"trailhunt/pkg/shortcode"
)

const shortCodeAttempts = 10

type HuntService struct {
	repo    HuntRepository
	newCode func() string
}

func NewHuntService(repo HuntRepository) *HuntService {
	return &HuntService{
		repo:    repo,
		newCode: shortcode.Generate,
	}
}

// Create makes a hunt under a freshly generated short code, retrying a
// handful of times when the code collides with an existing hunt.
func (s *HuntService) Create(ctx context.Context, name string) (*model.Hunt, error) {
	name = strings.TrimSpace(name)

	for attempt := 0; attempt < shortCodeAttempts; attempt++ {
		code := s.newCode()

		hunt, err := s.repo.CreateHunt(ctx, name, code)
		if err != nil {
			if errors.Is(err, repository.ErrShortCodeTaken) {
				continue
			}
			return nil, fmt.Errorf("failed to create hunt: %w", err)
		}

		return hunt, nil
	}

	return nil, ErrShortCodeExhausted
}

func (s *HuntService) GetByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error) {
	hunt, err := s.repo.GetHuntByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}
	return hunt, nil
}

func (s *HuntService) GetByID(ctx context.Context, id int64) (*model.Hunt, error) {
	hunt, err := s.repo.GetHuntByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}
	return hunt, nil
}

func (s *HuntService) Update(ctx context.Context, shortCode string, name, guidelines *string) (*model.Hunt, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
	}
	if guidelines != nil {
		trimmed := strings.TrimSpace(*guidelines)
		guidelines = &trimmed
	}

	hunt, err := s.repo.UpdateHunt(ctx, shortCode, name, guidelines)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to update hunt: %w", err)
	}

	return hunt, nil
}
