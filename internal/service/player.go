package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trailhunt/internal/model"
	"trailhunt/internal/repository"
)

type PlayerService struct {
	repo PlayerRepository
}

func NewPlayerService(repo PlayerRepository) *PlayerService {
	return &PlayerService{
		repo: repo,
	}
}

// Join registers a player in the hunt named by shortCode. The
// repository also records their starting check-in for the order-0
// challenge, so the player's next scan must be order 1.
func (s *PlayerService) Join(ctx context.Context, shortCode, name string) (*model.Player, error) {
	hunt, err := s.repo.GetHuntByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHuntNotFound
		}
		return nil, fmt.Errorf("failed to get hunt: %w", err)
	}

	player, err := s.repo.CreatePlayer(ctx, hunt.ID, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (*model.Player, error) {
	player, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

func (s *PlayerService) DeleteAll(ctx context.Context, shortCode string) error {
	hunt, err := s.repo.GetHuntByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHuntNotFound
		}
		return fmt.Errorf("failed to get hunt: %w", err)
	}

	if err := s.repo.DeleteHuntPlayers(ctx, hunt.ID); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}

	return nil
}
