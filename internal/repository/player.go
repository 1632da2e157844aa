package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trailhunt/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Player struct {
	ID          int64  `db:"id"`
	HuntID      int64  `db:"hunt_id"`
	Name        string `db:"name"`
	Score       int    `db:"score"`
	IsCompleted bool   `db:"is_completed"`
}

func (p *Player) toModel() *model.Player {
	return &model.Player{
		ID:          p.ID,
		HuntID:      p.HuntID,
		Name:        p.Name,
		Score:       p.Score,
		IsCompleted: p.IsCompleted,
	}
}

// CreatePlayer registers a player in a hunt and, when the hunt has a
// regular challenge at order 0, records their starting check-in for it
// with no points. Both writes share one transaction.
func (r *Repository) CreatePlayer(ctx context.Context, huntID int64, name string) (*model.Player, error) {
	var player Player

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("players").
			SetMap(map[string]interface{}{
				"hunt_id": huntID,
				"name":    name,
				"score":   0,
			}).
			Suffix("RETURNING id, hunt_id, name, score, is_completed").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build player insert query: %w", err)
		}

		if err := tx.GetContext(ctx, &player, query, args...); err != nil {
			return fmt.Errorf("failed to insert player: %w", err)
		}

		firstQuery, firstArgs, err := squirrel.
			Select("id").
			From("challenges").
			Where(squirrel.Eq{"hunt_id": huntID, "is_bonus": false}).
			Where(squirrel.Or{squirrel.Eq{`"order"`: 0}, squirrel.Eq{`"order"`: nil}}).
			OrderBy(`"order" ASC NULLS LAST`).
			Limit(1).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build first challenge query: %w", err)
		}

		var firstChallengeID int64
		err = tx.GetContext(ctx, &firstChallengeID, firstQuery, firstArgs...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		checkInQuery, checkInArgs, err := squirrel.
			Insert("check_ins").
			SetMap(map[string]interface{}{
				"player_id":    player.ID,
				"challenge_id": firstChallengeID,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build starting check-in query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, checkInQuery, checkInArgs...); err != nil {
			return fmt.Errorf("failed to insert starting check-in: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return player.toModel(), nil
}

func (r *Repository) GetPlayerByID(ctx context.Context, playerID int64) (*model.Player, error) {
	query, args, err := squirrel.
		Select("id", "hunt_id", "name", "score", "is_completed").
		From("players").
		Where(squirrel.Eq{"id": playerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var player Player
	err = r.db.GetContext(ctx, &player, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return player.toModel(), nil
}

// DeleteHuntPlayers removes every player of a hunt; their check-ins go
// with them via the cascade on check_ins.player_id.
func (r *Repository) DeleteHuntPlayers(ctx context.Context, huntID int64) error {
	query, args, err := squirrel.
		Delete("players").
		Where(squirrel.Eq{"hunt_id": huntID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) GetLeaderboard(ctx context.Context, huntID int64, limit int) ([]*model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select("id", "name", "score").
		From("players").
		Where(squirrel.Eq{"hunt_id": huntID}).
		OrderBy("score DESC", "id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID    int64  `db:"id"`
		Name  string `db:"name"`
		Score int    `db:"score"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = &model.LeaderboardEntry{
			ID:    row.ID,
			Name:  row.Name,
			Score: row.Score,
		}
	}

	return entries, nil
}
