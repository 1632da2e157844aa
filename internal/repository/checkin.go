package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trailhunt/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type CheckIn struct {
	ID          int64     `db:"id"`
	PlayerID    int64     `db:"player_id"`
	ChallengeID int64     `db:"challenge_id"`
	CheckedInAt time.Time `db:"checked_in_at"`
}

func (r *Repository) GetCheckIn(ctx context.Context, playerID, challengeID int64) (*model.CheckIn, error) {
	query, args, err := squirrel.
		Select("id", "player_id", "challenge_id", "checked_in_at").
		From("check_ins").
		Where(squirrel.Eq{"player_id": playerID, "challenge_id": challengeID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var checkIn CheckIn
	err = r.db.GetContext(ctx, &checkIn, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.CheckIn{
		ID:          checkIn.ID,
		PlayerID:    checkIn.PlayerID,
		ChallengeID: checkIn.ChallengeID,
		CheckedInAt: checkIn.CheckedInAt,
	}, nil
}

// RecordCheckIn persists an admissible check-in as one transaction:
// it counts prior arrivals at the challenge to derive the player's
// position, awards points through the given formula, inserts the
// check-in and adds the points to the player's score. The challenge
// row is locked first so two concurrent check-ins cannot observe the
// same position. A unique violation on (player_id, challenge_id)
// surfaces as ErrAlreadyCheckedIn and leaves nothing written.
func (r *Repository) RecordCheckIn(ctx context.Context, playerID, challengeID int64, award func(position int) int) (points, total, position int, err error) {
	err = r.Transaction(ctx, func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := squirrel.
			Select("id").
			From("challenges").
			Where(squirrel.Eq{"id": challengeID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var lockedID int64
		if err := tx.GetContext(ctx, &lockedID, lockQuery, lockArgs...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		countQuery, countArgs, err := squirrel.
			Select("COUNT(*)").
			From("check_ins").
			Where(squirrel.Eq{"challenge_id": challengeID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var prior int
		if err := tx.GetContext(ctx, &prior, countQuery, countArgs...); err != nil {
			return err
		}
		position = prior + 1
		points = award(position)

		insertQuery, insertArgs, err := squirrel.
			Insert("check_ins").
			SetMap(map[string]interface{}{
				"player_id":    playerID,
				"challenge_id": challengeID,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to insert check-in: %w", err)
		}

		scoreQuery, scoreArgs, err := squirrel.
			Update("players").
			Set("score", squirrel.Expr("score + ?", points)).
			Where(squirrel.Eq{"id": playerID}).
			Suffix("RETURNING score").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &total, scoreQuery, scoreArgs...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		return nil
	})
	if err != nil {
		return 0, 0, 0, err
	}

	return points, total, position, nil
}

// GetFinishers returns the distinct players holding a check-in for the
// given challenge.
func (r *Repository) GetFinishers(ctx context.Context, challengeID int64) ([]*model.LeaderboardEntry, error) {
	query, args, err := squirrel.
		Select("p.id", "p.name", "p.score").
		From("players p").
		InnerJoin("check_ins ci ON ci.player_id = p.id").
		Where(squirrel.Eq{"ci.challenge_id": challengeID}).
		OrderBy("p.id ASC").
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

	finishers := make([]*model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		finishers[i] = &model.LeaderboardEntry{
			ID:    row.ID,
			Name:  row.Name,
			Score: row.Score,
		}
	}

	return finishers, nil
}
