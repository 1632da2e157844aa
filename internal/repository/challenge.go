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

const challengeColumns = `id, hunt_id, public_id, name, content, "order", is_bonus, previous_challenge_id`

type Challenge struct {
	ID                  int64   `db:"id"`
	HuntID              *int64  `db:"hunt_id"`
	PublicID            string  `db:"public_id"`
	Name                string  `db:"name"`
	Content             *string `db:"content"`
	Order               *int    `db:"order"`
	IsBonus             bool    `db:"is_bonus"`
	PreviousChallengeID *int64  `db:"previous_challenge_id"`
}

func (c *Challenge) toModel() *model.Challenge {
	return &model.Challenge{
		ID:                  c.ID,
		HuntID:              c.HuntID,
		PublicID:            c.PublicID,
		Name:                c.Name,
		Content:             c.Content,
		Order:               c.Order,
		IsBonus:             c.IsBonus,
		PreviousChallengeID: c.PreviousChallengeID,
	}
}

// CreateChallenge appends a regular challenge at the end of the hunt's
// sequence, or inserts a bonus challenge with no order. The max-order
// read and the insert share one transaction so two concurrent creates
// cannot claim the same slot.
func (r *Repository) CreateChallenge(ctx context.Context, ch *model.Challenge) (*model.Challenge, error) {
	var created Challenge

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		values := map[string]interface{}{
			"hunt_id":               ch.HuntID,
			"public_id":             ch.PublicID,
			"name":                  ch.Name,
			"content":               ch.Content,
			"is_bonus":              ch.IsBonus,
			"previous_challenge_id": ch.PreviousChallengeID,
		}

		if !ch.IsBonus {
			query, args, err := squirrel.
				Select(`COALESCE(MAX("order") + 1, 0)`).
				From("challenges").
				Where(squirrel.Eq{"hunt_id": ch.HuntID, "is_bonus": false}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build max order query: %w", err)
			}

			var nextOrder int
			if err := tx.GetContext(ctx, &nextOrder, query, args...); err != nil {
				return fmt.Errorf("failed to get next order: %w", err)
			}
			values["order"] = nextOrder
		}

		query, args, err := squirrel.
			Insert("challenges").
			SetMap(values).
			Suffix("RETURNING " + challengeColumns).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build challenge insert query: %w", err)
		}

		if err := tx.GetContext(ctx, &created, query, args...); err != nil {
			return fmt.Errorf("failed to insert challenge: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created.toModel(), nil
}

func (r *Repository) GetChallengeByPublicID(ctx context.Context, publicID string) (*model.Challenge, error) {
	return r.getChallenge(ctx, squirrel.Eq{"public_id": publicID})
}

func (r *Repository) GetChallengeByID(ctx context.Context, huntID, challengeID int64) (*model.Challenge, error) {
	return r.getChallenge(ctx, squirrel.Eq{"id": challengeID, "hunt_id": huntID})
}

func (r *Repository) getChallenge(ctx context.Context, pred squirrel.Eq) (*model.Challenge, error) {
	query, args, err := squirrel.
		Select(challengeColumns).
		From("challenges").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ch Challenge
	err = r.db.GetContext(ctx, &ch, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ch.toModel(), nil
}

// GetChallengesByHunt returns the hunt's challenges with regular ones
// first (ascending order), bonus ones after in creation order.
func (r *Repository) GetChallengesByHunt(ctx context.Context, huntID int64) ([]*model.Challenge, error) {
	query, args, err := squirrel.
		Select(challengeColumns).
		From("challenges").
		Where(squirrel.Eq{"hunt_id": huntID}).
		OrderBy("is_bonus ASC", `"order" ASC NULLS LAST`, "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []Challenge
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, len(rows))
	for i := range rows {
		challenges[i] = rows[i].toModel()
	}

	return challenges, nil
}

func (r *Repository) UpdateChallenge(ctx context.Context, huntID, challengeID int64, name, content *string) (*model.Challenge, error) {
	if name == nil && content == nil {
		return r.getChallenge(ctx, squirrel.Eq{"id": challengeID, "hunt_id": huntID})
	}

	set := map[string]interface{}{}
	if name != nil {
		set["name"] = *name
	}
	if content != nil {
		set["content"] = *content
	}

	query, args, err := squirrel.
		Update("challenges").
		SetMap(set).
		Where(squirrel.Eq{"id": challengeID, "hunt_id": huntID}).
		Suffix("RETURNING " + challengeColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build challenge update query: %w", err)
	}

	var ch Challenge
	err = r.db.GetContext(ctx, &ch, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ch.toModel(), nil
}

// DeleteChallenge removes a challenge unless check-ins reference it;
// history is preserved by refusing the delete in that case.
func (r *Repository) DeleteChallenge(ctx context.Context, huntID, challengeID int64) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		countQuery, countArgs, err := squirrel.
			Select("COUNT(*)").
			From("check_ins").
			Where(squirrel.Eq{"challenge_id": challengeID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var checkIns int
		if err := tx.GetContext(ctx, &checkIns, countQuery, countArgs...); err != nil {
			return err
		}
		if checkIns > 0 {
			return ErrChallengeInUse
		}

		query, args, err := squirrel.
			Delete("challenges").
			Where(squirrel.Eq{"id": challengeID, "hunt_id": huntID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		return nil
	})
}

// ReorderChallenges reassigns order = index over the given ids in a
// single transaction, so readers never observe a partial permutation.
// The ids must be exactly the hunt's regular challenges.
func (r *Repository) ReorderChallenges(ctx context.Context, huntID int64, challengeIDs []int64) ([]*model.Challenge, error) {
	var reordered []Challenge

	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		currentQuery, currentArgs, err := squirrel.
			Select("id").
			From("challenges").
			Where(squirrel.Eq{"hunt_id": huntID, "is_bonus": false}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var currentIDs []int64
		if err := tx.SelectContext(ctx, &currentIDs, currentQuery, currentArgs...); err != nil {
			return err
		}

		if !sameIDSet(currentIDs, challengeIDs) {
			return ErrChallengeSetMismatch
		}

		for index, id := range challengeIDs {
			query, args, err := squirrel.
				Update("challenges").
				Set(`"order"`, index).
				Where(squirrel.Eq{"id": id, "hunt_id": huntID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to update challenge order: %w", err)
			}
		}

		query, args, err := squirrel.
			Select(challengeColumns).
			From("challenges").
			Where(squirrel.Eq{"hunt_id": huntID, "is_bonus": false}).
			OrderBy(`"order" ASC`).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		return tx.SelectContext(ctx, &reordered, query, args...)
	})
	if err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, len(reordered))
	for i := range reordered {
		challenges[i] = reordered[i].toModel()
	}

	return challenges, nil
}

func sameIDSet(current, requested []int64) bool {
	if len(current) != len(requested) {
		return false
	}

	seen := make(map[int64]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := seen[id]; !ok {
			return false
		}
		delete(seen, id)
	}

	return len(seen) == 0
}

// GetLastRegularChallenge returns the hunt's highest-order non-bonus
// challenge, the one finishers are measured against.
func (r *Repository) GetLastRegularChallenge(ctx context.Context, huntID int64) (*model.Challenge, error) {
	query, args, err := squirrel.
		Select(challengeColumns).
		From("challenges").
		Where(squirrel.Eq{"hunt_id": huntID, "is_bonus": false}).
		OrderBy(`"order" DESC NULLS LAST`).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ch Challenge
	err = r.db.GetContext(ctx, &ch, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return ch.toModel(), nil
}

// GetHighestCheckedOrder returns the highest order among the non-bonus
// challenges the player has checked into, or nil if there are none.
// Bonus check-ins never contribute to the sequence state.
func (r *Repository) GetHighestCheckedOrder(ctx context.Context, playerID int64) (*int, error) {
	query, args, err := squirrel.
		Select(`c."order"`).
		From("check_ins ci").
		InnerJoin("challenges c ON c.id = ci.challenge_id").
		Where(squirrel.Eq{"ci.player_id": playerID, "c.is_bonus": false}).
		OrderBy(`c."order" DESC`).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var order *int
	err = r.db.GetContext(ctx, &order, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return order, nil
}
