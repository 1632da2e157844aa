package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trailhunt/internal/model"

	"github.com/Masterminds/squirrel"
)

type Hunt struct {
	ID         int64     `db:"id"`
	ShortCode  string    `db:"short_code"`
	Name       string    `db:"name"`
	Guidelines *string   `db:"guidelines"`
	IsDeleted  bool      `db:"is_deleted"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (h *Hunt) toModel() *model.Hunt {
	return &model.Hunt{
		ID:         h.ID,
		ShortCode:  h.ShortCode,
		Name:       h.Name,
		Guidelines: h.Guidelines,
		IsDeleted:  h.IsDeleted,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}

func (r *Repository) CreateHunt(ctx context.Context, name, shortCode string) (*model.Hunt, error) {
	query, args, err := squirrel.
		Insert("hunts").
		SetMap(map[string]interface{}{
			"name":       name,
			"short_code": shortCode,
		}).
		Suffix("RETURNING id, short_code, name, guidelines, is_deleted, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build hunt insert query: %w", err)
	}

	var hunt Hunt
	err = r.db.GetContext(ctx, &hunt, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrShortCodeTaken
		}
		return nil, fmt.Errorf("failed to insert hunt: %w", err)
	}

	return hunt.toModel(), nil
}

func (r *Repository) GetHuntByShortCode(ctx context.Context, shortCode string) (*model.Hunt, error) {
	return r.getHunt(ctx, squirrel.Eq{"short_code": shortCode, "is_deleted": false})
}

func (r *Repository) GetHuntByID(ctx context.Context, id int64) (*model.Hunt, error) {
	return r.getHunt(ctx, squirrel.Eq{"id": id, "is_deleted": false})
}

func (r *Repository) getHunt(ctx context.Context, pred squirrel.Eq) (*model.Hunt, error) {
	query, args, err := squirrel.
		Select("id", "short_code", "name", "guidelines", "is_deleted", "created_at", "updated_at").
		From("hunts").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var hunt Hunt
	err = r.db.GetContext(ctx, &hunt, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return hunt.toModel(), nil
}

func (r *Repository) UpdateHunt(ctx context.Context, shortCode string, name, guidelines *string) (*model.Hunt, error) {
	set := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if name != nil {
		set["name"] = *name
	}
	if guidelines != nil {
		set["guidelines"] = *guidelines
	}

	query, args, err := squirrel.
		Update("hunts").
		SetMap(set).
		Where(squirrel.Eq{"short_code": shortCode, "is_deleted": false}).
		Suffix("RETURNING id, short_code, name, guidelines, is_deleted, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build hunt update query: %w", err)
	}

	var hunt Hunt
	err = r.db.GetContext(ctx, &hunt, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return hunt.toModel(), nil
}
