package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outfit-planner/internal/domain"
)

type OutfitRepository interface {
	Create(ctx context.Context, outfit domain.Outfit) (domain.Outfit, error)
	GetByID(ctx context.Context, id int64) (domain.Outfit, error)
	List(ctx context.Context) ([]domain.Outfit, error)
}

type PgOutfitRepository struct {
	pool *pgxpool.Pool
}

func NewPgOutfitRepository(pool *pgxpool.Pool) *PgOutfitRepository {
	return &PgOutfitRepository{pool: pool}
}

const outfitColumns = `id, date, context, items, score_breakdown, explanation, is_elevated, created_at`

func (r *PgOutfitRepository) Create(ctx context.Context, outfit domain.Outfit) (domain.Outfit, error) {
	const query = `
		INSERT INTO outfits (date, context, items, score_breakdown, explanation, is_elevated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + outfitColumns

	items := outfit.Items
	if items == nil {
		items = []int64{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return domain.Outfit{}, fmt.Errorf("marshal items: %w", err)
	}
	scoresJSON, err := json.Marshal(outfit.ScoreBreakdown)
	if err != nil {
		return domain.Outfit{}, fmt.Errorf("marshal score breakdown: %w", err)
	}

	var explanation interface{}
	if outfit.Explanation != "" {
		explanation = outfit.Explanation
	}

	date := outfit.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	return scanOutfit(r.pool.QueryRow(ctx, query,
		date,
		outfit.Context,
		itemsJSON,
		scoresJSON,
		explanation,
		outfit.IsElevated,
	))
}

func (r *PgOutfitRepository) GetByID(ctx context.Context, id int64) (domain.Outfit, error) {
	const query = `SELECT ` + outfitColumns + ` FROM outfits WHERE id = $1`
	return scanOutfit(r.pool.QueryRow(ctx, query, id))
}

func (r *PgOutfitRepository) List(ctx context.Context) ([]domain.Outfit, error) {
	const query = `SELECT ` + outfitColumns + ` FROM outfits ORDER BY date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outfits := []domain.Outfit{}
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		outfits = append(outfits, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return outfits, nil
}

func scanOutfit(row pgx.Row) (domain.Outfit, error) {
	var (
		o           domain.Outfit
		itemsRaw    []byte
		scoresRaw   []byte
		explanation *string
	)
	err := row.Scan(
		&o.ID,
		&o.Date,
		&o.Context,
		&itemsRaw,
		&scoresRaw,
		&explanation,
		&o.IsElevated,
		&o.CreatedAt,
	)
	if err != nil {
		return domain.Outfit{}, err
	}
	if err := json.Unmarshal(itemsRaw, &o.Items); err != nil {
		return domain.Outfit{}, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(scoresRaw, &o.ScoreBreakdown); err != nil {
		return domain.Outfit{}, fmt.Errorf("unmarshal score breakdown: %w", err)
	}
	if explanation != nil {
		o.Explanation = *explanation
	}
	return o, nil
}
