package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outfit-planner/internal/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb domain.Feedback) (domain.Feedback, error)
	ListByOutfitID(ctx context.Context, outfitID int64) ([]domain.Feedback, error)
}

type PgFeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewPgFeedbackRepository(pool *pgxpool.Pool) *PgFeedbackRepository {
	return &PgFeedbackRepository{pool: pool}
}

func (r *PgFeedbackRepository) Create(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	const query = `
		INSERT INTO feedback (outfit_id, worn, rating, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, outfit_id, worn, rating, comments, created_at
	`
	return scanFeedback(r.pool.QueryRow(ctx, query, fb.OutfitID, fb.Worn, fb.Rating, fb.Comments))
}

func (r *PgFeedbackRepository) ListByOutfitID(ctx context.Context, outfitID int64) ([]domain.Feedback, error) {
	const query = `
		SELECT id, outfit_id, worn, rating, comments, created_at
		FROM feedback
		WHERE outfit_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, outfitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Feedback{}
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanFeedback(row pgx.Row) (domain.Feedback, error) {
	var fb domain.Feedback
	err := row.Scan(
		&fb.ID,
		&fb.OutfitID,
		&fb.Worn,
		&fb.Rating,
		&fb.Comments,
		&fb.CreatedAt,
	)
	return fb, err
}
