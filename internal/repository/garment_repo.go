package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outfit-planner/internal/domain"
)

// GarmentRepository define el contrato de persistencia para prendas.
type GarmentRepository interface {
	Create(ctx context.Context, garment domain.Garment) (domain.Garment, error)
	GetByID(ctx context.Context, id int64) (domain.Garment, error)
	List(ctx context.Context) ([]domain.Garment, error)
	Update(ctx context.Context, garment domain.Garment) (domain.Garment, error)
	Delete(ctx context.Context, id int64) error
}

// PgGarmentRepository implementa GarmentRepository usando pgxpool.
type PgGarmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgGarmentRepository(pool *pgxpool.Pool) *PgGarmentRepository {
	return &PgGarmentRepository{pool: pool}
}

const garmentColumns = `id, name, category, color_family, formality, silhouette, season, image_url, created_at`

func (r *PgGarmentRepository) Create(ctx context.Context, garment domain.Garment) (domain.Garment, error) {
	const query = `
		INSERT INTO garments (name, category, color_family, formality, silhouette, season, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + garmentColumns

	row := r.pool.QueryRow(ctx, query,
		garment.Name,
		string(garment.Category),
		string(garment.ColorFamily),
		garment.FormalityValue(),
		string(garment.Silhouette),
		seasonParam(garment.Season),
		garment.ImageURL,
	)
	return scanGarment(row)
}

func (r *PgGarmentRepository) GetByID(ctx context.Context, id int64) (domain.Garment, error) {
	const query = `SELECT ` + garmentColumns + ` FROM garments WHERE id = $1`
	return scanGarment(r.pool.QueryRow(ctx, query, id))
}

func (r *PgGarmentRepository) List(ctx context.Context) ([]domain.Garment, error) {
	const query = `SELECT ` + garmentColumns + ` FROM garments ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	garments := []domain.Garment{}
	for rows.Next() {
		g, err := scanGarment(rows)
		if err != nil {
			return nil, err
		}
		garments = append(garments, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return garments, nil
}

func (r *PgGarmentRepository) Update(ctx context.Context, garment domain.Garment) (domain.Garment, error) {
	const query = `
		UPDATE garments
		SET name = $2, category = $3, color_family = $4, formality = $5, silhouette = $6, season = $7, image_url = $8
		WHERE id = $1
		RETURNING ` + garmentColumns

	return scanGarment(r.pool.QueryRow(ctx, query,
		garment.ID,
		garment.Name,
		string(garment.Category),
		string(garment.ColorFamily),
		garment.FormalityValue(),
		string(garment.Silhouette),
		seasonParam(garment.Season),
		garment.ImageURL,
	))
}

func (r *PgGarmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM garments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanGarment(row pgx.Row) (domain.Garment, error) {
	var (
		g          domain.Garment
		category   string
		color      string
		formality  float64
		silhouette string
		season     *string
	)
	err := row.Scan(
		&g.ID,
		&g.Name,
		&category,
		&color,
		&formality,
		&silhouette,
		&season,
		&g.ImageURL,
		&g.CreatedAt,
	)
	if err != nil {
		return domain.Garment{}, err
	}
	g.Category = domain.Category(category)
	g.ColorFamily = domain.ColorFamily(color)
	g.Formality = &formality
	g.Silhouette = domain.Silhouette(silhouette)
	if season != nil && *season != "" {
		s := domain.Season(*season)
		g.Season = &s
	}
	return g, nil
}

func seasonParam(s *domain.Season) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return string(*s)
}
