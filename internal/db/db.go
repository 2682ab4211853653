package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"outfit-planner/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS garments (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL,
	color_family TEXT NOT NULL,
	formality    DOUBLE PRECISION NOT NULL DEFAULT 0.5,
	silhouette   TEXT NOT NULL,
	season       TEXT,
	image_url    TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS outfits (
	id              BIGSERIAL PRIMARY KEY,
	date            TIMESTAMPTZ NOT NULL DEFAULT now(),
	context         TEXT NOT NULL DEFAULT 'general',
	items           JSONB NOT NULL,
	score_breakdown JSONB NOT NULL,
	explanation     TEXT,
	is_elevated     BOOLEAN NOT NULL DEFAULT false,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS feedback (
	id         BIGSERIAL PRIMARY KEY,
	outfit_id  BIGINT NOT NULL REFERENCES outfits(id) ON DELETE CASCADE,
	worn       BOOLEAN NOT NULL DEFAULT true,
	rating     INTEGER,
	comments   TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS feedback_outfit_id_idx ON feedback (outfit_id);
`

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
