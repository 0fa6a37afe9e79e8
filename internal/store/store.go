// Package store loads document snapshots for the query service.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/geokernel/internal/document"
)

var ErrNotFound = errors.New("document not found")

// Loader loads the latest document of a project.
type Loader interface {
	LatestDocument(ctx context.Context, projectID string) (*document.InDocument, error)
}

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// querier is the subset of pgxpool.Pool the store uses.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const latestSnapshotSQL = `SELECT document FROM snapshots WHERE project_id = $1 ORDER BY version DESC LIMIT 1`

// Postgres reads snapshots written by the editor backend.
type Postgres struct {
	db querier
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{db: pool}
}

func (s *Postgres) LatestDocument(ctx context.Context, projectID string) (*document.InDocument, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, latestSnapshotSQL, projectID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}

	var doc document.InDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", projectID, err)
	}
	return &doc, nil
}
