package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"marc/services"
	"marc/utils"
)

// Querier is the subset of *pgxpool.Pool used by SQLSource.
type Querier interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var readOnly = pgx.TxOptions{AccessMode: pgx.ReadOnly}

// SQLSource reads chart segments from the database. A chart query must
// return two columns, a text label and a float8 count, one row per label.
// Every query runs in its own READ ONLY transaction.
type SQLSource struct {
	DB Querier
}

func NewSQLSource(db Querier) *SQLSource {
	return &SQLSource{DB: db}
}

func (s *SQLSource) Segments(ctx context.Context, spec services.ChartSpec) (map[string]float64, error) {
	if !utils.ValidateSQL(spec.Query) {
		return nil, fmt.Errorf("query for chart %q is not a single read-only statement", spec.ID)
	}

	tx, err := s.DB.BeginTx(ctx, readOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// nothing is written, rollback just releases the connection
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, spec.Query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var (
			label string
			value *float64
		)
		if err := rows.Scan(&label, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		// SUM over no rows is NULL
		if value == nil {
			out[label] = 0
			continue
		}
		out[label] = *value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return out, nil
}
