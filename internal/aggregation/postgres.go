package aggregation

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

//go:embed schema.sql
var schemaSQL string

// Store persists simulation reports to Postgres. Grounded on the
// teacher's internal/db/postgres.go: pgxpool connection, explicit
// Begin/defer-Rollback/Commit transaction, ON CONFLICT upsert by natural
// key, insert the child rows one by one inside the same transaction.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens the pool and verifies connectivity, mirroring the
// teacher's db.Connect.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("aggregation: unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("aggregation: ping failed: %w", err)
	}
	log.Println("aggregation: connected to Postgres for report persistence")
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the report-persistence tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aggregation: schema init failed: %w", err)
	}
	log.Println("aggregation: schema initialized")
	return nil
}

// SaveReport persists one scenario report (its payments and analyses as
// JSONB columns) and its levenshtein_distances rows inside a single
// transaction, upserting on (run_id, amount_sat, routing_metric,
// payment_parts).
func (s *Store) SaveReport(ctx context.Context, report models.Report) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("aggregation: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	payments, err := json.Marshal(report.Payments)
	if err != nil {
		return fmt.Errorf("aggregation: marshal payments: %w", err)
	}
	adversaryStats, err := json.Marshal(report.AdversaryStats)
	if err != nil {
		return fmt.Errorf("aggregation: marshal adversary stats: %w", err)
	}
	diversity, err := json.Marshal(report.Diversity)
	if err != nil {
		return fmt.Errorf("aggregation: marshal diversity: %w", err)
	}
	targetedAttacks, err := json.Marshal(report.TargetedAttacks)
	if err != nil {
		return fmt.Errorf("aggregation: marshal targeted attacks: %w", err)
	}

	insertReportSQL := `
		INSERT INTO scenario_reports
			(run_id, seed, amount_sat, routing_metric, payment_parts,
			 total_payments, succeeded_payments, failed_payments,
			 payments, adversary_stats, diversity, targeted_attacks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (run_id, amount_sat, routing_metric, payment_parts) DO UPDATE
		SET total_payments = EXCLUDED.total_payments,
		    succeeded_payments = EXCLUDED.succeeded_payments,
		    failed_payments = EXCLUDED.failed_payments,
		    payments = EXCLUDED.payments,
		    adversary_stats = EXCLUDED.adversary_stats,
		    diversity = EXCLUDED.diversity,
		    targeted_attacks = EXCLUDED.targeted_attacks;
	`
	_, err = tx.Exec(ctx, insertReportSQL,
		report.RunID, report.Seed, report.AmountSat, report.RoutingMetric, report.PaymentParts,
		report.TotalPayments, report.SucceededPayments, report.FailedPayments,
		payments, adversaryStats, diversity, targetedAttacks,
	)
	if err != nil {
		return fmt.Errorf("aggregation: insert scenario_reports: %w", err)
	}

	if len(report.LevenshteinDist) > 0 {
		insertLevSQL := `INSERT INTO levenshtein_distances (run_id, amount_sat, distance) VALUES ($1, $2, $3)`
		for _, d := range report.LevenshteinDist {
			if _, err := tx.Exec(ctx, insertLevSQL, report.RunID, report.AmountSat, d); err != nil {
				return fmt.Errorf("aggregation: insert levenshtein_distances: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}

// SaveReports persists every report, logging and continuing past any
// individual failure rather than aborting the remaining scenarios
// (spec.md §7 "writer / file-system errors... logged; do not abort other
// scenarios in flight").
func (s *Store) SaveReports(ctx context.Context, reports []models.Report) {
	for _, r := range reports {
		if err := s.SaveReport(ctx, r); err != nil {
			log.Printf("aggregation: failed to persist report %s (amount=%d): %v", r.RunID, r.AmountSat, err)
		}
	}
}
