package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

// analysisStore implements driven.AnalysisStore.
// Each run is one row: the header columns plus the JSON snapshot.
type analysisStore struct {
	store *Store
}

var _ driven.AnalysisStore = (*analysisStore)(nil)

// Save stores or replaces a run.
func (s *analysisStore) Save(ctx context.Context, results *domain.AnalysisResults) error {
	if results == nil || results.RunID == "" {
		return fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}

	blob, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}

	summary := domain.SummaryOf(results)
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (run_id, vault_path, started_at, duration_ns, note_count,
			weak_count, isolated_count, partial, results)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			vault_path = excluded.vault_path,
			started_at = excluded.started_at,
			duration_ns = excluded.duration_ns,
			note_count = excluded.note_count,
			weak_count = excluded.weak_count,
			isolated_count = excluded.isolated_count,
			partial = excluded.partial,
			results = excluded.results
	`, summary.RunID, summary.VaultPath, summary.StartedAt.UnixNano(), int64(summary.Duration),
		summary.NoteCount, summary.Weak, summary.Isolated, boolToInt(summary.Partial), string(blob))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *analysisStore) Get(ctx context.Context, runID string) (*domain.AnalysisResults, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT results FROM analysis_runs WHERE run_id = ?`, runID)
	return scanResults(row)
}

// Latest returns the most recent run for a vault.
func (s *analysisStore) Latest(ctx context.Context, vaultPath string) (*domain.AnalysisResults, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT results FROM analysis_runs
		WHERE ? = '' OR vault_path = ?
		ORDER BY started_at DESC, run_id DESC
		LIMIT 1
	`, vaultPath, vaultPath)
	return scanResults(row)
}

// List returns run headers, newest first.
func (s *analysisStore) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	query := `
		SELECT run_id, vault_path, started_at, duration_ns, note_count, weak_count, isolated_count, partial
		FROM analysis_runs
		ORDER BY started_at DESC, run_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	summaries := []domain.RunSummary{}
	for rows.Next() {
		var (
			rs        domain.RunSummary
			startedAt int64
			duration  int64
			partial   int
		)
		if err := rows.Scan(&rs.RunID, &rs.VaultPath, &startedAt, &duration,
			&rs.NoteCount, &rs.Weak, &rs.Isolated, &partial); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rs.StartedAt = time.Unix(0, startedAt).UTC()
		rs.Duration = time.Duration(duration)
		rs.Partial = partial != 0
		summaries = append(summaries, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return summaries, nil
}

// Delete removes a run.
func (s *analysisStore) Delete(ctx context.Context, runID string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM analysis_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanResults(row *sql.Row) (*domain.AnalysisResults, error) {
	var blob string
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	var results domain.AnalysisResults
	if err := json.Unmarshal([]byte(blob), &results); err != nil {
		return nil, fmt.Errorf("unmarshalling results: %w", err)
	}
	return &results, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
