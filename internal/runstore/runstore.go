// Package runstore persists hyperparameter-search run results in a
// local SQLite database, so sweeps can be compared and resumed across
// processes.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run represents one completed (or aborted) training run of a
// hyperparameter search.
type Run struct {
	RunID        string          `json:"run_id"`
	ParamsJSON   json.RawMessage `json:"params_json,omitempty"`
	Epochs       int             `json:"epochs"`
	BestValLoss  float64         `json:"best_val_loss"`
	BestValAcc   float64         `json:"best_val_acc"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    int64           `json:"created_at"`
}

// Store provides persistence for search runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS training_runs (
			run_id         TEXT PRIMARY KEY,
			params_json    TEXT,
			epochs         INTEGER NOT NULL,
			best_val_loss  DOUBLE NOT NULL,
			best_val_acc   DOUBLE NOT NULL,
			notes          TEXT,
			created_at     INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating run schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert persists a new run. If RunID is empty, a UUID is generated.
func (s *Store) Insert(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	var paramsStr interface{}
	if len(run.ParamsJSON) > 0 {
		paramsStr = string(run.ParamsJSON)
	}

	err := retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO training_runs (
				run_id, params_json, epochs, best_val_loss, best_val_acc, notes, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, paramsStr, run.Epochs, run.BestValLoss, run.BestValAcc,
			run.Notes, run.CreatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.RunID, err)
	}
	return nil
}

// List returns all runs ordered by creation time descending.
func (s *Store) List() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, params_json, epochs, best_val_loss, best_val_acc, notes, created_at
		FROM training_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Best returns the run with the lowest best validation loss.
func (s *Store) Best() (*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, params_json, epochs, best_val_loss, best_val_acc, notes, created_at
		FROM training_runs
		ORDER BY best_val_loss ASC, created_at DESC
		LIMIT 1`)
	if err != nil {
		return nil, fmt.Errorf("querying best run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, sql.ErrNoRows
	}
	return runs[0], nil
}

// Get returns the run with the given ID.
func (s *Store) Get(runID string) (*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, params_json, epochs, best_val_loss, best_val_acc, notes, created_at
		FROM training_runs
		WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", runID, err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, sql.ErrNoRows
	}
	return runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]*Run, error) {
	var out []*Run
	for rows.Next() {
		var run Run
		var params sql.NullString
		var notes sql.NullString
		if err := rows.Scan(&run.RunID, &params, &run.Epochs, &run.BestValLoss,
			&run.BestValAcc, &notes, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if params.Valid {
			run.ParamsJSON = json.RawMessage(params.String)
		}
		run.Notes = notes.String
		out = append(out, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return out, nil
}

// retryOnBusy retries fn on transient SQLite lock contention with a
// short backoff. Other errors are returned immediately.
func retryOnBusy(fn func() error) error {
	const attempts = 5
	backoff := 10 * time.Millisecond

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		msg := err.Error()
		if !strings.Contains(msg, "database is locked") && !strings.Contains(msg, "SQLITE_BUSY") {
			return err
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}
