// Package history persists parting plane analysis runs in sqlite
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/philipparndt/gomold/pkg/parting"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned by Get for an unknown run id
var ErrNotFound = errors.New("analysis run not found")

// Run is one recorded analysis
type Run struct {
	ID            string         `json:"id"`
	FileName      string         `json:"file_name"`
	Fingerprint   string         `json:"fingerprint"`
	BestAxis      parting.Axis   `json:"best_axis"`
	RawBest       parting.Axis   `json:"raw_best"`
	SymmetricAxes []parting.Axis `json:"symmetric_axes"`
	UndercutCount int            `json:"undercut_count"`
	Scores        [3]float64     `json:"scores"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NewRun captures a selection result for storage
func NewRun(fileName string, fingerprint uint64, res parting.SelectionResult) Run {
	return Run{
		FileName:      fileName,
		Fingerprint:   fmt.Sprintf("%016x", fingerprint),
		BestAxis:      res.BestAxis,
		RawBest:       res.RawBest,
		SymmetricAxes: res.SymmetricAxes,
		UndercutCount: res.UndercutCount(),
		Scores:        res.Scores,
	}
}

// Store provides persistence for analysis runs
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists a run. An empty ID gets a fresh UUID and a zero CreatedAt
// the current time; the stored run is returned.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}

	scores, err := json.Marshal(run.Scores)
	if err != nil {
		return Run{}, fmt.Errorf("encode scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			run_id, file_name, fingerprint, best_axis, raw_best_axis,
			symmetric_axes, undercut_count, scores_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.FileName, run.Fingerprint, run.BestAxis.String(), run.RawBest.String(),
		joinAxes(run.SymmetricAxes), run.UndercutCount, string(scores), run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert analysis run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first. A limit of zero or less returns
// every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT run_id, file_name, fingerprint, best_axis, raw_best_axis,
		       symmetric_axes, undercut_count, scores_json, created_at
		FROM analysis_runs
		ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns a single run by id
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, file_name, fingerprint, best_axis, raw_best_axis,
		       symmetric_axes, undercut_count, scores_json, created_at
		FROM analysis_runs
		WHERE run_id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run                      Run
		best, rawBest, symmetric string
		scores                   string
		createdAt                int64
	)
	err := row.Scan(&run.ID, &run.FileName, &run.Fingerprint, &best, &rawBest,
		&symmetric, &run.UndercutCount, &scores, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan analysis run: %w", err)
	}

	if run.BestAxis, err = parting.ParseAxis(best); err != nil {
		return Run{}, err
	}
	if run.RawBest, err = parting.ParseAxis(rawBest); err != nil {
		return Run{}, err
	}
	if run.SymmetricAxes, err = splitAxes(symmetric); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(scores), &run.Scores); err != nil {
		return Run{}, fmt.Errorf("decode scores: %w", err)
	}
	run.CreatedAt = time.Unix(0, createdAt)
	return run, nil
}

func joinAxes(axes []parting.Axis) string {
	names := make([]string, len(axes))
	for i, a := range axes {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}

func splitAxes(s string) ([]parting.Axis, error) {
	axes := []parting.Axis{}
	if s == "" {
		return axes, nil
	}
	for _, name := range strings.Split(s, ",") {
		a, err := parting.ParseAxis(name)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	return axes, nil
}
