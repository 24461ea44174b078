package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"flowergame/internal/flower"

	_ "modernc.org/sqlite"
)

// SQLiteStore writes snapshots to a single sqlite file. One file may hold
// many runs.
type SQLiteStore struct {
	path string

	mu     sync.RWMutex
	db     *sql.DB
	active string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) BeginRun(ctx context.Context, run RunInfo) (RunInfo, error) {
	db, err := s.getDB()
	if err != nil {
		return RunInfo{}, err
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, width, height, seed) VALUES (?, ?, ?, ?)
	`, run.ID, run.Width, run.Height, run.Seed)
	if err != nil {
		return RunInfo{}, fmt.Errorf("begin run %s: %w", run.ID, err)
	}

	s.mu.Lock()
	s.active = run.ID
	s.mu.Unlock()
	return run, nil
}

func (s *SQLiteStore) WriteSnapshot(ctx context.Context, snap flower.Snapshot) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	s.mu.RLock()
	runID := s.active
	s.mu.RUnlock()
	if runID == "" {
		return ErrNoRun
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE run_id = ? AND turn = ?`, runID, snap.Turn).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("%w %d", ErrDuplicateTurn, snap.Turn)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, turn, cell_count) VALUES (?, ?, ?)
	`, runID, snap.Turn, len(snap.Cells)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cells (run_id, turn, ord, cell_row, cell_col, species, hp, attack, corrupted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range snap.Cells {
		corrupted := 0
		if c.Corrupted {
			corrupted = 1
		}
		if _, err := stmt.ExecContext(ctx, runID, snap.Turn, i, c.Row, c.Col, speciesCode(c.Species), c.HP, c.Attack, corrupted); err != nil {
			return fmt.Errorf("cell %d,%d: %w", c.Row, c.Col, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Runs(ctx context.Context) ([]RunInfo, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, width, height, seed FROM runs ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.ID, &r.Width, &r.Height, &r.Seed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadSnapshots returns every snapshot of runID, or of the latest run when
// runID is empty.
func (s *SQLiteStore) LoadSnapshots(ctx context.Context, runID string) (map[int]flower.Snapshot, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	if runID == "" {
		err = db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&runID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("latest run: %w", ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
	} else {
		var found int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&found); err != nil {
			return nil, err
		}
		if found == 0 {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
	}

	out := make(map[int]flower.Snapshot)
	turns, err := db.QueryContext(ctx, `SELECT turn FROM snapshots WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	for turns.Next() {
		var turn int
		if err := turns.Scan(&turn); err != nil {
			turns.Close()
			return nil, err
		}
		out[turn] = flower.Snapshot{Turn: turn, Cells: []flower.CellState{}}
	}
	if err := turns.Close(); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT turn, cell_row, cell_col, species, hp, attack, corrupted
		FROM cells WHERE run_id = ? ORDER BY turn, ord
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			turn      int
			c         flower.CellState
			species   int64
			corrupted int
		)
		if err := rows.Scan(&turn, &c.Row, &c.Col, &species, &c.HP, &c.Attack, &corrupted); err != nil {
			return nil, err
		}
		c.Species = speciesFromCode(species)
		c.Corrupted = corrupted != 0
		snap := out[turn]
		snap.Turn = turn
		snap.Cells = append(snap.Cells, c)
		out[turn] = snap
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			cell_count INTEGER NOT NULL,
			PRIMARY KEY (run_id, turn)
		);
		CREATE TABLE IF NOT EXISTS cells (
			run_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			ord INTEGER NOT NULL,
			cell_row INTEGER NOT NULL,
			cell_col INTEGER NOT NULL,
			species INTEGER NOT NULL,
			hp INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			corrupted INTEGER NOT NULL,
			PRIMARY KEY (run_id, turn, ord)
		);
	`)
	return err
}
