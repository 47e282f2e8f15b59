package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pipenet/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases alive across queries.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stations (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		workshops INTEGER NOT NULL DEFAULT 0,
		active_workshops INTEGER NOT NULL DEFAULT 0,
		efficiency REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS pipelines (
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		diameter INTEGER NOT NULL,
		in_repair INTEGER NOT NULL DEFAULT 0,
		input_station INTEGER,
		output_station INTEGER
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_stations_id ON stations(id);
	CREATE INDEX IF NOT EXISTS idx_pipelines_id ON pipelines(id);
	CREATE INDEX IF NOT EXISTS idx_pipelines_diameter ON pipelines(diameter);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Save replaces all stored records with the snapshot
func (r *Repository) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pipelines`); err != nil {
		return fmt.Errorf("failed to clear pipelines: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return fmt.Errorf("failed to clear stations: %w", err)
	}

	stationStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stations (`+stationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare station statement: %w", err)
	}
	defer stationStmt.Close()

	for i, st := range snap.Stations {
		if _, err := stationStmt.ExecContext(ctx, stationInsertArgs(i, st)...); err != nil {
			return fmt.Errorf("failed to insert station %d: %w", st.ID, err)
		}
	}

	pipeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pipelines (`+pipelineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare pipeline statement: %w", err)
	}
	defer pipeStmt.Close()

	for i, p := range snap.Pipelines {
		if _, err := pipeStmt.ExecContext(ctx, pipelineInsertArgs(i, p)...); err != nil {
			return fmt.Errorf("failed to insert pipeline %d: %w", p.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES ('last_save', ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to store save timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Load returns all stored records in saved order
func (r *Repository) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	rows, err := r.db.QueryContext(ctx, `SELECT `+stationColumns+` FROM stations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row stationRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		snap.AddStation(row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stations: %w", err)
	}

	pipeRows, err := r.db.QueryContext(ctx, `SELECT `+pipelineColumns+` FROM pipelines ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipelines: %w", err)
	}
	defer pipeRows.Close()

	for pipeRows.Next() {
		var row pipelineRow
		if err := pipeRows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline: %w", err)
		}
		snap.AddPipeline(row.toDomain())
	}
	if err := pipeRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pipelines: %w", err)
	}

	return snap, nil
}

// LastSaved returns when the snapshot was last saved, or nil if never
func (r *Repository) LastSaved(ctx context.Context) (*time.Time, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'last_save'`).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse save timestamp: %w", err)
	}
	return &t, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
