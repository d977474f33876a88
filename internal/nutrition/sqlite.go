package nutrition

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteRepository implements Repository using SQLite. Thread-safe with WAL
// mode for high-concurrency reads.
type SQLiteRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteRepository opens (creating if needed) the food database at dbPath
// and seeds it with the built-in table. Existing rows are preserved.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if err := seed(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed food table: %w", err)
	}

	log.Printf("[SQLiteFoodRepository] Initialized with database: %s", dbPath)
	return &SQLiteRepository{db: db}, nil
}

func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS foods (
		name TEXT PRIMARY KEY,
		carbs_grams INTEGER NOT NULL,
		serving_unit TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_foods_position ON foods(position);
	`
	_, err := db.Exec(query)
	return err
}

// seed inserts the built-in foods, keeping any rows added since.
func seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO foods (name, carbs_grams, serving_unit, description, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range builtinFoods {
		if _, err := stmt.Exec(f.Name, f.CarbsGrams, f.ServingUnit, f.Description, i); err != nil {
			return fmt.Errorf("failed to seed %s: %w", f.Name, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) (*Food, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Bidirectional substring match, first hit in table order wins.
	row := r.db.QueryRowContext(ctx, `
		SELECT name, carbs_grams, serving_unit, description
		FROM foods
		WHERE instr(?, name) > 0 OR instr(name, ?) > 0
		ORDER BY position, name
		LIMIT 1`, query, query)

	var f Food
	if err := row.Scan(&f.Name, &f.CarbsGrams, &f.ServingUnit, &f.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to search food: %w", err)
	}
	return &f, true, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT name, carbs_grams, serving_unit, description
		FROM foods ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var out []Food
	for rows.Next() {
		var f Food
		if err := rows.Scan(&f.Name, &f.CarbsGrams, &f.ServingUnit, &f.Description); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Upsert(ctx context.Context, food Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO foods (name, carbs_grams, serving_unit, description, position)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM foods))
		ON CONFLICT(name) DO UPDATE SET
			carbs_grams = excluded.carbs_grams,
			serving_unit = excluded.serving_unit,
			description = excluded.description`,
		food.Name, food.CarbsGrams, food.ServingUnit, food.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert food %s: %w", food.Name, err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

var _ Repository = (*SQLiteRepository)(nil)
