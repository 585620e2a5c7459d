package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mepgraphs/internal/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Repository implements repository.ParameterStore and repository.RunRecorder using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps in-memory databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	repo := &Repository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parameter_definitions (
		scope TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (scope, name)
	);

	CREATE TABLE IF NOT EXISTS parameter_values (
		element_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		run_id TEXT,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (element_id, name)
	);

	CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		networks INTEGER NOT NULL DEFAULT 0,
		json_graphs INTEGER NOT NULL DEFAULT 0,
		succeeded INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_parameter_values_run ON parameter_values(run_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Definition returns the parameter definition bound to scope, or nil if none exists
func (r *Repository) Definition(ctx context.Context, scope domain.StorageScope, name string) (*domain.ParameterDefinition, error) {
	def := &domain.ParameterDefinition{}
	var scopeStr string
	err := r.db.QueryRowContext(ctx, `
		SELECT scope, name, created_at FROM parameter_definitions
		WHERE scope = ? AND name = ?
	`, string(scope), name).Scan(&scopeStr, &def.Name, &def.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query parameter definition: %w", err)
	}

	def.Scope = domain.StorageScope(scopeStr)
	return def, nil
}

// CreateDefinition binds a parameter definition to scope; existing definitions are kept
func (r *Repository) CreateDefinition(ctx context.Context, scope domain.StorageScope, name string) (*domain.ParameterDefinition, error) {
	if name == "" {
		return nil, fmt.Errorf("parameter definition requires a name")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO parameter_definitions (scope, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(scope, name) DO NOTHING
	`, string(scope), name, r.now())
	if err != nil {
		return nil, fmt.Errorf("failed to create parameter definition: %w", err)
	}

	return r.Definition(ctx, scope, name)
}

// SetValue stores a parameter value on an element, replacing any previous value
func (r *Repository) SetValue(ctx context.Context, def *domain.ParameterDefinition, elementID, value, runID string) error {
	if def == nil {
		return fmt.Errorf("%w: cannot store value on %s", domain.ErrStorageDefinition, elementID)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO parameter_values (element_id, name, value, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(element_id, name) DO UPDATE SET
			value = excluded.value,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at
	`, elementID, def.Name, value, stringToNull(runID), r.now())
	if err != nil {
		return fmt.Errorf("failed to store parameter value: %w", err)
	}
	return nil
}

// GetValue returns an element's parameter value, or nil if not set
func (r *Repository) GetValue(ctx context.Context, name, elementID string) (*domain.ParameterValue, error) {
	v := &domain.ParameterValue{}
	var runID sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT element_id, name, value, run_id, updated_at FROM parameter_values
		WHERE element_id = ? AND name = ?
	`, elementID, name).Scan(&v.ElementID, &v.Name, &v.Value, &runID, &v.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query parameter value: %w", err)
	}

	v.RunID = nullToString(runID)
	return v, nil
}

// ListValues returns all values stored under name, ordered by element id
func (r *Repository) ListValues(ctx context.Context, name string) ([]domain.ParameterValue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT element_id, name, value, run_id, updated_at FROM parameter_values
		WHERE name = ?
		ORDER BY element_id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query parameter values: %w", err)
	}
	defer rows.Close()

	var values []domain.ParameterValue
	for rows.Next() {
		var (
			v     domain.ParameterValue
			runID sql.NullString
		)
		if err := rows.Scan(&v.ElementID, &v.Name, &v.Value, &runID, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan parameter value: %w", err)
		}
		v.RunID = nullToString(runID)
		values = append(values, v)
	}
	return values, rows.Err()
}

// StartRun records the start of an export run
func (r *Repository) StartRun(ctx context.Context, title string) (*domain.ExportRun, error) {
	run := &domain.ExportRun{
		ID:        uuid.NewString(),
		Title:     title,
		StartedAt: r.now(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO export_runs (id, title, started_at) VALUES (?, ?, ?)
	`, run.ID, run.Title, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record export run: %w", err)
	}
	return run, nil
}

// FinishRun records the outcome of an export run
func (r *Repository) FinishRun(ctx context.Context, run *domain.ExportRun) error {
	if run.FinishedAt == nil {
		now := r.now()
		run.FinishedAt = &now
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE export_runs
		SET finished_at = ?, networks = ?, json_graphs = ?, succeeded = ?
		WHERE id = ?
	`, timePtrToNull(run.FinishedAt), run.Networks, run.JSONGraphs, boolToInt(run.Succeeded), run.ID)
	if err != nil {
		return fmt.Errorf("failed to update export run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("export run %s not found", run.ID)
	}
	return nil
}

// GetRun loads an export run by id, or nil if not found
func (r *Repository) GetRun(ctx context.Context, id string) (*domain.ExportRun, error) {
	run := &domain.ExportRun{}
	var (
		finished  sql.NullTime
		succeeded sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, started_at, finished_at, networks, json_graphs, succeeded
		FROM export_runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Title, &run.StartedAt, &finished, &run.Networks, &run.JSONGraphs, &succeeded)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query export run: %w", err)
	}

	run.FinishedAt = nullToTimePtr(finished)
	run.Succeeded = nullToBool(succeeded)
	return run, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
