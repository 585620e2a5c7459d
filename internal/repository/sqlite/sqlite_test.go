package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"mepgraphs/internal/domain"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

// ============================================================================
// Null Helpers
// ============================================================================

func TestNullToString(t *testing.T) {
	assertEqual(t, "", nullToString(sql.NullString{}))
	assertEqual(t, "abc", nullToString(sql.NullString{String: "abc", Valid: true}))
}

func TestStringToNull(t *testing.T) {
	assertEqual(t, sql.NullString{}, stringToNull(""))
	assertEqual(t, sql.NullString{String: "run", Valid: true}, stringToNull("run"))
}

func TestTimeNullRoundTrip(t *testing.T) {
	if timePtrToNull(nil).Valid {
		t.Fatal("nil time should be invalid")
	}
	if nullToTimePtr(sql.NullTime{}) != nil {
		t.Fatal("invalid NullTime should give nil")
	}

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	got := nullToTimePtr(timePtrToNull(&now))
	if got == nil || !got.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got)
	}
}

func TestNullToBool(t *testing.T) {
	assertEqual(t, false, nullToBool(sql.NullInt64{}))
	assertEqual(t, false, nullToBool(sql.NullInt64{Int64: 0, Valid: true}))
	assertEqual(t, true, nullToBool(sql.NullInt64{Int64: 1, Valid: true}))
	assertEqual(t, 1, boolToInt(true))
	assertEqual(t, 0, boolToInt(false))
}

// ============================================================================
// Parameter Definitions
// ============================================================================

func TestDefinitionMissing(t *testing.T) {
	repo := newTestRepo(t)

	def, err := repo.Definition(context.Background(), domain.ScopeProject, domain.GraphParameterName)
	assertNoError(t, err)
	if def != nil {
		t.Fatalf("expected no definition, got %+v", def)
	}
}

func TestCreateDefinitionIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreateDefinition(ctx, domain.ScopeNetwork, domain.GraphParameterName)
	assertNoError(t, err)
	assertEqual(t, domain.ScopeNetwork, first.Scope)
	assertEqual(t, domain.GraphParameterName, first.Name)

	second, err := repo.CreateDefinition(ctx, domain.ScopeNetwork, domain.GraphParameterName)
	assertNoError(t, err)
	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Fatalf("definition recreated: %v != %v", first.CreatedAt, second.CreatedAt)
	}

	// Binding is per scope
	other, err := repo.Definition(ctx, domain.ScopeProject, domain.GraphParameterName)
	assertNoError(t, err)
	if other != nil {
		t.Fatalf("project scope should be unbound, got %+v", other)
	}
}

func TestCreateDefinitionRequiresName(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := repo.CreateDefinition(context.Background(), domain.ScopeProject, ""); err == nil {
		t.Fatal("expected error for empty name")
	}
}

// ============================================================================
// Parameter Values
// ============================================================================

func TestSetValueUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	def, err := repo.CreateDefinition(ctx, domain.ScopeNetwork, domain.GraphParameterName)
	assertNoError(t, err)

	assertNoError(t, repo.SetValue(ctx, def, "1001", `{"id":"1"}`, "run-1"))
	assertNoError(t, repo.SetValue(ctx, def, "1001", `{"id":"2"}`, ""))

	v, err := repo.GetValue(ctx, domain.GraphParameterName, "1001")
	assertNoError(t, err)
	assertEqual(t, `{"id":"2"}`, v.Value)
	assertEqual(t, "", v.RunID)

	missing, err := repo.GetValue(ctx, domain.GraphParameterName, "9999")
	assertNoError(t, err)
	if missing != nil {
		t.Fatalf("expected nil value, got %+v", missing)
	}
}

func TestSetValueWithoutDefinition(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SetValue(context.Background(), nil, "1001", "{}", "")
	if !errors.Is(err, domain.ErrStorageDefinition) {
		t.Fatalf("expected ErrStorageDefinition, got %v", err)
	}
}

func TestListValues(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	def, err := repo.CreateDefinition(ctx, domain.ScopeNetwork, domain.GraphParameterName)
	assertNoError(t, err)
	assertNoError(t, repo.SetValue(ctx, def, "b", "2", "r"))
	assertNoError(t, repo.SetValue(ctx, def, "a", "1", "r"))

	values, err := repo.ListValues(ctx, domain.GraphParameterName)
	assertNoError(t, err)
	assertEqual(t, 2, len(values))
	assertEqual(t, "a", values[0].ElementID)
	assertEqual(t, "b", values[1].ElementID)
	assertEqual(t, "r", values[0].RunID)
}

// ============================================================================
// Export Runs
// ============================================================================

func TestRunLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	run, err := repo.StartRun(ctx, "Office")
	assertNoError(t, err)
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}

	got, err := repo.GetRun(ctx, run.ID)
	assertNoError(t, err)
	if got.FinishedAt != nil {
		t.Fatal("new run should not be finished")
	}

	run.Networks = 3
	run.JSONGraphs = 2
	run.Succeeded = true
	assertNoError(t, repo.FinishRun(ctx, run))

	got, err = repo.GetRun(ctx, run.ID)
	assertNoError(t, err)
	assertEqual(t, "Office", got.Title)
	assertEqual(t, 3, got.Networks)
	assertEqual(t, 2, got.JSONGraphs)
	assertEqual(t, true, got.Succeeded)
	if got.FinishedAt == nil {
		t.Fatal("expected finished_at to be set")
	}
}

func TestFinishUnknownRun(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.FinishRun(context.Background(), &domain.ExportRun{ID: "missing"})
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestFileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphs.db")
	ctx := context.Background()

	repo, err := New(path)
	assertNoError(t, err)
	def, err := repo.CreateDefinition(ctx, domain.ScopeProject, domain.GraphParameterName)
	assertNoError(t, err)
	assertNoError(t, repo.SetValue(ctx, def, domain.ProjectInfoElementID, "{}", ""))
	assertNoError(t, repo.Close())

	reopened, err := New(path)
	assertNoError(t, err)
	defer reopened.Close()

	v, err := reopened.GetValue(ctx, domain.GraphParameterName, domain.ProjectInfoElementID)
	assertNoError(t, err)
	assertEqual(t, "{}", v.Value)
}
