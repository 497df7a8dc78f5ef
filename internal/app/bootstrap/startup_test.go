package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/resources"
	"github.com/assisberlanda/sousolidario/internal/app/services/accounts"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"github.com/assisberlanda/sousolidario/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func memoryDeps(t *testing.T) DBDeps {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	deps, err := OpenBackends(ctx, baseConfig(), testLogger())
	if err != nil {
		t.Fatalf("OpenBackends: %v", err)
	}
	return deps
}

func TestStartup_SeedsCategoriesAndAdmin(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := memoryDeps(t)
	cfg := baseConfig()
	cfg.AdminLogin = "admin"
	cfg.AdminPassword = "s3nha-forte"

	if err := Startup(ctx, nil, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	want, err := resources.DefaultCategories()
	if err != nil {
		t.Fatalf("DefaultCategories: %v", err)
	}
	cats, err := deps.Store.Categories.List(ctx, nil)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != len(want) {
		t.Errorf("got %d categories, want %d", len(cats), len(want))
	}

	svc := accounts.New(deps.Store, testLogger())
	u, ok, err := svc.Authenticate(ctx, "admin", "s3nha-forte")
	if err != nil || !ok {
		t.Fatalf("admin cannot sign in: ok=%v err=%v", ok, err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", u.Role)
	}

	// A second run must not duplicate anything.
	if err := Startup(ctx, nil, cfg, deps, testLogger()); err != nil {
		t.Fatalf("second Startup: %v", err)
	}
	cats, _ = deps.Store.Categories.List(ctx, nil)
	if len(cats) != len(want) {
		t.Errorf("after rerun got %d categories, want %d", len(cats), len(want))
	}
	users, _ := deps.Store.Users.List(ctx, nil)
	if len(users) != 1 {
		t.Errorf("after rerun got %d users, want 1", len(users))
	}
}

func TestStartup_AppliesTimeouts(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg := baseConfig()
	cfg.TimeoutLong = 3 * timeouts.DefaultLong
	if err := Startup(ctx, nil, cfg, memoryDeps(t), testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if got := timeouts.Long(); got != cfg.TimeoutLong {
		t.Errorf("Long = %v, want %v", got, cfg.TimeoutLong)
	}
	if got := timeouts.Short(); got != timeouts.DefaultShort {
		t.Errorf("Short = %v, want default", got)
	}
}

func TestStartup_CategoriesFile(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	path := filepath.Join(t.TempDir(), "categories.yaml")
	raw := []byte("- name: Roupas\n  color: \"#3366ff\"\n- name: Brinquedos\n  color: \"#ff9900\"\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	deps := memoryDeps(t)
	cfg := baseConfig()
	cfg.CategoriesFile = path
	if err := Startup(ctx, nil, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	cats, err := deps.Store.Categories.List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2", len(cats))
	}
}

func TestStartup_MissingCategoriesFile(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg := baseConfig()
	cfg.CategoriesFile = filepath.Join(t.TempDir(), "missing.yaml")
	if err := Startup(ctx, nil, cfg, memoryDeps(t), testLogger()); err == nil {
		t.Fatal("expected error for a missing categories file")
	}
}

func TestEnsureSchema_Mongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db, Store: store.NewMongo(db, nil)}
	if err := EnsureSchema(ctx, nil, baseConfig(), deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// Rerunning must be harmless.
	if err := EnsureSchema(ctx, nil, baseConfig(), deps, testLogger()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestEnsureSchema_NoStore(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := EnsureSchema(ctx, nil, baseConfig(), DBDeps{}, testLogger()); err == nil {
		t.Fatal("expected error without a store")
	}
}
