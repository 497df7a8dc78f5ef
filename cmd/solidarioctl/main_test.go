package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/bootstrap"
	"github.com/assisberlanda/sousolidario/internal/app/store"
	"github.com/assisberlanda/sousolidario/internal/app/system/idgen"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// sharedMemory returns an opener handing every command the same in-memory
// store, so a seed is visible to a later progress call.
func sharedMemory() opener {
	st := store.NewMemory(nil)
	return func(context.Context, bootstrap.AppConfig, *zap.Logger) (bootstrap.DBDeps, func(), error) {
		return bootstrap.DBDeps{Store: st}, func() {}, nil
	}
}

func run(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(timeouts.Reset)
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedExampleThenProgress(t *testing.T) {
	open := sharedMemory()

	out, err := run(t, open, "seed", "--example")
	if err != nil {
		t.Fatalf("seed: %v\n%s", err, out)
	}
	for _, want := range []string{"Users:        1 created", "Campaigns:    1", "Needed items: 3", "Donations:    1 (2 lines)"} {
		if !strings.Contains(out, want) {
			t.Errorf("seed output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, open, "progress", "1")
	if err != nil {
		t.Fatalf("progress: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Progress: 9% (70/780)") {
		t.Errorf("unexpected progress output:\n%s", out)
	}
	if !strings.Contains(out, "PRIORITY") {
		t.Errorf("missing item table:\n%s", out)
	}
}

func TestSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	raw := "users:\n  - login: abrigo\n    password: senha-segura-1\n    name: Abrigo\n    email: abrigo@example.org\n    role: organization\n    organization_name: Abrigo\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, sharedMemory(), "seed", "--file", path)
	if err != nil {
		t.Fatalf("seed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Users:        1 created, 0 existing") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSeedNeedsSource(t *testing.T) {
	if _, err := run(t, sharedMemory(), "seed"); err == nil {
		t.Fatal("expected error without --file or --example")
	}
}

func TestSeedRejectsBadBackend(t *testing.T) {
	_, err := run(t, sharedMemory(), "--storage", "sqlite", "seed", "--example")
	if err == nil || !strings.Contains(err.Error(), "storage_backend") {
		t.Fatalf("err = %v, want storage_backend error", err)
	}
}

func TestProgressUnknownCampaign(t *testing.T) {
	_, err := run(t, sharedMemory(), "progress", "Z999999")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCode(t *testing.T) {
	out, err := run(t, sharedMemory(), "code", "-n", "3")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Fields(out)
	if len(lines) != 3 {
		t.Fatalf("got %d codes, want 3: %q", len(lines), out)
	}
	for _, code := range lines {
		if !idgen.IsGeneratedCode(code) {
			t.Errorf("%q is not a campaign code", code)
		}
	}
}

func TestCodeRejectsZeroCount(t *testing.T) {
	if _, err := run(t, sharedMemory(), "code", "-n", "0"); err == nil {
		t.Fatal("expected error for --count 0")
	}
}
