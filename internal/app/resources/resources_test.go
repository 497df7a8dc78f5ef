package resources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/text"
)

func TestDefaultCategories(t *testing.T) {
	cats, err := resources.DefaultCategories()
	if err != nil {
		t.Fatalf("DefaultCategories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("expected built-in categories")
	}
	seen := map[string]bool{}
	for _, c := range cats {
		if c.Name == "" || c.Color == "" {
			t.Errorf("incomplete category: %+v", c)
		}
		key := text.Fold(c.Name)
		if seen[key] {
			t.Errorf("duplicate category %q", c.Name)
		}
		seen[key] = true
	}
}

func TestLoadCategories_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cats.yaml")
	if err := os.WriteFile(path, []byte("- name: Fraldas\n  color: \"#000000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cats, err := resources.LoadCategories(path)
	if err != nil {
		t.Fatalf("LoadCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Fraldas" {
		t.Errorf("unexpected categories: %+v", cats)
	}

	if _, err := resources.LoadCategories(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExampleSeed(t *testing.T) {
	if len(resources.ExampleSeed()) == 0 {
		t.Error("example seed is empty")
	}
}
