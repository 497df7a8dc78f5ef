// internal/app/resources/resources.go
package resources

import (
	"embed"
	"fmt"
	"os"

	"github.com/assisberlanda/sousolidario/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// Embed the default seed files.
//
//go:embed data/*.yaml
var FS embed.FS

const (
	categoriesFile  = "data/categories.yaml"
	exampleSeedFile = "data/seed.example.yaml"
)

// DefaultCategories returns the built-in category list.
func DefaultCategories() ([]models.Category, error) {
	raw, err := FS.ReadFile(categoriesFile)
	if err != nil {
		return nil, err
	}
	return ParseCategories(raw)
}

// LoadCategories reads a category list from path, or the built-in list when
// path is empty.
func LoadCategories(path string) ([]models.Category, error) {
	if path == "" {
		return DefaultCategories()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	return ParseCategories(raw)
}

// ParseCategories decodes a YAML list of {name, color}.
func ParseCategories(raw []byte) ([]models.Category, error) {
	var cats []models.Category
	if err := yaml.Unmarshal(raw, &cats); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	return cats, nil
}

// ExampleSeed returns the sample seed file shipped with the binary.
func ExampleSeed() []byte {
	raw, _ := FS.ReadFile(exampleSeedFile)
	return raw
}
