package categorizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-tracker/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultTaxonomy returns the built-in closed category set.
func DefaultTaxonomy() []models.CategoryConfig {
	out := make([]models.CategoryConfig, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		out = append(out, models.CategoryConfig{Name: name})
	}
	return out
}

// FindTaxonomyFile looks for filename in the working directory, ./config and
// ~/.budget-tracker, in that order.
func FindTaxonomyFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".budget-tracker", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadTaxonomy reads a category list from YAML. Both the "categories: [...]" form and a
// bare list are accepted. Names are lower-cased and duplicates dropped. An empty filename
// or a missing file yields the default set.
func LoadTaxonomy(filename string) ([]models.CategoryConfig, error) {
	if strings.TrimSpace(filename) == "" {
		return DefaultTaxonomy(), nil
	}

	path, err := FindTaxonomyFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTaxonomy(), nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from config
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var wrapped models.CategoriesConfig
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Categories) > 0 {
		return cleanTaxonomy(wrapped.Categories, path)
	}

	var list []models.CategoryConfig
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	return cleanTaxonomy(list, path)
}

func cleanTaxonomy(in []models.CategoryConfig, path string) ([]models.CategoryConfig, error) {
	seen := make(map[string]bool, len(in))
	out := make([]models.CategoryConfig, 0, len(in))
	for _, c := range in {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, models.CategoryConfig{Name: name, Description: strings.TrimSpace(c.Description)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}
	return out, nil
}
