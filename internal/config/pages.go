package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/nexport-go/internal/models"
)

// LoadPages reads a YAML file mapping page names to Notion page IDs and
// returns the requests sorted by name. Every ID is validated up front so a
// malformed entry fails before any job is submitted.
func LoadPages(path string) ([]models.PageRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pages file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse pages file: %w", err)
	}

	pages := make([]models.PageRequest, 0, len(raw))
	for name, id := range raw {
		if _, err := models.NormalizePageID(id); err != nil {
			return nil, fmt.Errorf("page %q: %w", name, err)
		}
		pages = append(pages, models.PageRequest{Name: name, ID: id})
	}

	slices.SortFunc(pages, func(a, b models.PageRequest) int {
		return strings.Compare(a.Name, b.Name)
	})

	return pages, nil
}
