package additems

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/amante/menutools/internal/domain"
)

// Draft is a new item as written by hand, before it has an id.
type Draft struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Price         *float64 `yaml:"price"`
	Dietary       []string `yaml:"dietary"`
	IsChefSpecial *bool    `yaml:"isChefSpecial"`
}

// Group is the drafts for one category, in file order.
type Group struct {
	Category string
	Drafts   []Draft
}

// LoadDrafts reads a drafts file.
func LoadDrafts(path string) ([]Group, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read drafts %s: %w", path, err)
	}
	groups, err := ParseDrafts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// ParseDrafts decodes a YAML mapping of category id to draft list,
// keeping the category order of the file.
func ParseDrafts(data []byte) ([]Group, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse drafts: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("drafts must map category ids to item lists: %w", domain.ErrInvalidDraft)
	}

	groups := make([]Group, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		cat := m.Content[i].Value
		var drafts []Draft
		if err := m.Content[i+1].Decode(&drafts); err != nil {
			return nil, fmt.Errorf("category %s: %w", cat, err)
		}
		for j, d := range drafts {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("category %s draft %d: %w", cat, j, err)
			}
		}
		groups = append(groups, Group{Category: cat, Drafts: drafts})
	}
	return groups, nil
}

// Validate requires a name and a non-negative price.
func (d Draft) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required: %w", domain.ErrInvalidDraft)
	}
	if d.Price == nil {
		return fmt.Errorf("%s: price is required: %w", d.Name, domain.ErrInvalidDraft)
	}
	if *d.Price < 0 {
		return fmt.Errorf("%s: price must not be negative: %w", d.Name, domain.ErrInvalidDraft)
	}
	return nil
}
