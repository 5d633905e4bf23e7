// Package classification holds the rule tables that map a category (and, for
// food, an exact item name) to descriptive defaults.
package classification

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/amante/menutools/internal/domain"
)

//go:embed tables.yaml
var defaultTables []byte

// Tables is the full rule set for all domains.
type Tables struct {
	FoodCategories map[string]FoodCategory     `yaml:"food"`
	BarCategories  map[string]BeverageCategory `yaml:"bar"`
	CafeCategories map[string]BeverageCategory `yaml:"cafe"`
}

// FoodCategory is the default profile of a food category plus its
// per-item overrides keyed by exact item name.
type FoodCategory struct {
	DefaultCuisine   string                  `yaml:"default_cuisine"`
	Subcuisine       string                  `yaml:"subcuisine"`
	LocalDescription string                  `yaml:"local_description"`
	Items            map[string]ItemOverride `yaml:"items"`
}

// ItemOverride refines a single food item.
type ItemOverride struct {
	Cuisine          string   `yaml:"cuisine"`
	Subcuisine       string   `yaml:"subcuisine"`
	LocalDescription string   `yaml:"local_description"`
	SimilarTo        string   `yaml:"similar_to"`
	Tags             []string `yaml:"tags"`
}

// BeverageCategory is the flat profile used by bar and cafe menus.
type BeverageCategory struct {
	Type        string   `yaml:"type"`
	Temperature string   `yaml:"temperature"`
	Tags        []string `yaml:"tags"`
}

// FoodProfile is the resolved classification for one food item.
// Empty fields mean "no default"; callers apply their own fallbacks.
type FoodProfile struct {
	Cuisine          string
	Subcuisine       string
	LocalDescription string
	SimilarTo        string
	Tags             []string
}

// Default returns the built-in tables.
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// Load reads tables from a YAML file; an empty path yields the built-in tables.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read classification tables %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates YAML tables.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse classification tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate rejects empty keys and food categories without a default cuisine.
func (t *Tables) Validate() error {
	for id, c := range t.FoodCategories {
		if id == "" {
			return fmt.Errorf("food: empty category id: %w", domain.ErrInvalidTables)
		}
		if c.DefaultCuisine == "" {
			return fmt.Errorf("food.%s: default_cuisine is required: %w", id, domain.ErrInvalidTables)
		}
		for name := range c.Items {
			if name == "" {
				return fmt.Errorf("food.%s: empty item name: %w", id, domain.ErrInvalidTables)
			}
		}
	}
	for section, cats := range map[string]map[string]BeverageCategory{"bar": t.BarCategories, "cafe": t.CafeCategories} {
		for id := range cats {
			if id == "" {
				return fmt.Errorf("%s: empty category id: %w", section, domain.ErrInvalidTables)
			}
		}
	}
	return nil
}

// Food resolves the profile for a food item. The item override, matched by
// exact name, is merged over the category default field by field.
func (t *Tables) Food(categoryID, itemName string) FoodProfile {
	cat, ok := t.FoodCategories[categoryID]
	if !ok {
		return FoodProfile{}
	}
	p := FoodProfile{
		Cuisine:          cat.DefaultCuisine,
		Subcuisine:       cat.Subcuisine,
		LocalDescription: cat.LocalDescription,
	}
	o, ok := cat.Items[itemName]
	if !ok {
		return p
	}
	if o.Cuisine != "" {
		p.Cuisine = o.Cuisine
	}
	if o.Subcuisine != "" {
		p.Subcuisine = o.Subcuisine
	}
	if o.LocalDescription != "" {
		p.LocalDescription = o.LocalDescription
	}
	p.SimilarTo = o.SimilarTo
	p.Tags = append([]string(nil), o.Tags...)
	return p
}

// Bar returns the bar profile for a category, or the zero profile.
func (t *Tables) Bar(categoryID string) BeverageCategory {
	return cloneBeverage(t.BarCategories[categoryID])
}

// Cafe returns the cafe profile for a category, or the zero profile.
func (t *Tables) Cafe(categoryID string) BeverageCategory {
	return cloneBeverage(t.CafeCategories[categoryID])
}

func cloneBeverage(c BeverageCategory) BeverageCategory {
	c.Tags = append([]string(nil), c.Tags...)
	return c
}
