// Package facets resolves category facet definitions and manages the
// active filter selection.
package facets

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/makrhub/facetdex/internal/domain/facet"
)

// Registry maps a category key to its ordered facet definitions.
// Resolution of an unrecognized category yields an empty list, not an
// error: categories without facets are a legitimate configuration.
type Registry struct {
	byCategory map[string][]facet.Definition
}

// NewRegistry creates a registry from an explicit table.
func NewRegistry(table map[string][]facet.Definition) *Registry {
	if table == nil {
		table = make(map[string][]facet.Definition)
	}
	return &Registry{byCategory: table}
}

// Resolve returns the ordered definitions for the category, or an empty
// slice for an unknown category.
func (r *Registry) Resolve(category string) []facet.Definition {
	defs := r.byCategory[category]
	out := make([]facet.Definition, len(defs))
	copy(out, defs)
	return out
}

// Categories returns the configured category keys.
func (r *Registry) Categories() []string {
	keys := make([]string, 0, len(r.byCategory))
	for k := range r.byCategory {
		keys = append(keys, k)
	}
	return keys
}

// facetDTO is the YAML shape of one facet definition.
type facetDTO struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Kind     string         `yaml:"kind"`
	Options  []facet.Option `yaml:"options"`
	Min      float64        `yaml:"min"`
	Max      float64        `yaml:"max"`
	Unit     string         `yaml:"unit"`
	Required bool           `yaml:"required"`
	Help     string         `yaml:"help"`
}

type registryFile struct {
	Categories map[string][]facetDTO `yaml:"categories"`
}

// LoadRegistry reads the category -> facet table from a YAML seed file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read facet registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse facet registry: %w", err)
	}

	table := make(map[string][]facet.Definition, len(file.Categories))
	for category, dtos := range file.Categories {
		defs := make([]facet.Definition, 0, len(dtos))
		for _, dto := range dtos {
			def, err := dto.toDomain()
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", category, err)
			}
			defs = append(defs, def)
		}
		table[category] = defs
	}
	return NewRegistry(table), nil
}

func (d facetDTO) toDomain() (facet.Definition, error) {
	var (
		def facet.Definition
		err error
	)
	switch facet.Kind(d.Kind) {
	case facet.Checkbox:
		def, err = facet.NewCheckbox(d.ID, d.Name, d.Options)
	case facet.Select:
		def, err = facet.NewSelect(d.ID, d.Name, d.Options)
	case facet.Range:
		def, err = facet.NewRange(d.ID, d.Name, d.Min, d.Max, d.Unit)
	case facet.Toggle:
		def, err = facet.NewToggle(d.ID, d.Name)
	default:
		return facet.Definition{}, fmt.Errorf("facet %q: unknown kind %q", d.ID, d.Kind)
	}
	if err != nil {
		return facet.Definition{}, err
	}
	if d.Required {
		def = def.WithRequired()
	}
	if d.Help != "" {
		def = def.WithHelp(d.Help)
	}
	return def, nil
}
