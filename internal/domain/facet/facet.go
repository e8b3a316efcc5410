// Package facet defines the closed set of filterable dimension kinds.
package facet

import (
	"fmt"

	"github.com/makrhub/facetdex/internal/domain"
)

// Kind is the input control a facet renders as.
type Kind string

// Facet kinds.
const (
	Checkbox Kind = "checkbox"
	Select   Kind = "select"
	Range    Kind = "range"
	Toggle   Kind = "toggle"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Checkbox || k == Select || k == Range || k == Toggle
}

// Option is a selectable value for checkbox and select facets.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	Count int    `yaml:"count" json:"count"`
}

// Definition describes one facet. Each kind carries only its relevant
// fields, enforced by the per-kind constructors.
type Definition struct {
	id       string
	name     string
	kind     Kind
	options  []Option
	min      float64
	max      float64
	unit     string
	required bool
	help     string
}

// NewCheckbox creates a multi-select checkbox facet.
func NewCheckbox(id, name string, options []Option) (Definition, error) {
	if err := validateCommon(id, name); err != nil {
		return Definition{}, err
	}
	if len(options) == 0 {
		return Definition{}, fmt.Errorf("%w: checkbox facet %q needs at least one option", domain.ErrInvalidFacet, id)
	}
	return Definition{id: id, name: name, kind: Checkbox, options: options}, nil
}

// NewSelect creates a single-select facet.
func NewSelect(id, name string, options []Option) (Definition, error) {
	if err := validateCommon(id, name); err != nil {
		return Definition{}, err
	}
	if len(options) == 0 {
		return Definition{}, fmt.Errorf("%w: select facet %q needs at least one option", domain.ErrInvalidFacet, id)
	}
	return Definition{id: id, name: name, kind: Select, options: options}, nil
}

// NewRange creates a numeric range facet. unit may be empty.
func NewRange(id, name string, min, max float64, unit string) (Definition, error) {
	if err := validateCommon(id, name); err != nil {
		return Definition{}, err
	}
	if min > max {
		return Definition{}, fmt.Errorf("%w: range facet %q has min %g > max %g", domain.ErrInvalidRange, id, min, max)
	}
	return Definition{id: id, name: name, kind: Range, min: min, max: max, unit: unit}, nil
}

// NewToggle creates a boolean toggle facet.
func NewToggle(id, name string) (Definition, error) {
	if err := validateCommon(id, name); err != nil {
		return Definition{}, err
	}
	return Definition{id: id, name: name, kind: Toggle}, nil
}

func validateCommon(id, name string) error {
	if id == "" {
		return fmt.Errorf("%w: facet id is required", domain.ErrInvalidFacet)
	}
	if name == "" {
		return fmt.Errorf("%w: facet %q needs a display name", domain.ErrInvalidFacet, id)
	}
	return nil
}

// WithRequired marks the facet as required.
func (d Definition) WithRequired() Definition {
	d.required = true
	return d
}

// WithHelp attaches help text.
func (d Definition) WithHelp(text string) Definition {
	d.help = text
	return d
}

// Reconstruct rebuilds a definition from stored parts without validation.
func Reconstruct(
	id, name string, kind Kind, options []Option,
	min, max float64, unit string, required bool, help string,
) Definition {
	return Definition{
		id: id, name: name, kind: kind, options: options,
		min: min, max: max, unit: unit, required: required, help: help,
	}
}

// ID returns the facet identifier.
func (d Definition) ID() string { return d.id }

// Name returns the display name.
func (d Definition) Name() string { return d.name }

// Kind returns the facet kind.
func (d Definition) Kind() Kind { return d.kind }

// Options returns the selectable options (checkbox/select only).
func (d Definition) Options() []Option { return d.options }

// Bounds returns the min/max limits (range only).
func (d Definition) Bounds() (min, max float64) { return d.min, d.max }

// Unit returns the range unit, empty if none.
func (d Definition) Unit() string { return d.unit }

// Required reports whether a selection is mandatory.
func (d Definition) Required() bool { return d.required }

// Help returns the help text, empty if none.
func (d Definition) Help() string { return d.help }
