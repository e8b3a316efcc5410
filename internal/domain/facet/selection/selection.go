// Package selection holds the active filter state across facet kinds.
package selection

import "encoding/json"

// Bound names one end of a range facet.
type Bound string

// Range bounds. Stored under synthetic keys "{facetID}Min" / "{facetID}Max".
const (
	Min Bound = "Min"
	Max Bound = "Max"
)

// IsValid checks if the bound is one of the supported values.
func (b Bound) IsValid() bool { return b == Min || b == Max }

// Key returns the synthetic selection key for the facet's bound.
func (b Bound) Key(facetID string) string { return facetID + string(b) }

// Selection maps facet ids to their selected values. A facet id is never
// mapped to an empty list: absence means "no selection". Range bounds live
// under synthetic {id}Min/{id}Max keys; toggles store "true"/"false".
type Selection struct {
	values map[string][]string
}

// New creates an empty selection.
func New() Selection {
	return Selection{values: make(map[string][]string)}
}

// Reconstruct builds a selection from a raw map, dropping empty lists to
// restore the no-empty-list invariant. The map is copied.
func Reconstruct(values map[string][]string) Selection {
	s := New()
	for id, vals := range values {
		if len(vals) == 0 {
			continue
		}
		s.values[id] = append([]string(nil), vals...)
	}
	return s
}

// Toggle adds the value if absent and removes it if present. When the last
// value is removed the facet id is deleted entirely.
func (s Selection) Toggle(facetID, value string) {
	vals := s.values[facetID]
	for i, v := range vals {
		if v == value {
			vals = append(vals[:i], vals[i+1:]...)
			if len(vals) == 0 {
				delete(s.values, facetID)
			} else {
				s.values[facetID] = vals
			}
			return
		}
	}
	s.values[facetID] = append(vals, value)
}

// SetRangeBound stores the value under the facet's synthetic bound key.
// An empty value clears the bound.
func (s Selection) SetRangeBound(facetID string, bound Bound, value string) {
	key := bound.Key(facetID)
	if value == "" {
		delete(s.values, key)
		return
	}
	s.values[key] = []string{value}
}

// RangeBound returns the stored bound value, empty if unset.
func (s Selection) RangeBound(facetID string, bound Bound) string {
	vals := s.values[bound.Key(facetID)]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// SetToggle stores the boolean as "true"/"false".
func (s Selection) SetToggle(facetID string, on bool) {
	if on {
		s.values[facetID] = []string{"true"}
	} else {
		s.values[facetID] = []string{"false"}
	}
}

// ClearToggle removes the toggle key.
func (s Selection) ClearToggle(facetID string) {
	delete(s.values, facetID)
}

// ClearAll resets the selection to empty.
func (s Selection) ClearAll() {
	for id := range s.values {
		delete(s.values, id)
	}
}

// Count returns the active-filter count: the sum of per-facet selection
// list lengths. Each set range bound counts as 1.
func (s Selection) Count() int {
	n := 0
	for _, vals := range s.values {
		n += len(vals)
	}
	return n
}

// Values returns the selected values for a facet id, nil if none.
func (s Selection) Values(facetID string) []string {
	return s.values[facetID]
}

// Has reports whether the value is selected for the facet id.
func (s Selection) Has(facetID, value string) bool {
	for _, v := range s.values[facetID] {
		if v == value {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return len(s.values) == 0 }

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	return Reconstruct(s.values)
}

// Equal reports whether both selections hold identical values.
func (s Selection) Equal(other Selection) bool {
	if len(s.values) != len(other.values) {
		return false
	}
	for id, vals := range s.values {
		ovals, ok := other.values[id]
		if !ok || len(ovals) != len(vals) {
			return false
		}
		for i, v := range vals {
			if ovals[i] != v {
				return false
			}
		}
	}
	return true
}

// MarshalJSON serializes the selection as its plain map form.
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.values) //nolint:wrapcheck // thin encoding shim
}

// UnmarshalJSON restores a selection, dropping empty lists.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck // thin encoding shim
	}
	*s = Reconstruct(raw)
	return nil
}
