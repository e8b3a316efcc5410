package filterset

import (
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// setDTO is the storage shape of a saved filter set.
type setDTO struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Category string              `json:"category"`
	Filters  selection.Selection `json:"filters"`
}

func toDTO(set domset.Set) setDTO {
	return setDTO{
		ID:       set.ID(),
		Name:     set.Name(),
		Category: set.Category(),
		Filters:  set.Filters(),
	}
}

func (d setDTO) toDomain() domset.Set {
	return domset.Reconstruct(d.ID, d.Name, d.Category, d.Filters)
}
