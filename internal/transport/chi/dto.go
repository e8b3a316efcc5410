package chi

import (
	"github.com/makrhub/facetdex/internal/domain/facet"
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
	"github.com/makrhub/facetdex/internal/domain/search/candidate"
	"github.com/makrhub/facetdex/internal/domain/search/resultset"
	"github.com/makrhub/facetdex/internal/usecase/navigation"
	"github.com/makrhub/facetdex/internal/usecase/orchestrator"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error response codes.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeSessionNotFound   = "session_not_found"
	codeFilterSetNotFound = "filter_set_not_found"
	codeSearchUnavailable = "search_unavailable"
	codeInternalError     = "internal_error"
)

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type inputRequest struct {
	Text string `json:"text"`
}

type inputResponse struct {
	QueryID uint64 `json:"query_id"`
	State   string `json:"state"`
}

type candidateDTO struct {
	Kind      string   `json:"kind"`
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
}

type resultsResponse struct {
	QueryID      uint64         `json:"query_id"`
	Candidates   []candidateDTO `json:"candidates"`
	Tokens       []string       `json:"tokens,omitempty"`
	Unavailable  bool           `json:"unavailable"`
	Cursor       int            `json:"cursor"`
	DropdownOpen bool           `json:"dropdown_open"`
	State        string         `json:"state,omitempty"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type commitResponse struct {
	Kind  string `json:"kind"`
	Index *int   `json:"index,omitempty"`
	Query string `json:"query,omitempty"`
}

type facetDTO struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Options  []facet.Option `json:"options,omitempty"`
	Min      *float64       `json:"min,omitempty"`
	Max      *float64       `json:"max,omitempty"`
	Unit     string         `json:"unit,omitempty"`
	Required bool           `json:"required,omitempty"`
	Help     string         `json:"help,omitempty"`
}

type facetsResponse struct {
	Category string     `json:"category"`
	Facets   []facetDTO `json:"facets"`
}

type filtersResponse struct {
	Filters     selection.Selection `json:"filters"`
	ActiveCount int                 `json:"active_count"`
}

type toggleRequest struct {
	FacetID string `json:"facet_id"`
	Value   string `json:"value"`
}

type rangeRequest struct {
	FacetID string `json:"facet_id"`
	Bound   string `json:"bound"`
	Value   string `json:"value"`
}

type flagRequest struct {
	FacetID string `json:"facet_id"`
	On      *bool  `json:"on"` // null clears the flag
}

type saveSetRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
}

type applySetRequest struct {
	SessionID string `json:"session_id"`
}

type filterSetDTO struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Category string              `json:"category"`
	Filters  selection.Selection `json:"filters"`
}

type filterSetListResponse struct {
	Items []filterSetDTO `json:"items"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func candidateToDTO(c candidate.Candidate) candidateDTO {
	dto := candidateDTO{
		Kind:      string(c.Kind()),
		ID:        c.ID(),
		Title:     c.Title(),
		Subtitle:  c.Subtitle(),
		Thumbnail: c.Thumbnail(),
	}
	if price, ok := c.Price(); ok {
		dto.Price = &price
	}
	return dto
}

func resultSetToDTO(rs resultset.ResultSet, cursor int, open bool, state orchestrator.State) resultsResponse {
	items := make([]candidateDTO, rs.Len())
	for i, c := range rs.Candidates() {
		items[i] = candidateToDTO(c)
	}
	return resultsResponse{
		QueryID:      rs.QueryID(),
		Candidates:   items,
		Tokens:       rs.Tokens(),
		Unavailable:  rs.IsUnavailable(),
		Cursor:       cursor,
		DropdownOpen: open,
		State:        string(state),
	}
}

func facetToDTO(d facet.Definition) facetDTO {
	dto := facetDTO{
		ID:       d.ID(),
		Name:     d.Name(),
		Kind:     string(d.Kind()),
		Options:  d.Options(),
		Unit:     d.Unit(),
		Required: d.Required(),
		Help:     d.Help(),
	}
	if d.Kind() == facet.Range {
		min, max := d.Bounds()
		dto.Min = &min
		dto.Max = &max
	}
	return dto
}

func commitToDTO(c navigation.Commit) commitResponse {
	resp := commitResponse{Kind: string(c.Kind)}
	if c.Kind == navigation.Candidate {
		idx := c.Index
		resp.Index = &idx
	}
	if c.Kind == navigation.FullText {
		resp.Query = c.Query
	}
	return resp
}

func filterSetToDTO(set domset.Set) filterSetDTO {
	return filterSetDTO{
		ID:       set.ID(),
		Name:     set.Name(),
		Category: set.Category(),
		Filters:  set.Filters(),
	}
}
