// Package candidate defines a single typed search match.
package candidate

// Kind tags the entity type a candidate was matched from.
type Kind string

// Candidate kinds in fixed merge order.
const (
	Product    Kind = "product"
	Category   Kind = "category"
	Brand      Kind = "brand"
	Suggestion Kind = "suggestion"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Product || k == Category || k == Brand || k == Suggestion
}

// Candidate is a single match tagged with its entity kind.
type Candidate struct {
	kind      Kind
	id        string
	title     string
	subtitle  string
	price     float64
	hasPrice  bool
	thumbnail string
}

// New creates a candidate without a price.
func New(kind Kind, id, title, subtitle string) Candidate {
	return Candidate{kind: kind, id: id, title: title, subtitle: subtitle}
}

// WithPrice returns a copy carrying a price.
func (c Candidate) WithPrice(price float64) Candidate {
	c.price = price
	c.hasPrice = true
	return c
}

// WithThumbnail returns a copy carrying a thumbnail reference.
func (c Candidate) WithThumbnail(ref string) Candidate {
	c.thumbnail = ref
	return c
}

// Reconstruct rebuilds a candidate from stored parts (tests, decoding).
func Reconstruct(kind Kind, id, title, subtitle string, price float64, hasPrice bool, thumbnail string) Candidate {
	return Candidate{
		kind: kind, id: id, title: title, subtitle: subtitle,
		price: price, hasPrice: hasPrice, thumbnail: thumbnail,
	}
}

// Kind returns the entity kind.
func (c Candidate) Kind() Kind { return c.kind }

// ID returns the entity identifier.
func (c Candidate) ID() string { return c.id }

// Title returns the display title.
func (c Candidate) Title() string { return c.title }

// Subtitle returns the secondary display line.
func (c Candidate) Subtitle() string { return c.subtitle }

// Price returns the price and whether one is set.
func (c Candidate) Price() (float64, bool) { return c.price, c.hasPrice }

// Thumbnail returns the thumbnail reference, empty if none.
func (c Candidate) Thumbnail() string { return c.thumbnail }
