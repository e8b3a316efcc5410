// Package catalog holds the read-only entity shapes consumed from the
// catalog collaborator. These are boundary DTOs, not engine-owned state.
package catalog

// Product is a purchasable catalog entry.
type Product struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Brand       string   `yaml:"brand" json:"brand"`
	Tags        []string `yaml:"tags" json:"tags"`
	SKU         string   `yaml:"sku" json:"sku"`
	Price       float64  `yaml:"price" json:"price"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail"`
}

// Category is a browsable catalog grouping.
type Category struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	Slug         string `yaml:"slug" json:"slug"`
	ProductCount int    `yaml:"product_count" json:"product_count"`
}

// Snapshot is a point-in-time view of the catalog collections.
type Snapshot struct {
	Products   []Product  `yaml:"products"`
	Categories []Category `yaml:"categories"`
}

// Brands derives the de-duplicated brand list from product brand fields,
// preserving first-seen order. Empty brand fields are skipped.
func (s Snapshot) Brands() []string {
	seen := make(map[string]struct{}, len(s.Products))
	brands := make([]string, 0, len(s.Products))
	for _, p := range s.Products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}
