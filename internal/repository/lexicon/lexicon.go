// Package lexicon loads the query-side seed data: synonym groups and the
// curated suggestion list.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/makrhub/facetdex/internal/domain/search/query"
)

// LoadSynonyms reads a YAML file of group key -> member terms.
func LoadSynonyms(path string) (query.Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms seed: %w", err)
	}

	var doc struct {
		Groups map[string][]string `yaml:"groups"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse synonyms seed: %w", err)
	}
	return query.NewSynonyms(doc.Groups), nil
}

// LoadSuggestions reads the curated suggestion phrases in file order.
func LoadSuggestions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestions seed: %w", err)
	}

	var doc struct {
		Suggestions []string `yaml:"suggestions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse suggestions seed: %w", err)
	}

	out := make([]string, 0, len(doc.Suggestions))
	for _, s := range doc.Suggestions {
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
