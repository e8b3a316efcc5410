// Package query implements search input normalization and synonym expansion.
package query

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxRawLength is the maximum accepted raw query length.
const MaxRawLength = 256

// Normalize lowercases and trims the raw input and splits it into tokens.
// Empty tokens are dropped; an all-whitespace input yields a nil slice.
func Normalize(raw string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Synonyms maps a group key to its equivalent terms.
// A token matching either the key or any member expands to the key plus
// all members of that group.
type Synonyms map[string][]string

// NewSynonyms builds a dictionary from group key -> members, lowercasing
// and dropping empty entries.
func NewSynonyms(groups map[string][]string) Synonyms {
	s := make(Synonyms, len(groups))
	for key, members := range groups {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		clean := make([]string, 0, len(members))
		for _, m := range members {
			m = strings.ToLower(strings.TrimSpace(m))
			if m != "" {
				clean = append(clean, m)
			}
		}
		s[key] = clean
	}
	return s
}

// Expand broadens tokens with their synonym groups. Idempotent: expanding
// an already-expanded set adds nothing. Output preserves first-seen order
// and contains no duplicates.
func (s Synonyms) Expand(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	for _, tok := range tokens {
		add(tok)
		for _, key := range s.groupsFor(tok) {
			add(key)
			for _, member := range s[key] {
				add(member)
			}
		}
	}
	return out
}

// groupsFor returns the keys of all groups the token belongs to, sorted for
// deterministic expansion order across runs.
func (s Synonyms) groupsFor(tok string) []string {
	var keys []string
	for key, members := range s {
		if key == tok {
			keys = append(keys, key)
			continue
		}
		for _, m := range members {
			if m == tok {
				keys = append(keys, key)
				break
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Query is a normalized, expanded search input.
type Query struct {
	raw      string
	tokens   []string
	expanded []string
}

// New normalizes raw input and expands it against the dictionary.
// Overlong input is truncated on a rune boundary so Raw stays valid UTF-8.
func New(raw string, syns Synonyms) Query {
	if len(raw) > MaxRawLength {
		cut := MaxRawLength
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut]
	}
	tokens := Normalize(raw)
	return Query{
		raw:      raw,
		tokens:   tokens,
		expanded: syns.Expand(tokens),
	}
}

// Raw returns the original input string.
func (q Query) Raw() string { return q.raw }

// Tokens returns the normalized token set.
func (q Query) Tokens() []string { return q.tokens }

// Expanded returns the synonym-broadened token set.
func (q Query) Expanded() []string { return q.expanded }

// IsEmpty reports whether the query has no usable tokens.
func (q Query) IsEmpty() bool { return len(q.tokens) == 0 }
