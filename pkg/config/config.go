// Package config loads the indexer's and evaluator's static,
// precomputed configuration: the stopword list and the synonym table.
// Both are authored out-of-band; this package only ever consumes them.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stoplist is a YAML-authored stopword list, mirroring the shape the
// teacher's config loader uses for its own stoplist.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist reads a YAML stoplist file. A missing or unreadable file
// is an error: the os.ReadFile error is returned unwrapped, so callers
// can test it with errors.Is(err, os.ErrNotExist).
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("config: parse stoplist %q: %w", path, err)
	}
	return &sl, nil
}

// Synonyms maps a stem to its ordered list of synonym stems. The
// evaluator uses at most the first 3 entries per term.
type Synonyms map[string][]string

// LoadSynonyms reads synonyms.json, produced out-of-band and consumed
// by the query evaluator for query expansion.
func LoadSynonyms(path string) (Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var syn Synonyms
	if err := json.Unmarshal(data, &syn); err != nil {
		return nil, fmt.Errorf("config: parse synonyms %q: %w", path, err)
	}
	return syn, nil
}

// For looks up a term's synonym stems, capped at n entries (the
// evaluator passes n=3 per spec).
func (s Synonyms) For(term string, n int) []string {
	all := s[term]
	if len(all) <= n {
		return all
	}
	return all[:n]
}
