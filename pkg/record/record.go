// Package record loads and validates the corpus's document records: one
// JSON file per page, each holding a URL, raw HTML/payload content, and
// an advisory encoding hint.
package record

import (
	"encoding/json"
	"errors"
	"strings"
)

// Record is one unit of the input corpus, identified externally by its
// filesystem path.
type Record struct {
	URL      string `json:"url"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Validate reports whether r has the minimum shape the indexer requires:
// a non-empty URL and non-empty content. Encoding is advisory and never
// validated.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("record: url is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("record: content is empty")
	}
	return nil
}

// Parse decodes one record from raw JSON bytes. It does not call
// Validate — callers decide whether an invalid record is a skip (for
// the indexer) or a hard error.
func Parse(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}
