package partial

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/cognicore/corpusindex/pkg/index"
)

// ReadSegment decodes every termSegment record from the segment file at
// path, in on-disk order (lexicographic by term, since Flush wrote them
// that way).
func ReadSegment(path string) ([]TermPostings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("partial: open segment %q: %w", path, err)
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	var out []TermPostings
	for {
		var ts termSegment
		if err := dec.Decode(&ts); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("partial: decode segment %q: %w", path, err)
		}
		out = append(out, TermPostings{Term: ts.Term, Postings: ts.Postings})
	}
	return out, nil
}

// TermPostings is the public view of one term's postings within a
// segment, handed to the merger.
type TermPostings struct {
	Term     string
	Postings []index.Posting
}
