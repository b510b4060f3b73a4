// Package merge combines a build's flushed partial segments into one
// unified term -> postings map, ready for the index writer.
package merge

import (
	"fmt"
	"sort"

	"github.com/cognicore/corpusindex/pkg/index"
	"github.com/cognicore/corpusindex/pkg/index/partial"
)

// Merge reads segments in the given order (ascending flush/batch order)
// and concatenates each term's postings across segments. Because
// doc_id ranges are contiguous and non-overlapping across partials, no
// cross-segment combination is needed for a given term — only a final
// sort by doc_id ascending.
func Merge(segments []partial.Segment) (map[string][]index.Posting, error) {
	merged := make(map[string][]index.Posting)

	for _, seg := range segments {
		terms, err := partial.ReadSegment(seg.Path)
		if err != nil {
			return nil, fmt.Errorf("merge: read segment %q: %w", seg.Path, err)
		}
		for _, tp := range terms {
			merged[tp.Term] = append(merged[tp.Term], tp.Postings...)
		}
	}

	for term, postings := range merged {
		sort.Slice(postings, func(i, j int) bool {
			return postings[i].DocID < postings[j].DocID
		})
		merged[term] = postings
	}

	return merged, nil
}
