// Package partial implements the indexer's in-memory partial index: it
// accumulates postings per batch of documents, then flushes each batch
// to its own segment file on disk, named with a monotonic ULID so
// segments sort in flush order by filename alone.
package partial

import (
	"crypto/rand"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cognicore/corpusindex/pkg/index"
	"github.com/oklog/ulid/v2"
)

// DefaultBatchSize is the number of admitted documents accumulated
// in memory before a flush. It is a tuning parameter, not a contract:
// any positive value yields equivalent final artifacts.
const DefaultBatchSize = 2000

// Segment names one flushed partial on disk, in the order it was
// written (ULIDs are monotonically increasing within one Builder).
type Segment struct {
	Path string
}

// Builder accumulates term -> postings across a batch of documents,
// flushing to disk every BatchSize admitted documents and once more at
// end-of-input.
type Builder struct {
	BatchSize int
	Dir       string

	entropy *ulid.MonotonicEntropy
	terms   map[string][]index.Posting
	nextID  int32
	inBatch int

	DocIDs   map[int32]string
	segments []Segment
}

// New creates a Builder that flushes partial segments under dir.
// batchSize <= 0 selects DefaultBatchSize.
func New(dir string, batchSize int) *Builder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Builder{
		BatchSize: batchSize,
		Dir:       dir,
		entropy:   ulid.Monotonic(rand.Reader, 0),
		terms:     make(map[string][]index.Posting),
		DocIDs:    make(map[int32]string),
	}
}

// Add assigns the next doc_id to url and appends one posting per term
// to the in-memory map. tf is keyed by stem; positions is keyed by
// stem with weights already discarded (positions-only), per the
// builder's contract. Add flushes automatically once BatchSize
// documents have accumulated since the last flush.
func (b *Builder) Add(url string, tf map[string]float64, positions map[string][]int) error {
	docID := b.nextID
	b.nextID++
	b.DocIDs[docID] = url

	for stem, weight := range tf {
		pos := make([]int32, len(positions[stem]))
		for i, p := range positions[stem] {
			pos[i] = int32(p)
		}
		b.terms[stem] = append(b.terms[stem], index.Posting{
			DocID:     docID,
			TF:        float32(weight),
			Positions: pos,
		})
	}

	b.inBatch++
	if b.inBatch >= b.BatchSize {
		return b.Flush()
	}
	return nil
}

// Flush serializes the current in-memory map to a new segment file and
// clears it. Flushing an empty batch (no documents added since the
// last flush) is a no-op, so a caller may always call Flush once at
// end-of-input without special-casing an evenly divisible document
// count.
func (b *Builder) Flush() error {
	if b.inBatch == 0 {
		return nil
	}

	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("partial: create segment dir: %w", err)
	}

	name := fmt.Sprintf("segment-%s.gob", ulid.MustNew(ulid.Timestamp(time.Now()), b.entropy).String())
	path := filepath.Join(b.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("partial: create segment file: %w", err)
	}
	defer f.Close()

	terms := make([]string, 0, len(b.terms))
	for term := range b.terms {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	enc := gob.NewEncoder(f)
	for _, term := range terms {
		if err := enc.Encode(termSegment{Term: term, Postings: b.terms[term]}); err != nil {
			return fmt.Errorf("partial: encode segment %q: %w", path, err)
		}
	}

	b.segments = append(b.segments, Segment{Path: path})
	b.terms = make(map[string][]index.Posting)
	b.inBatch = 0
	return nil
}

// Segments returns the flushed segment list in flush order. Call only
// after a final Flush at end-of-input.
func (b *Builder) Segments() []Segment {
	return b.segments
}

// Processed reports how many documents have been assigned a doc_id so
// far (admitted or not — Add is only called for admitted documents, so
// this is the admitted-document count).
func (b *Builder) Processed() int {
	return int(b.nextID)
}

// termSegment is one gob-encoded record within a partial segment file:
// one term and its postings for that batch, in document-insertion
// (doc_id ascending) order.
type termSegment struct {
	Term     string
	Postings []index.Posting
}
