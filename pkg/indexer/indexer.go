// Package indexer is the build facade: it drives the Init -> Scanning
// -> (BatchFull -> Flushing -> Scanning)* -> FinalFlush -> Merging ->
// WritingArtifacts -> Done state machine over a corpus directory,
// wiring the analyzer, duplicate filter, partial builder, merger, and
// writer together.
package indexer

import (
	"fmt"
	"log"
	"os"

	"github.com/cognicore/corpusindex/internal/walk"
	"github.com/cognicore/corpusindex/pkg/analyzer"
	"github.com/cognicore/corpusindex/pkg/index/merge"
	"github.com/cognicore/corpusindex/pkg/index/partial"
	"github.com/cognicore/corpusindex/pkg/index/writer"
	"github.com/cognicore/corpusindex/pkg/record"
	"github.com/cognicore/corpusindex/pkg/simhash"
)

// progressEvery is how often the build logs a processed-document count,
// matching the teacher's every-N-documents progress line.
const progressEvery = 500

// Options configures one build run.
type Options struct {
	Root      string // corpus root to walk for *.json records
	OutDir    string // where the five artifacts are written
	BatchSize int    // partial-flush batch size; 0 selects the default
	Stopwords []string
}

// Stats summarizes a completed build for the CLI's final report line.
type Stats struct {
	ScannedFiles       int
	AdmittedDocs       int
	SkippedMalformed   int
	SkippedDegenerate  int
	SkippedDuplicate   int
	UniqueTerms        int
	TotalArtifactBytes int64
}

// Build runs the full indexer state machine over opts.Root and writes
// the resulting artifacts to opts.OutDir.
func Build(opts Options) (Stats, error) {
	files, err := walk.JSONFiles(opts.Root)
	if err != nil {
		return Stats{}, fmt.Errorf("indexer: scan %q: %w", opts.Root, err)
	}

	a := analyzer.New(opts.Stopwords)
	dup := simhash.NewFilter()
	segmentDir := opts.OutDir + ".partials"
	builder := partial.New(segmentDir, opts.BatchSize)
	defer os.RemoveAll(segmentDir)

	var stats Stats
	stats.ScannedFiles = len(files)

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("indexer: skip %s: %v", path, err)
			stats.SkippedMalformed++
			continue
		}

		rec, err := record.Parse(data)
		if err != nil {
			log.Printf("indexer: skip %s: invalid JSON: %v", path, err)
			stats.SkippedMalformed++
			continue
		}
		if err := rec.Validate(); err != nil {
			log.Printf("indexer: skip %s: %v", path, err)
			stats.SkippedMalformed++
			continue
		}

		result, err := a.Analyze(rec.Content)
		if err != nil {
			log.Printf("indexer: skip %s (%s): %v", path, rec.URL, err)
			stats.SkippedDegenerate++
			continue
		}

		if !dup.Admit(result.SimHash) {
			stats.SkippedDuplicate++
			continue
		}

		positions := make(map[string][]int, len(result.Positions))
		for stem, occurrences := range result.Positions {
			ps := make([]int, len(occurrences))
			for i, o := range occurrences {
				ps[i] = o.Pos
			}
			positions[stem] = ps
		}

		segmentsBefore := len(builder.Segments())
		if err := builder.Add(rec.URL, result.TF, positions); err != nil {
			return Stats{}, fmt.Errorf("indexer: add %s: %w", rec.URL, err)
		}
		stats.AdmittedDocs++
		if len(builder.Segments()) > segmentsBefore {
			log.Printf("indexer: flushed batch %d (%d skipped duplicate)", len(builder.Segments()), stats.SkippedDuplicate)
		}

		if stats.AdmittedDocs%progressEvery == 0 {
			log.Printf("indexer: processed %d documents (%d skipped duplicate)", stats.AdmittedDocs, stats.SkippedDuplicate)
		}
	}

	segmentsBefore := len(builder.Segments())
	if err := builder.Flush(); err != nil {
		return Stats{}, fmt.Errorf("indexer: final flush: %w", err)
	}
	if len(builder.Segments()) > segmentsBefore {
		log.Printf("indexer: flushed batch %d (%d skipped duplicate)", len(builder.Segments()), stats.SkippedDuplicate)
	}

	merged, err := merge.Merge(builder.Segments())
	if err != nil {
		return Stats{}, fmt.Errorf("indexer: merge: %w", err)
	}

	res, err := writer.Write(opts.OutDir, merged, builder.DocIDs)
	if err != nil {
		return Stats{}, fmt.Errorf("indexer: write artifacts: %w", err)
	}

	stats.UniqueTerms = res.UniqueTerms
	stats.TotalArtifactBytes = res.TotalBytes
	return stats, nil
}
