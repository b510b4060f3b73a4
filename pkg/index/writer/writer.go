// Package writer emits the five durable artifacts a finished build
// leaves behind: postings.bin, dictionary.csv, doc_ids.json,
// doc_norms.json, and corpus_meta.json.
package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cognicore/corpusindex/pkg/index"
)

// Result summarizes what Write produced, for the CLI's final report
// line (processed-doc count, unique-term count, artifact size).
type Result struct {
	UniqueTerms  int
	TotalBytes   int64
	AdmittedDocs int
}

// Write emits all five artifacts under root: doc_ids.json at the top
// level, the rest under root/index/. terms is the merged term ->
// postings map; docIDs maps doc_id to URL for every admitted document.
func Write(root string, terms map[string][]index.Posting, docIDs map[int32]string) (Result, error) {
	indexDir := filepath.Join(root, "index")
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("writer: create index dir: %w", err)
	}

	sortedTerms := make([]string, 0, len(terms))
	for term := range terms {
		sortedTerms = append(sortedTerms, term)
	}
	sort.Strings(sortedTerms)

	postingsSize, dict, sumSquares, err := writePostings(indexDir, sortedTerms, terms)
	if err != nil {
		return Result{}, err
	}

	dictSize, err := writeDictionary(indexDir, dict)
	if err != nil {
		return Result{}, err
	}

	docIDsSize, err := writeDocIDs(root, docIDs)
	if err != nil {
		return Result{}, err
	}

	norms := index.FinishNorm(sumSquares)
	normsSize, err := writeDocNorms(indexDir, norms)
	if err != nil {
		return Result{}, err
	}

	metaSize, err := writeCorpusMeta(indexDir, len(docIDs))
	if err != nil {
		return Result{}, err
	}

	return Result{
		UniqueTerms:  len(sortedTerms),
		AdmittedDocs: len(docIDs),
		TotalBytes:   postingsSize + dictSize + docIDsSize + normsSize + metaSize,
	}, nil
}

func writePostings(indexDir string, sortedTerms []string, terms map[string][]index.Posting) (int64, []index.DictEntry, map[int32]float64, error) {
	path := filepath.Join(indexDir, "postings.bin")
	f, err := os.Create(path)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("writer: create postings.bin: %w", err)
	}
	defer f.Close()

	dict := make([]index.DictEntry, 0, len(sortedTerms))
	sumSquares := make(map[int32]float64)
	var offset int64

	for _, term := range sortedTerms {
		postings := terms[term]
		for _, p := range postings {
			index.AccumulateNorm(sumSquares, p.DocID, p.TF)
		}

		n, err := index.WritePostings(f, postings)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("writer: write postings for %q: %w", term, err)
		}

		dict = append(dict, index.DictEntry{
			Term:   term,
			DF:     len(postings),
			Offset: offset,
			Length: n,
		})
		offset += n
	}

	return offset, dict, sumSquares, nil
}

func writeDictionary(indexDir string, dict []index.DictEntry) (int64, error) {
	path := filepath.Join(indexDir, "dictionary.csv")
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("writer: create dictionary.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"term", "df", "offset", "length"}); err != nil {
		return 0, fmt.Errorf("writer: write dictionary header: %w", err)
	}
	for _, e := range dict {
		row := []string{
			e.Term,
			strconv.Itoa(e.DF),
			strconv.FormatInt(e.Offset, 10),
			strconv.FormatInt(e.Length, 10),
		}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("writer: write dictionary row for %q: %w", e.Term, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("writer: flush dictionary.csv: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("writer: stat dictionary.csv: %w", err)
	}
	return info.Size(), nil
}

func writeDocIDs(root string, docIDs map[int32]string) (int64, error) {
	out := make(map[string]string, len(docIDs))
	for id, url := range docIDs {
		out[strconv.Itoa(int(id))] = url
	}
	return writeJSON(filepath.Join(root, "doc_ids.json"), out)
}

func writeDocNorms(indexDir string, norms map[int32]float64) (int64, error) {
	out := make(map[string]float64, len(norms))
	for id, norm := range norms {
		out[strconv.Itoa(int(id))] = norm
	}
	return writeJSON(filepath.Join(indexDir, "doc_norms.json"), out)
}

func writeCorpusMeta(indexDir string, n int) (int64, error) {
	return writeJSON(filepath.Join(indexDir, "corpus_meta.json"), map[string]int{"N": n})
}

func writeJSON(path string, v any) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("writer: marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writer: write %q: %w", path, err)
	}
	return int64(len(data)), nil
}
