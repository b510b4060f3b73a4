package query

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cognicore/corpusindex/internal/errs"
	"github.com/cognicore/corpusindex/pkg/index"
)

// artifacts holds the five opened/loaded build outputs an Evaluator
// needs for its lifetime. postingsFile is kept open for the life of
// the Evaluator to amortize seek cost across queries.
type artifacts struct {
	postingsFile *os.File
	dictionary   map[string]index.DictEntry
	docIDs       map[int32]string
	docNorms     map[int32]float64
	n            int
}

func openArtifacts(root string) (*artifacts, error) {
	indexDir := filepath.Join(root, "index")

	postingsFile, err := os.Open(filepath.Join(indexDir, "postings.bin"))
	if err != nil {
		return nil, fmt.Errorf("query: %w: %v", errs.ErrArtifactMissing, err)
	}

	dict, err := loadDictionary(filepath.Join(indexDir, "dictionary.csv"))
	if err != nil {
		postingsFile.Close()
		return nil, fmt.Errorf("query: %w: %v", errs.ErrArtifactMissing, err)
	}

	docIDs, err := loadDocIDs(filepath.Join(root, "doc_ids.json"))
	if err != nil {
		postingsFile.Close()
		return nil, fmt.Errorf("query: %w: %v", errs.ErrArtifactMissing, err)
	}

	docNorms, err := loadDocNorms(filepath.Join(indexDir, "doc_norms.json"))
	if err != nil {
		postingsFile.Close()
		return nil, fmt.Errorf("query: %w: %v", errs.ErrArtifactMissing, err)
	}

	n, err := loadCorpusMeta(filepath.Join(indexDir, "corpus_meta.json"))
	if err != nil {
		postingsFile.Close()
		return nil, fmt.Errorf("query: %w: %v", errs.ErrArtifactMissing, err)
	}

	return &artifacts{
		postingsFile: postingsFile,
		dictionary:   dict,
		docIDs:       docIDs,
		docNorms:     docNorms,
		n:            n,
	}, nil
}

func (a *artifacts) Close() error {
	return a.postingsFile.Close()
}

func loadDictionary(path string) (map[string]index.DictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]index.DictEntry{}, nil
	}

	dict := make(map[string]index.DictEntry, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) != 4 {
			continue
		}
		df, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("dictionary.csv: bad df for %q: %w", row[0], err)
		}
		offset, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dictionary.csv: bad offset for %q: %w", row[0], err)
		}
		length, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dictionary.csv: bad length for %q: %w", row[0], err)
		}
		dict[row[0]] = index.DictEntry{Term: row[0], DF: df, Offset: offset, Length: length}
	}
	return dict, nil
}

func loadDocIDs(path string) (map[int32]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[int32]string, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("doc_ids.json: bad key %q: %w", k, err)
		}
		out[int32(id)] = v
	}
	return out, nil
}

func loadDocNorms(path string) (map[int32]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[int32]float64, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("doc_norms.json: bad key %q: %w", k, err)
		}
		out[int32(id)] = v
	}
	return out, nil
}

func loadCorpusMeta(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var meta struct {
		N int `json:"N"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return 0, err
	}
	return meta.N, nil
}

// postingsFor reads the on-disk postings for term, or (nil, false) if
// term is not in the dictionary (TermUnknown — neutral, not an error).
func (a *artifacts) postingsFor(term string) ([]index.Posting, bool, error) {
	entry, ok := a.dictionary[term]
	if !ok {
		return nil, false, nil
	}
	if _, err := a.postingsFile.Seek(entry.Offset, 0); err != nil {
		return nil, false, fmt.Errorf("query: seek postings for %q: %w", term, err)
	}
	postings, err := index.ReadPostings(&boundedReader{r: a.postingsFile, remaining: entry.Length}, entry.DF)
	if err != nil {
		return nil, false, fmt.Errorf("query: read postings for %q: %w", term, err)
	}
	return postings, true, nil
}

// boundedReader stops a read at a fixed byte budget, so a corrupt
// dictionary entry can't cause ReadPostings to wander into the next
// term's bytes instead of erroring.
type boundedReader struct {
	r         *os.File
	remaining int64
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		return 0, fmt.Errorf("query: postings entry exhausted its declared length")
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.r.Read(p)
	b.remaining -= int64(n)
	return n, err
}
