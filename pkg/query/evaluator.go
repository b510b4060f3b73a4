// Package query implements the evaluator: it opens a finished build's
// artifacts and answers free-text, boolean, and exact-phrase queries
// ranked by length-normalized TF-IDF.
package query

import (
	"math"
	"sort"
	"strings"

	"github.com/cognicore/corpusindex/pkg/analyzer"
	"github.com/cognicore/corpusindex/pkg/config"
	"github.com/cognicore/corpusindex/pkg/index"
)

// highDFThreshold is the document-frequency cutoff above which a term
// is common enough that synonym expansion no longer helps discriminate
// between documents.
const highDFThreshold = 1000

// synonymWeight and maxSynonyms bound how much a synonym can contribute
// relative to the original query term.
const (
	synonymWeight = 0.6
	maxSynonyms   = 3
)

// phraseBoost rewards an exact-phrase hit over a bag-of-words match.
const phraseBoost = 2.0

// Result is one ranked hit.
type Result struct {
	URL   string
	Score float64
}

// Evaluator answers queries against one finished build's artifacts.
// It is not safe for concurrent use by multiple goroutines — the
// system is single-threaded end to end (serves one query at a time).
type Evaluator struct {
	art      *artifacts
	analyzer *analyzer.Analyzer
	synonyms config.Synonyms
}

// Open loads all five build artifacts from root and prepares an
// Evaluator. synonyms may be nil if no synonym table is available;
// expansion is then a no-op. Open is the only place ArtifactMissing can
// surface — it is fatal to the caller.
func Open(root string, stopwords []string, synonyms config.Synonyms) (*Evaluator, error) {
	art, err := openArtifacts(root)
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		art:      art,
		analyzer: analyzer.New(stopwords),
		synonyms: synonyms,
	}, nil
}

// Close releases the postings file handle.
func (e *Evaluator) Close() error {
	return e.art.Close()
}

// N reports the number of admitted documents in the build.
func (e *Evaluator) N() int {
	return e.art.n
}

// weightedTerm is one expanded query term with its contribution weight.
type weightedTerm struct {
	stem   string
	weight float64
}

// Search is the core operation: tokenize, expand, score, optionally
// restrict to phrase matches, normalize, and return the top k results.
// When allowFallback is true and the primary search yields nothing, the
// fallback cascade (§ Fallback cascade) runs once; the cascade itself
// always calls Search with allowFallback=false, so it can never recurse.
func (e *Evaluator) Search(queryText string, k int, allowFallback bool) []Result {
	trimmed := strings.TrimSpace(queryText)
	lower := strings.ToLower(trimmed)
	isPhrase := len(lower) >= 2 && strings.HasPrefix(lower, `"`) && strings.HasSuffix(lower, `"`)

	origTerms := e.analyzer.TokenizeQuery(trimmed)
	if isPhrase && len(origTerms) < 2 {
		isPhrase = false
	}

	results := e.searchTerms(origTerms, isPhrase, k)
	if len(results) > 0 || !allowFallback {
		return results
	}
	return e.fallback(origTerms, k)
}

// searchTerms scores origTerms (already tokenized/stemmed) and returns
// the top k (url, score) pairs.
func (e *Evaluator) searchTerms(origTerms []string, phraseMode bool, k int) []Result {
	if len(origTerms) == 0 {
		return nil
	}

	expanded := e.expand(origTerms)
	scores := make(map[int32]float64)

	for _, wt := range expanded {
		postings, ok, err := e.art.postingsFor(wt.stem)
		if err != nil || !ok {
			continue // TermUnknown: neutral, contributes nothing
		}
		df := len(postings)
		idf := math.Log((float64(e.art.n)+1)/(float64(df)+0.5)) + 1.0
		for _, p := range postings {
			scores[p.DocID] += index.LogTF(float64(p.TF)) * idf * wt.weight
		}
	}

	if phraseMode {
		phraseDocs := e.phraseMatch(expandedStems(expanded))
		restricted := make(map[int32]float64, len(phraseDocs))
		for d := range phraseDocs {
			if s, ok := scores[d]; ok {
				restricted[d] = s * phraseBoost
			}
		}
		scores = restricted
	}

	return e.topK(scores, k)
}

// expand performs synonym expansion: each original term contributes
// weight 1.0, plus up to maxSynonyms synonym stems at synonymWeight,
// skipped entirely for terms whose document frequency exceeds
// highDFThreshold.
func (e *Evaluator) expand(origTerms []string) []weightedTerm {
	expanded := make([]weightedTerm, 0, len(origTerms))
	for _, t := range origTerms {
		expanded = append(expanded, weightedTerm{stem: t, weight: 1.0})

		if entry, ok := e.art.dictionary[t]; ok && entry.DF > highDFThreshold {
			continue
		}
		if e.synonyms == nil {
			continue
		}
		for _, syn := range e.synonyms.For(t, maxSynonyms) {
			expanded = append(expanded, weightedTerm{stem: syn, weight: synonymWeight})
		}
	}
	return expanded
}

func expandedStems(expanded []weightedTerm) []string {
	stems := make([]string, len(expanded))
	for i, wt := range expanded {
		stems[i] = wt.stem
	}
	return stems
}

// phraseMatch returns the set of doc_ids where terms occur as a
// contiguous phrase, in the given order, using exact position deltas.
func (e *Evaluator) phraseMatch(terms []string) map[int32]struct{} {
	if len(terms) == 0 {
		return nil
	}

	postingsByTerm := make([][]index.Posting, len(terms))
	for i, t := range terms {
		postings, ok, err := e.art.postingsFor(t)
		if err != nil || !ok {
			return nil // any missing term means no phrase can match
		}
		postingsByTerm[i] = postings
	}

	positionSets := make([]map[int32]map[int32]struct{}, len(terms))
	for i, postings := range postingsByTerm {
		m := make(map[int32]map[int32]struct{}, len(postings))
		for _, p := range postings {
			set := make(map[int32]struct{}, len(p.Positions))
			for _, pos := range p.Positions {
				set[pos] = struct{}{}
			}
			m[p.DocID] = set
		}
		positionSets[i] = m
	}

	matches := make(map[int32]struct{})
	for docID, firstPositions := range positionSets[0] {
		inAll := true
		for i := 1; i < len(positionSets); i++ {
			if _, ok := positionSets[i][docID]; !ok {
				inAll = false
				break
			}
		}
		if !inAll {
			continue
		}

		for p := range firstPositions {
			aligned := true
			for i := 1; i < len(positionSets); i++ {
				if _, ok := positionSets[i][docID][p+int32(i)]; !ok {
					aligned = false
					break
				}
			}
			if aligned {
				matches[docID] = struct{}{}
				break
			}
		}
	}
	return matches
}

// topK applies cosine normalization and returns the top k (url, score)
// pairs, ties broken by ascending doc_id.
func (e *Evaluator) topK(scores map[int32]float64, k int) []Result {
	type scored struct {
		docID int32
		score float64
	}
	docs := make([]scored, 0, len(scores))
	for docID, s := range scores {
		norm := e.art.docNorms[docID]
		if norm > 0 {
			s /= norm
		}
		docs = append(docs, scored{docID: docID, score: s})
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].score != docs[j].score {
			return docs[i].score > docs[j].score
		}
		return docs[i].docID < docs[j].docID
	})

	if k > 0 && len(docs) > k {
		docs = docs[:k]
	}

	results := make([]Result, len(docs))
	for i, d := range docs {
		results[i] = Result{URL: e.art.docIDs[d.docID], Score: d.score}
	}
	return results
}
