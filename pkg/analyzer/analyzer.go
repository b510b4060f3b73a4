// Package analyzer turns one HTML payload into a weighted,
// position-tracked term-frequency map and a near-duplicate fingerprint.
package analyzer

import (
	"strings"

	"github.com/cognicore/corpusindex/internal/errs"
	"github.com/cognicore/corpusindex/pkg/simhash"
)

// Position records one occurrence of a stem: where in the document's
// monotone position counter it fell, and the structural weight it
// carried at that point.
type Position struct {
	Pos    int
	Weight float64
}

// Result is the per-document output of the analysis pipeline.
type Result struct {
	TF        map[string]float64
	Positions map[string][]Position
	SimHash   uint16
}

// Analyzer holds the process-lifetime-immutable pieces of the pipeline:
// the stopword-stem set and the stem memoization cache. Construct one
// per process (or per build) and reuse it across every document.
type Analyzer struct {
	stopStems map[string]struct{}
	stemmer   *stemmer
}

// New builds an Analyzer. If rawStopwords is nil, the built-in English
// stopword list (stemmed via the same Porter/Snowball pipeline used for
// document tokens) is used.
func New(rawStopwords []string) *Analyzer {
	if rawStopwords == nil {
		rawStopwords = defaultStopwords
	}

	st := newStemmer()
	stops := make(map[string]struct{}, len(rawStopwords))
	for _, w := range rawStopwords {
		stops[st.stem(strings.ToLower(w))] = struct{}{}
	}

	return &Analyzer{stopStems: stops, stemmer: st}
}

// IsStopword reports whether a stem is in the demotion set.
func (a *Analyzer) IsStopword(stem string) bool {
	_, ok := a.stopStems[stem]
	return ok
}

// TokenizeQuery runs the same lowercase/alnum-split/stem path used to
// build index terms over a query string, returning deduplicated stems
// in first-occurrence order. The query evaluator uses this to keep
// query-side and index-side tokenization identical.
func (a *Analyzer) TokenizeQuery(text string) []string {
	seen := make(map[string]struct{})
	var stems []string
	for _, tok := range tokenize(text) {
		stem := a.stemmer.stem(tok)
		if _, ok := seen[stem]; ok {
			continue
		}
		seen[stem] = struct{}{}
		stems = append(stems, stem)
	}
	return stems
}

// Analyze runs the full pipeline on one document payload: parse, prune,
// weighted structural extraction, stemming, stopword demotion,
// position bookkeeping, and SimHash. It returns errs.ErrDegenerate for
// empty or non-HTML (e.g. iCalendar) payloads, in which case the
// returned Result is zero-valued and must be skipped by the caller.
func (a *Analyzer) Analyze(payload string) (Result, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" || strings.HasPrefix(trimmed, "BEGIN:") {
		return Result{}, errs.ErrDegenerate
	}

	root, err := parseAndPrune(payload)
	if err != nil {
		return Result{}, errs.ErrMalformedInput
	}

	tf := make(map[string]float64)
	positions := make(map[string][]Position)
	rawFreq := make(map[string]float64)
	pos := 0

	record := func(stem, rawToken string, weight float64) {
		final := weight
		if a.IsStopword(stem) {
			final *= stopwordFactor
		}
		tf[stem] += final
		positions[stem] = append(positions[stem], Position{Pos: pos, Weight: final})
		rawFreq[rawToken]++
		pos++
	}

	for _, tw := range structuralOrder {
		for _, node := range findAll(root, tw.Tag) {
			text := textOf(node)
			for _, tok := range tokenize(text) {
				stem := a.stemmer.stem(tok)
				record(stem, tok, tw.Weight)
			}
		}
	}

	bodyText := textOf(bodyNode(root))
	for _, tok := range tokenize(bodyText) {
		stem := a.stemmer.stem(tok)
		record(stem, tok, bodyWeight)
	}

	if len(tf) == 0 {
		return Result{}, errs.ErrDegenerate
	}

	return Result{
		TF:        tf,
		Positions: positions,
		SimHash:   simhash.Compute(rawFreq),
	}, nil
}
