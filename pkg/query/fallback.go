package query

// fallback runs the relaxed re-query cascade after a primary search
// yielded zero results. Every step here calls searchTerms directly (or
// Search with allowFallback=false), so the cascade can never recurse
// into itself.
//
//  1. Rerun as an OR query over the original terms.
//  2. If every original term is a stopword, stop and return empty.
//  3. Otherwise drop stopwords from the original terms and rerun.
//  4. Otherwise rerun as an OR over up to maxSynonyms synonyms per
//     original term, keeping only those present in the dictionary.
//  5. Otherwise return empty.
func (e *Evaluator) fallback(origTerms []string, k int) []Result {
	if len(origTerms) == 0 {
		return nil
	}

	if results := e.orOverTerms(origTerms, k); len(results) > 0 {
		return results
	}

	allStopwords := true
	var nonStop []string
	for _, t := range origTerms {
		if e.analyzer.IsStopword(t) {
			continue
		}
		allStopwords = false
		nonStop = append(nonStop, t)
	}
	if allStopwords {
		return nil
	}

	if results := e.orOverTerms(nonStop, k); len(results) > 0 {
		return results
	}

	var synTerms []string
	if e.synonyms != nil {
		for _, t := range origTerms {
			for _, syn := range e.synonyms.For(t, maxSynonyms) {
				if _, ok := e.art.dictionary[syn]; ok {
					synTerms = append(synTerms, syn)
				}
			}
		}
	}
	if len(synTerms) == 0 {
		return nil
	}
	return e.orOverTerms(synTerms, k)
}

// orOverTerms searches each term independently (no synonym expansion,
// no phrase mode) and ORs the results together.
func (e *Evaluator) orOverTerms(terms []string, k int) []Result {
	if len(terms) == 0 {
		return nil
	}
	result := e.searchTerms(terms[:1], false, k)
	for _, t := range terms[1:] {
		result = Apply(OpOr, result, e.searchTerms([]string{t}, false, k), k)
	}
	return result
}
