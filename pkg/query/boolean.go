package query

import (
	"sort"
	"strings"
)

func sortByScoreThenURL(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].URL < results[j].URL
	})
}

// Op is a boolean composition operator.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpNot
)

// Apply composes left and right by URL per op:
//   - AND: intersection, score is the sum of both sides' scores.
//   - OR: union, score is the max of both sides' scores, restricted to
//     the top k.
//   - NOT: left minus right, scores carried from left.
func Apply(op Op, left, right []Result, k int) []Result {
	switch op {
	case OpAnd:
		return applyAnd(left, right)
	case OpOr:
		return applyOr(left, right, k)
	case OpNot:
		return applyNot(left, right)
	default:
		return left
	}
}

func applyAnd(left, right []Result) []Result {
	rightScores := byURL(right)
	var out []Result
	for _, l := range left {
		if rs, ok := rightScores[l.URL]; ok {
			out = append(out, Result{URL: l.URL, Score: l.Score + rs})
		}
	}
	return out
}

func applyOr(left, right []Result, k int) []Result {
	merged := make(map[string]float64, len(left)+len(right))
	for _, l := range left {
		merged[l.URL] = l.Score
	}
	for _, r := range right {
		if existing, ok := merged[r.URL]; !ok || r.Score > existing {
			merged[r.URL] = r.Score
		}
	}

	out := make([]Result, 0, len(merged))
	for url, score := range merged {
		out = append(out, Result{URL: url, Score: score})
	}
	sortByScoreThenURL(out)
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func applyNot(left, right []Result) []Result {
	exclude := byURL(right)
	var out []Result
	for _, l := range left {
		if _, ok := exclude[l.URL]; !ok {
			out = append(out, l)
		}
	}
	return out
}

func byURL(results []Result) map[string]float64 {
	m := make(map[string]float64, len(results))
	for _, r := range results {
		m[r.URL] = r.Score
	}
	return m
}

// ParseOp classifies a whitespace-delimited query token as a boolean
// operator, case-insensitively. The second return value is false for
// ordinary terms.
func ParseOp(token string) (Op, bool) {
	switch strings.ToUpper(token) {
	case "AND":
		return OpAnd, true
	case "OR":
		return OpOr, true
	case "NOT":
		return OpNot, true
	default:
		return 0, false
	}
}

// EvalBoolean parses a whitespace-split query left-to-right with no
// operator precedence: result = search(t0); for each subsequent
// (op, term) pair, result = apply(op, result, search(term)). A query
// with no recognized operators dispatches straight to Search.
func (e *Evaluator) EvalBoolean(queryText string, k int) []Result {
	fields := strings.Fields(queryText)
	if len(fields) == 0 {
		return nil
	}

	// Detect whether this is a boolean query at all: an operator may
	// only appear at an odd index (between two terms).
	hasOp := false
	for i := 1; i < len(fields); i += 2 {
		if _, ok := ParseOp(fields[i]); ok {
			hasOp = true
			break
		}
	}
	if !hasOp {
		return e.Search(queryText, k, true)
	}

	result := e.Search(fields[0], k, true)
	for i := 1; i+1 < len(fields); i += 2 {
		op, ok := ParseOp(fields[i])
		if !ok {
			break
		}
		rhs := e.Search(fields[i+1], k, true)
		result = Apply(op, result, rhs, k)
	}
	return result
}
