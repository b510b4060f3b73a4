package index

import "math"

// logTF is the log-dampened term-frequency weight shared by doc-norm
// computation and query scoring: 1 + log(max(tf, 1e-6)).
func logTF(tf float64) float64 {
	if tf < 1e-6 {
		tf = 1e-6
	}
	return 1 + math.Log(tf)
}

// LogTF exports logTF for the query evaluator, which needs the exact
// same weighting function to stay consistent with doc_norms.json.
func LogTF(tf float64) float64 {
	return logTF(tf)
}

// AccumulateNorm folds one posting's contribution into a running
// sum-of-squares accumulator for its document's norm. Call
// FinishNorm once all postings for a document have been folded in.
func AccumulateNorm(sumSquares map[int32]float64, docID int32, tf float32) {
	w := logTF(float64(tf))
	sumSquares[docID] += w * w
}

// FinishNorm turns accumulated sums-of-squares into Euclidean norms.
func FinishNorm(sumSquares map[int32]float64) map[int32]float64 {
	norms := make(map[int32]float64, len(sumSquares))
	for docID, ss := range sumSquares {
		norms[docID] = math.Sqrt(ss)
	}
	return norms
}
