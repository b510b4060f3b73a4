// Package errs collects sentinel errors shared across corpusindex.
package errs

import "errors"

// Sentinel errors for common cases across the indexer and evaluator.
var (
	ErrMalformedInput  = errors.New("input malformed")
	ErrDegenerate      = errors.New("analyzer degenerate input")
	ErrArtifactMissing = errors.New("index artifact missing")
	ErrEmptyQuery      = errors.New("query is empty")
)
