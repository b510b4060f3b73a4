package analyzer

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kljensen/snowball/english"
)

// tokenRe matches maximal runs of ASCII letters/digits; it is compiled
// once and never mutated, per the process-lifetime-singleton design.
var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// stemCacheSize bounds the per-raw-token stem memoization. A corpus of
// static HTML pages revisits the same few thousand distinct tokens
// constantly, so a modest bound amortizes virtually all stemming cost.
const stemCacheSize = 65536

// tokenize lowercases text and splits it into raw alphanumeric tokens.
func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// stemmer memoizes Porter/Snowball stemming by raw token. It is a pure
// function cache: once warm, stem(t) always returns the same value for
// the same t, so bounding its size never changes observable behavior.
type stemmer struct {
	cache *lru.Cache[string, string]
}

func newStemmer() *stemmer {
	cache, err := lru.New[string, string](stemCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which never
		// happens here.
		panic(err)
	}
	return &stemmer{cache: cache}
}

func (s *stemmer) stem(token string) string {
	if cached, ok := s.cache.Get(token); ok {
		return cached
	}
	stemmed := english.Stem(token, false)
	s.cache.Add(token, stemmed)
	return stemmed
}
