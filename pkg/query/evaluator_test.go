package query

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/corpusindex/pkg/indexer"
)

func buildTestIndex(t *testing.T, docs map[string]string) string {
	t.Helper()
	root := t.TempDir()
	i := 0
	for url, content := range docs {
		data, err := json.Marshal(map[string]string{"url": url, "content": content, "encoding": "utf-8"})
		if err != nil {
			t.Fatalf("marshal record: %v", err)
		}
		name := filepath.Join(root, "doc"+string(rune('0'+i))+".json")
		if err := os.WriteFile(name, data, 0o644); err != nil {
			t.Fatalf("write record: %v", err)
		}
		i++
	}

	out := t.TempDir()
	if _, err := indexer.Build(indexer.Options{Root: root, OutDir: out}); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return out
}

func TestPhraseMatch(t *testing.T) {
	out := buildTestIndex(t, map[string]string{
		"https://example.com/1": "<body>machine learning is fun</body>",
		"https://example.com/2": "<body>learning machine tools</body>",
	})

	e, err := Open(out, nil, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer e.Close()

	results := e.Search(`"machine learning"`, 10, false)
	if len(results) != 1 {
		t.Fatalf("Search(phrase) = %v, want exactly 1 result", results)
	}
	if results[0].URL != "https://example.com/1" {
		t.Errorf("Search(phrase)[0].URL = %q, want doc1", results[0].URL)
	}
}

func TestSearchReturnsOnlyMatchingDocs(t *testing.T) {
	out := buildTestIndex(t, map[string]string{
		"https://example.com/common":  "<body>zephyr appears here once</body>",
		"https://example.com/rare-a":  "<body>quokka quokka quokka quokka</body>",
		"https://example.com/neither": "<body>fjord ember cobalt</body>",
	})

	e, err := Open(out, nil, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer e.Close()

	results := e.Search("quokka", 10, false)
	if len(results) != 1 || results[0].URL != "https://example.com/rare-a" {
		t.Fatalf("Search(quokka) = %v, want only rare-a", results)
	}
}

func TestSearchUnknownTermYieldsEmpty(t *testing.T) {
	out := buildTestIndex(t, map[string]string{
		"https://example.com/a": "<body>alpha beta</body>",
	})
	e, err := Open(out, nil, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer e.Close()

	results := e.Search("zzz-never-appears", 10, false)
	if len(results) != 0 {
		t.Errorf("Search(unknown term) = %v, want empty", results)
	}
}

func TestFallbackCascadeTerminatesOnAllStopwords(t *testing.T) {
	out := buildTestIndex(t, map[string]string{
		"https://example.com/a": "<body>alpha beta gamma</body>",
	})
	e, err := Open(out, nil, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer e.Close()

	results := e.Search("to be", 10, true)
	if results != nil {
		t.Errorf("Search(stopword-only query, fallback) = %v, want nil", results)
	}
}

func TestBooleanAndOrNot(t *testing.T) {
	out := buildTestIndex(t, map[string]string{
		"https://example.com/both":  "<body>alpha beta</body>",
		"https://example.com/alpha": "<body>alpha only here</body>",
		"https://example.com/beta":  "<body>beta only here</body>",
	})
	e, err := Open(out, nil, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer e.Close()

	and := e.EvalBoolean("alpha AND beta", 10)
	if len(and) != 1 || and[0].URL != "https://example.com/both" {
		t.Errorf("alpha AND beta = %v, want only both", and)
	}

	or := e.EvalBoolean("alpha OR beta", 10)
	if len(or) != 3 {
		t.Errorf("alpha OR beta = %v, want 3 results", or)
	}

	not := e.EvalBoolean("alpha NOT beta", 10)
	if len(not) != 1 || not[0].URL != "https://example.com/alpha" {
		t.Errorf("alpha NOT beta = %v, want only alpha-only", not)
	}
}

func TestTopKMonotonicAndBounded(t *testing.T) {
	out := buildTestIndex(t, map[string]string{
		"https://example.com/1": "<title>Shared</title><body>shared shared shared term</body>",
		"https://example.com/2": "<title>Robots</title><body>shared term robots learn to walk today</body>",
		"https://example.com/3": "<body>shared quokka populations in distant fjords</body>",
	})
	e, err := Open(out, nil, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer e.Close()

	results := e.Search("shared", 2, false)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want min(k, matches) = 2", len(results))
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not nonincreasing in score: %v", results)
	}
}
