// Command search opens a built index and serves an interactive query
// prompt: free-text, boolean (AND/OR/NOT), and quoted exact-phrase
// queries, ranked by length-normalized TF-IDF.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/cognicore/corpusindex/internal/repl"
	"github.com/cognicore/corpusindex/pkg/config"
	"github.com/cognicore/corpusindex/pkg/query"
)

func main() {
	var (
		indexDir     = flag.String("index", ".", "Directory holding the built index artifacts")
		stoplistPath = flag.String("stoplist", "", "Optional YAML stoplist overriding the built-in list")
		synonymsPath = flag.String("synonyms", "", "synonyms.json for query expansion (default: <index>/index/synonyms.json)")
	)
	flag.Parse()

	var stopwords []string
	if *stoplistPath != "" {
		sl, err := config.LoadStoplist(*stoplistPath)
		if err != nil {
			log.Fatal("Failed to load stoplist:", err)
		}
		stopwords = sl.Terms
	}

	synPath := *synonymsPath
	if synPath == "" {
		synPath = filepath.Join(*indexDir, "index", "synonyms.json")
	}
	var synonyms config.Synonyms
	syn, err := config.LoadSynonyms(synPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// synonyms.json is produced externally and is optional; its
		// absence just means query expansion stays a no-op.
	case err != nil:
		log.Fatal("Failed to load synonyms:", err)
	default:
		synonyms = syn
	}

	e, err := query.Open(*indexDir, stopwords, synonyms)
	if err != nil {
		log.Fatal("Failed to open index:", err)
	}
	defer e.Close()

	log.Printf("corpusindex: serving %d documents from %s", e.N(), *indexDir)

	interactive := repl.IsInteractive(os.Stdin.Fd())
	repl.Run(e, os.Stdin, os.Stdout, interactive)

	os.Exit(0)
}
