// Command index walks a corpus directory and builds the persistent
// inverted index the search command serves from.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/cognicore/corpusindex/pkg/config"
	"github.com/cognicore/corpusindex/pkg/indexer"
)

func main() {
	var (
		outDir       = flag.String("out", ".", "Output directory for the index artifacts")
		batchSize    = flag.Int("batch-size", 0, "Partial-flush batch size (0 selects the default)")
		stoplistPath = flag.String("stoplist", "", "Optional YAML stoplist overriding the built-in list")
	)
	flag.Parse()

	root := "raw/DEV"
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	var stopwords []string
	if *stoplistPath != "" {
		sl, err := config.LoadStoplist(*stoplistPath)
		if err != nil {
			log.Fatal("Failed to load stoplist:", err)
		}
		stopwords = sl.Terms
	}

	log.Printf("corpusindex: indexing %s", root)

	stats, err := indexer.Build(indexer.Options{
		Root:      root,
		OutDir:    *outDir,
		BatchSize: *batchSize,
		Stopwords: stopwords,
	})
	if err != nil {
		log.Fatal("Build failed:", err)
	}

	log.Printf("scanned %d files, admitted %d documents (%d malformed, %d degenerate, %d duplicate skipped)",
		stats.ScannedFiles, stats.AdmittedDocs, stats.SkippedMalformed, stats.SkippedDegenerate, stats.SkippedDuplicate)
	log.Printf("%d unique terms, artifacts totaling %s", stats.UniqueTerms, humanize.Bytes(uint64(stats.TotalArtifactBytes)))

	os.Exit(0)
}
