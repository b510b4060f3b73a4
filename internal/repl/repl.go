// Package repl implements the search CLI's interactive prompt loop:
// read a query line, evaluate it, print ranked results with elapsed
// time, until the user types /quit or closes stdin.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/cognicore/corpusindex/pkg/query"
)

const topK = 10

// Run drives the prompt loop, reading from in and writing results to
// out. The `Search > ` prompt is printed only when interactive is true;
// the search command passes IsInteractive(os.Stdin.Fd()), so piped
// input (e.g. a scripted test fixture) gets clean, predictable output.
func Run(e *query.Evaluator, in io.Reader, out io.Writer, interactive bool) {
	sessionID := uuid.NewString()
	log.Printf("search session %s started", sessionID)

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "Search > ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}

		start := time.Now()
		results := e.EvalBoolean(line, topK)
		elapsed := time.Since(start)

		if len(results) == 0 {
			fmt.Fprintln(out, "No results.")
		}
		for i, r := range results {
			fmt.Fprintf(out, "%d. %s (score=%.4f)\n", i+1, r.URL, r.Score)
		}
		fmt.Fprintf(out, "(%d results, %dms)\n", len(results), elapsed.Milliseconds())
	}

	log.Printf("search session %s ended", sessionID)
}

// IsInteractive reports whether fd (e.g. os.Stdin.Fd()) is attached to
// a terminal.
func IsInteractive(fd uintptr) bool {
	return isatty.IsTerminal(fd)
}
