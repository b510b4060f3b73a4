// Package walk produces a deterministic file list over a corpus
// directory tree, so doc_id assignment is reproducible across runs on
// the same input.
package walk

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// JSONFiles returns every *.json file under root, sorted
// lexicographically by path. Sorting makes the walk order (and
// therefore doc_id assignment) independent of the underlying
// filesystem's directory-entry order.
func JSONFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk: visit %q: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".json" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
