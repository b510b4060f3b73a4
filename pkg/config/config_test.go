package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStoplist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stoplist.yaml")
	content := "terms:\n  - the\n  - a\n  - and\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("LoadStoplist returned error: %v", err)
	}
	if len(sl.Terms) != 3 {
		t.Errorf("len(Terms) = %d, want 3", len(sl.Terms))
	}
}

func TestLoadStoplistMissingFile(t *testing.T) {
	_, err := LoadStoplist(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected an error for a missing stoplist file")
	}
}

func TestLoadSynonymsAndFor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "synonyms.json")
	content := `{"car": ["automobile", "vehicle", "sedan", "wagon"]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	syn, err := LoadSynonyms(path)
	if err != nil {
		t.Fatalf("LoadSynonyms returned error: %v", err)
	}

	got := syn.For("car", 3)
	if len(got) != 3 {
		t.Fatalf("For(car, 3) = %v, want 3 entries", got)
	}
	want := []string{"automobile", "vehicle", "sedan"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("For(car, 3)[%d] = %q, want %q", i, got[i], w)
		}
	}

	if got := syn.For("unknown-term", 3); got != nil {
		t.Errorf("For(unknown-term, 3) = %v, want nil", got)
	}
}
