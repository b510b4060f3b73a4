package record

import "testing"

func TestParse(t *testing.T) {
	r, err := Parse([]byte(`{"url":"https://example.com/a","content":"<p>hi</p>","encoding":"utf-8"}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if r.URL != "https://example.com/a" {
		t.Errorf("URL = %q, want %q", r.URL, "https://example.com/a")
	}
	if r.Content != "<p>hi</p>" {
		t.Errorf("Content = %q, want %q", r.Content, "<p>hi</p>")
	}
	if r.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want %q", r.Encoding, "utf-8")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		r       Record
		wantErr bool
	}{
		{"valid", Record{URL: "https://example.com/a", Content: "hello"}, false},
		{"missing url", Record{Content: "hello"}, true},
		{"missing content", Record{URL: "https://example.com/a"}, true},
		{"whitespace url", Record{URL: "   ", Content: "hello"}, true},
		{"whitespace content", Record{URL: "https://example.com/a", Content: "  \t\n"}, true},
		{"encoding is advisory only", Record{URL: "https://example.com/a", Content: "hello", Encoding: ""}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.r.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestParseThenValidateEmptyContentSkipped(t *testing.T) {
	r, err := Parse([]byte(`{"url":"u","content":"","encoding":"utf-8"}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if err := r.Validate(); err == nil {
		t.Error("expected empty-content record to fail Validate")
	}
}
