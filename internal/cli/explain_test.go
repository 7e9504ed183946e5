package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// what it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	return string(data)
}

func TestExplainOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "footer.toml")
	fixture := `sources = "Data source: World Bank"
license = "CC BY"
origin_url = "https://example.org/charts/gdp"
max_width = 1200
`
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	opts := &layoutFlags{noCache: true}
	out := captureStdout(t, func() {
		if err := runExplain(context.Background(), path, opts); err != nil {
			t.Fatalf("runExplain: %v", err)
		}
	})

	if !strings.Contains(out, "Layout at 1200px") {
		t.Errorf("output missing width title:\n%s", out)
	}
	if !strings.Contains(out, "content "+path) {
		t.Errorf("output missing content file line:\n%s", out)
	}
	// 1200px leaves plenty of room beside the buttons, so the origin URL
	// is kept and printed as a link under the decision flags.
	if !strings.Contains(out, "https://example.org/charts/gdp") {
		t.Errorf("output missing origin URL:\n%s", out)
	}
}
