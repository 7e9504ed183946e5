package chartio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aestriplex/grapher-footer/pkg/errors"
)

// WriteArtifacts writes rendered artifacts next to each other, named
// base.<format> for every entry. It returns the written paths in no
// particular order.
func WriteArtifacts(base string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "creating output directory")
		}
	}

	// Strip an explicit extension so "footer.svg" and "footer" behave alike.
	base = strings.TrimSuffix(base, filepath.Ext(base))

	paths := make([]string, 0, len(artifacts))
	for format, data := range artifacts {
		path := base + "." + format
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
