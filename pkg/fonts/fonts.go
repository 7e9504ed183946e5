// Package fonts provides the default measurement and rendering fonts.
//
// The Go fonts (golang.org/x/image/font/gofont) ship as Go source, so the
// defaults need no external files or embedded binaries. A system font can
// be substituted by file path or by name lookup via go-findfont, e.g. to
// match the exact font a hosting page renders with.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/aestriplex/grapher-footer/pkg/errors"
)

// Family names for the bundled defaults, as used in SVG output.
const (
	FamilyRegular = "Go"
	FamilyBold    = "Go Bold"

	// FallbackFamilies lists CSS fallbacks for viewers without the Go fonts.
	FallbackFamilies = `'Go', 'Helvetica Neue', Arial, sans-serif`
)

// Parsed defaults, computed once on first access.
var (
	regularOnce sync.Once
	regularFont *truetype.Font

	boldOnce sync.Once
	boldFont *truetype.Font
)

// Regular returns the default regular-weight font.
func Regular() *truetype.Font {
	regularOnce.Do(func() {
		regularFont = mustParse(goregular.TTF)
	})
	return regularFont
}

// Bold returns the default bold-weight font.
func Bold() *truetype.Font {
	boldOnce.Do(func() {
		boldFont = mustParse(gobold.TTF)
	})
	return boldFont
}

// mustParse parses embedded font data. The bundled TTFs are known good, so
// a parse failure here is a build defect, not a runtime condition.
func mustParse(data []byte) *truetype.Font {
	f, err := truetype.Parse(data)
	if err != nil {
		panic("fonts: parsing bundled font: " + err.Error())
	}
	return f
}

// LoadFile parses a truetype font from a file path.
func LoadFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font file %q", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFontParse, err, "reading font file %q", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontParse, err, "parsing font file %q", path)
	}
	return f, nil
}

// FindSystem locates an installed font by file name (e.g. "arial.ttf") and
// parses it. Lookup walks the platform font directories.
func FindSystem(name string) (*truetype.Font, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "font %q not installed", name)
	}
	return LoadFile(path)
}
