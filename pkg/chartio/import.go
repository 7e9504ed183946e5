package chartio

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aestriplex/grapher-footer/pkg/errors"
	"github.com/aestriplex/grapher-footer/pkg/footer"
)

// Content is the authored footer content as it appears in a content file.
// It mirrors [footer.Input] minus the runtime sizing flags, with shorter
// keys for hand-written files.
type Content struct {
	Sources   string  `json:"sources,omitempty" toml:"sources"`
	Note      string  `json:"note,omitempty" toml:"note"`
	License   string  `json:"license,omitempty" toml:"license"`
	OriginURL string  `json:"origin_url,omitempty" toml:"origin_url"`
	HasLogo   bool    `json:"has_logo,omitempty" toml:"has_logo"`
	MaxWidth  float64 `json:"max_width,omitempty" toml:"max_width"`

	Buttons footer.ButtonsInput `json:"buttons" toml:"buttons"`
}

// ToInput converts authored content to an engine input. A non-zero width
// argument overrides the width stated in the file.
func (c Content) ToInput(width float64, small, medium bool) footer.Input {
	if width == 0 {
		width = c.MaxWidth
	}
	return footer.Input{
		SourcesLine: c.Sources,
		Note:        c.Note,
		LicenseText: c.License,
		OriginURL:   c.OriginURL,
		HasLogo:     c.HasLogo,
		IsSmall:     small,
		IsMedium:    medium,
		Buttons:     c.Buttons,
		MaxWidth:    width,
	}
}

// ReadTOML decodes TOML content from r.
func ReadTOML(r io.Reader) (Content, error) {
	var c Content
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return Content{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding TOML content")
	}
	return c, nil
}

// ReadJSON decodes JSON content from r.
func ReadJSON(r io.Reader) (Content, error) {
	var c Content
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Content{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding JSON content")
	}
	return c, nil
}

// ImportFile reads a content file, selecting the decoder by extension
// (.toml or .json).
func ImportFile(path string) (Content, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Content{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "opening %s", path)
		}
		return Content{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "opening %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ReadTOML(f)
	case ".json":
		return ReadJSON(f)
	default:
		return Content{}, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported content file %s (must be .toml or .json)", path)
	}
}
