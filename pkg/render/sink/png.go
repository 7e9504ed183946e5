package sink

import (
	"bytes"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/aestriplex/grapher-footer/pkg/errors"
	"github.com/aestriplex/grapher-footer/pkg/fonts"
	"github.com/aestriplex/grapher-footer/pkg/footer"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	font  *truetype.Font
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithFont draws text with the given font instead of the bundled default.
// Pass the same font the arrangement was measured with, or glyphs will not
// match their allotted boxes.
func WithFont(f *truetype.Font) PNGOption {
	return func(r *pngRenderer) { r.font = f }
}

// RenderPNG rasterizes the arrangement on a white background.
func RenderPNG(a footer.Arrangement, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, font: fonts.Regular()}
	for _, opt := range opts {
		opt(&r)
	}

	dc := gg.NewContext(int(a.Width*r.scale), int(a.Height*r.scale))
	dc.Scale(r.scale, r.scale)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	for _, b := range a.Blocks {
		switch b.Kind {
		case footer.BlockButtons:
			r.drawButtons(dc, b)
		default:
			r.drawText(dc, b)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}

// drawText paints one wrapped text block line by line.
func (r *pngRenderer) drawText(dc *gg.Context, b footer.PlacedBlock) {
	dc.SetFontFace(r.face(b.FontSize))
	if b.Kind == footer.BlockLicense {
		dc.SetHexColor(colorMuted)
	} else {
		dc.SetHexColor(colorText)
	}
	for i, line := range b.Lines {
		y := b.Y + (float64(i)+baselineRatio)*b.LineHeight
		dc.DrawString(line, b.X, y)
	}
}

// drawButtons paints the action-button cluster.
func (r *pngRenderer) drawButtons(dc *gg.Context, b footer.PlacedBlock) {
	x := b.X
	for _, btn := range b.Buttons {
		dc.SetHexColor(colorButtonFill)
		dc.DrawRoundedRectangle(x, b.Y, btn.Width, b.H, buttonCornerRadius)
		dc.FillPreserve()
		dc.SetHexColor(colorButtonBorder)
		dc.Stroke()

		dc.SetHexColor(colorButtonText)
		dc.DrawCircle(x+buttonIconInset, b.Y+b.H/2, buttonIconRadius)
		dc.Fill()

		if btn.ShowLabel {
			dc.SetFontFace(r.face(13))
			dc.DrawString(btn.Label, x+buttonIconInset*2, b.Y+b.H/2+13*baselineRatio/2)
		}
		x += btn.Width + footer.HGap
	}
}

// face builds a drawing face at the given size.
func (r *pngRenderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72})
}
