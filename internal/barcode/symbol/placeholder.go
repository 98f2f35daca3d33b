package symbol

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const placeholderMarker = "SIMULATED - NOT SCANNABLE"

// PlaceholderImage wraps the simulated raster so callers can tell it apart
// from a genuine symbol programmatically, not just by looking.
type PlaceholderImage struct {
	*image.Gray
}

func (*PlaceholderImage) Simulated() bool { return true }

// IsPlaceholder reports whether a rendered image is a simulated stand-in
// rather than a scannable symbol.
func IsPlaceholder(img image.Image) bool {
	s, ok := img.(interface{ Simulated() bool })
	return ok && s.Simulated()
}

// PlaceholderRenderer stands in for a real symbology in development and test
// environments. The raster carries a visible marker so it can never be
// mistaken for a scannable barcode on a printed card.
type PlaceholderRenderer struct{}

func NewPlaceholderRenderer() *PlaceholderRenderer {
	return &PlaceholderRenderer{}
}

func (*PlaceholderRenderer) Render(data string, tier Tier) (image.Image, error) {
	face := basicfont.Face7x13
	detail := fmt.Sprintf("tier=%s bytes=%d", tier.Name, len(data))

	w := face.Advance*len(placeholderMarker) + 24
	if dw := face.Advance*len(detail) + 24; dw > w {
		w = dw
	}
	const h = 64

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Gray{Y: 0xdd}}, image.Point{}, draw.Src)

	drawLine := func(text string, y int) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P((w-face.Advance*len(text))/2, y),
		}
		d.DrawString(text)
	}
	drawLine(placeholderMarker, 26)
	drawLine(detail, 46)

	return &PlaceholderImage{img}, nil
}
