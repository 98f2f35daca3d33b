package symbol

import (
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/pdf417"

	domainerrors "permis/pkg/domain-errors"
)

// A PDF417 column is 17 modules wide.
const pdf417ModulesPerColumn = 17

// PDF417Renderer renders the production symbology. Each module is scaled up
// so the printed symbol survives card lamination and cheap scanners.
type PDF417Renderer struct {
	ModuleScale int
}

func NewPDF417Renderer() *PDF417Renderer {
	return &PDF417Renderer{ModuleScale: 3}
}

func (r *PDF417Renderer) Render(data string, tier Tier) (image.Image, error) {
	bc, err := pdf417.Encode(data, byte(tier.SecurityLevel))
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeRenderFailed, "pdf417 encode")
	}

	scale := r.ModuleScale
	if scale < 1 {
		scale = 1
	}
	b := bc.Bounds()
	// Width floor comes from the tier's column count so every tier prints at
	// a predictable physical width.
	w := tier.Columns * pdf417ModulesPerColumn * scale
	if bw := b.Dx() * scale; bw > w {
		w = bw
	}
	scaled, err := barcode.Scale(bc, w, b.Dy()*scale)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeRenderFailed, "scale pdf417 symbol")
	}
	return scaled, nil
}
