package symbol

import (
	"image"

	"github.com/skip2/go-qrcode"

	domainerrors "permis/pkg/domain-errors"
)

// QRRenderer is the alternative symbology for deployments without a PDF417
// scanning chain. It is selected explicitly through configuration, never as a
// silent fallback.
type QRRenderer struct {
	Size int
}

func NewQRRenderer() *QRRenderer {
	return &QRRenderer{Size: 256}
}

func (r *QRRenderer) Render(data string, tier Tier) (image.Image, error) {
	level := qrcode.Medium
	if tier.SecurityLevel >= 2 {
		level = qrcode.High
	}
	qr, err := qrcode.New(data, level)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeRenderFailed, "qr encode")
	}
	return qr.Image(r.Size), nil
}
