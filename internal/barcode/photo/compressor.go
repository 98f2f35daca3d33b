// Package photo fits an arbitrary source portrait into the barcode's image
// byte budget. Failure to fit is a soft outcome, not an error: the payload
// stays valid without a photo.
package photo

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"permis/internal/barcode/models"
)

// Compression stages, reported alongside the result for observability.
const (
	StageQuality  = "quality"
	StageScale    = "scale"
	StageLossless = "lossless"
	StageNone     = "none"
)

// DefaultQualityLadder is tried first, at the full pixel envelope. Quality
// loss is cheaper to the eye than resolution loss, so it comes first.
var DefaultQualityLadder = []int{65, 55, 45, 35, 25, 20, 15, 10, 5}

// DefaultScaleLadder shrinks the pixel envelope when no quality fits.
var DefaultScaleLadder = []float64{0.7, 0.6, 0.5, 0.4, 0.3}

// DefaultScaleQualities is the secondary quality ladder retried at each scale.
var DefaultScaleQualities = []int{20, 15, 10, 8, 5, 3}

// Compressor drives the compression ladders. All fields are read-only after
// construction; the zero-value ladders are replaced with the defaults.
type Compressor struct {
	Budget         int
	MaxWidth       int
	MaxHeight      int
	QualityLadder  []int
	ScaleLadder    []float64
	ScaleQualities []int

	logger *slog.Logger
}

// NewCompressor returns a Compressor with the standard budget, envelope,
// and ladders.
func NewCompressor(logger *slog.Logger) *Compressor {
	return &Compressor{
		Budget:         models.MaxImageBytes,
		MaxWidth:       models.PhotoMaxWidth,
		MaxHeight:      models.PhotoMaxHeight,
		QualityLadder:  DefaultQualityLadder,
		ScaleLadder:    DefaultScaleLadder,
		ScaleQualities: DefaultScaleQualities,
		logger:         logger,
	}
}

// Compress returns portrait bytes within the budget and the stage that
// produced them, or (nil, StageNone) when no attempted configuration fits.
// Anything going wrong inside image handling degrades to no photo.
func (c *Compressor) Compress(src []byte) (out []byte, stage string) {
	defer func() {
		if r := recover(); r != nil {
			if c.logger != nil {
				c.logger.Warn("photo compression panicked, continuing without photo", "panic", r)
			}
			out, stage = nil, StageNone
		}
	}()

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("could not decode source photo, continuing without photo", "error", err)
		}
		return nil, StageNone
	}

	gray := grayscale(img)
	gray = centerCropPortrait(gray)
	base := shrinkTo(gray, c.MaxWidth, c.MaxHeight)

	for _, q := range c.QualityLadder {
		if b, ok := c.encodeJPEG(base, q); ok {
			return b, StageQuality
		}
	}

	for _, f := range c.ScaleLadder {
		w := int(float64(c.MaxWidth) * f)
		h := int(float64(c.MaxHeight) * f)
		if w < 1 || h < 1 {
			continue
		}
		small := shrinkTo(gray, w, h)
		for _, q := range c.ScaleQualities {
			if b, ok := c.encodeJPEG(small, q); ok {
				return b, StageScale
			}
		}
	}

	if b, ok := c.encodePNG(base); ok {
		return b, StageLossless
	}

	return nil, StageNone
}

func (c *Compressor) encodeJPEG(img *image.Gray, quality int) ([]byte, bool) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, false
	}
	if buf.Len() > c.Budget {
		return nil, false
	}
	return buf.Bytes(), true
}

func (c *Compressor) encodePNG(img *image.Gray) ([]byte, bool) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, false
	}
	if buf.Len() > c.Budget {
		return nil, false
	}
	return buf.Bytes(), true
}

// grayscale flattens the image to a single channel. ID portraits survive this
// well and it roughly halves the entropy the encoder has to spend bytes on.
func grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// centerCropPortrait crops the longer dimension symmetrically until the image
// is the standardized 2:3 portrait shape.
func centerCropPortrait(img *image.Gray) *image.Gray {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	cropW, cropH := w, h
	if w*3 > h*2 {
		cropW = h * 2 / 3
	} else {
		cropH = w * 3 / 2
	}
	if cropW == w && cropH == h {
		return img
	}
	x0 := (w - cropW) / 2
	y0 := (h - cropH) / 2

	out := image.NewGray(image.Rect(0, 0, cropW, cropH))
	draw.Draw(out, out.Bounds(), img, image.Pt(x0, y0), draw.Src)
	return out
}

// shrinkTo resizes down to exactly (w, h). Sources already inside the target
// envelope are left alone; portraits never get upscaled.
func shrinkTo(img *image.Gray, w, h int) *image.Gray {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}
