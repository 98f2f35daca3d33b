// Package symbol turns a packed payload into the printed barcode raster.
// Encoding is tiered: the cheapest representation is tried first and the
// driver falls back to progressively roomier configurations, never touching
// the payload bytes themselves.
package symbol

import (
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log/slog"

	domainerrors "permis/pkg/domain-errors"
)

// Tier is one symbol configuration attempt. Transform reshapes the payload
// bytes for the underlying encoder's alphabet; it never loses information.
type Tier struct {
	Name          string
	Columns       int
	SecurityLevel int
	Transform     func([]byte) string
}

// DefaultTiers returns the fallback ladder in attempt order. Binary has the
// lowest per-byte overhead; text trades error correction for columns when the
// encoder rejects the binary alphabet; base64 pays ~33% expansion for a purely
// printable alphabet and gets the widest layout to compensate.
func DefaultTiers() []Tier {
	transparent := func(b []byte) string { return string(b) }
	return []Tier{
		{Name: "binary", Columns: 12, SecurityLevel: 2, Transform: transparent},
		{Name: "text", Columns: 14, SecurityLevel: 1, Transform: transparent},
		{Name: "base64", Columns: 16, SecurityLevel: 1, Transform: func(b []byte) string {
			return base64.StdEncoding.EncodeToString(b)
		}},
	}
}

// Renderer renders one tier's transformed data into a raster. Implementations
// are injected at construction so deployments without a PDF417 stack can run
// on QR or on the simulated placeholder.
type Renderer interface {
	Render(data string, tier Tier) (image.Image, error)
}

// Encoder drives the tier fallback over a single renderer.
type Encoder struct {
	renderer Renderer
	tiers    []Tier
	logger   *slog.Logger
}

type Option func(*Encoder)

// WithTiers overrides the default fallback ladder.
func WithTiers(tiers []Tier) Option {
	return func(e *Encoder) { e.tiers = tiers }
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) { e.logger = logger }
}

func NewEncoder(r Renderer, opts ...Option) *Encoder {
	e := &Encoder{
		renderer: r,
		tiers:    DefaultTiers(),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode renders the payload at the first tier the renderer accepts and
// reports which tier won. All tiers exhausted is a capacity error; with the
// packer's budget aligned to the loosest tier it should never happen.
func (e *Encoder) Encode(payload []byte) (image.Image, string, error) {
	var lastErr error
	for _, tier := range e.tiers {
		img, err := e.renderer.Render(tier.Transform(payload), tier)
		if err == nil {
			return img, tier.Name, nil
		}
		lastErr = err
		e.logger.Debug("symbol tier rejected payload",
			"tier", tier.Name, "payload_bytes", len(payload), "error", err)
	}
	if len(e.tiers) == 0 {
		return nil, "", domainerrors.New(domainerrors.CodeInternal, "no symbol tiers configured")
	}
	last := e.tiers[len(e.tiers)-1]
	return nil, "", domainerrors.Wrap(lastErr, domainerrors.CodeSymbolCapacity,
		fmt.Sprintf("payload of %d bytes exceeds symbol capacity at tier %q", len(payload), last.Name))
}
