// Package tracer is a lightweight tracing abstraction for the barcode
// pipeline. Domain code emits spans through this interface instead of
// depending on OpenTelemetry APIs directly; the OTel adapter is wired in
// production and the no-op implementation serves tests.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks it as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// HashCardNumber returns a short SHA-256 hash of the card number so traces
// can be correlated without exposing the identifier itself.
func HashCardNumber(cardNumber string) string {
	if cardNumber == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(cardNumber))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the barcode pipeline.
const (
	SpanGenerate     = "barcode.generate"
	SpanDecode       = "barcode.decode"
	SpanExtractPhoto = "barcode.extract_photo"
)

// Attribute keys used by the barcode pipeline.
const (
	AttrCardHash      = "card_hash"
	AttrPayloadBytes  = "payload_bytes"
	AttrSymbolTier    = "symbol_tier"
	AttrPhotoIncluded = "photo_included"
	AttrWarnings      = "warnings"
	AttrInputKind     = "input_kind"
)
