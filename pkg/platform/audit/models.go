package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Action       string    `json:"action"`
	Outcome      string    `json:"outcome"`
	CardNumber   string    `json:"card_number,omitempty"`
	PayloadBytes int       `json:"payload_bytes,omitempty"`
	Tier         string    `json:"tier,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	Detail       string    `json:"detail,omitempty"`
}

const (
	ActionBarcodeGenerated = "barcode.generated"
	ActionBarcodeDecoded   = "barcode.decoded"
	ActionPhotoExtracted   = "barcode.photo_extracted"

	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Sink receives audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
