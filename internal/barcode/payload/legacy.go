package payload

import (
	"encoding/json"
	"fmt"

	domainerrors "permis/pkg/domain-errors"

	"permis/internal/barcode/models"
)

// legacyEnvelope is the textual container kept for scanner smoke tests and as
// a degraded fallback when the binary pipeline is unavailable. The record
// keeps its short keys; the photo travels base64-encoded under "photo".
type legacyEnvelope struct {
	models.Record
	Photo []byte `json:"photo,omitempty"`
}

// EncodeLegacy serializes the record as minified JSON text. The same payload
// budget applies; photo bytes go in uncompressed.
func EncodeLegacy(record models.Record, photo []byte) (string, error) {
	blob, err := json.Marshal(legacyEnvelope{Record: record, Photo: photo})
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "encode legacy payload")
	}
	if len(blob) > models.MaxPayloadBytes {
		return "", domainerrors.New(domainerrors.CodePayloadTooLarge,
			fmt.Sprintf("legacy payload is %d bytes, budget is %d", len(blob), models.MaxPayloadBytes))
	}
	return string(blob), nil
}

// DecodeLegacy parses legacy JSON text back into the record and photo bytes.
func DecodeLegacy(text string) (models.Record, []byte, error) {
	var env legacyEnvelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return models.Record{}, nil, domainerrors.Wrap(err, domainerrors.CodeMalformedPayload, "decode legacy payload")
	}
	return env.Record, env.Photo, nil
}
