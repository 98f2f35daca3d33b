// Package payload packs the canonical record and an optional compressed
// portrait into the binary container printed inside the barcode, and unpacks
// it again on decode.
package payload

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	domainerrors "permis/pkg/domain-errors"

	"permis/internal/barcode/models"
)

// envelope is the wire container. Struct tags double as CBOR map keys; the
// encoder falls back to json tags.
type envelope struct {
	Data  models.Record `json:"data"`
	Image []byte        `json:"img,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	// Core Deterministic Encoding keeps identical inputs byte-identical,
	// which lets re-issued cards be compared blob-for-blob.
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Pack serializes the record and optional photo bytes into a deterministic
// CBOR container. The result is bounded by models.MaxPayloadBytes; oversized
// containers return a payload_too_large error naming both sizes.
func Pack(record models.Record, photo []byte) ([]byte, error) {
	blob, err := encMode.Marshal(envelope{Data: record, Image: photo})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "encode payload container")
	}
	if len(blob) > models.MaxPayloadBytes {
		return nil, domainerrors.New(domainerrors.CodePayloadTooLarge,
			fmt.Sprintf("packed payload is %d bytes, budget is %d", len(blob), models.MaxPayloadBytes))
	}
	return blob, nil
}

// Unpack parses a packed container back into the record and photo bytes.
// Anything that is not a well-formed container yields a malformed_payload
// error; field-level validation is left to the caller.
func Unpack(blob []byte) (models.Record, []byte, error) {
	var env envelope
	if err := decMode.Unmarshal(blob, &env); err != nil {
		return models.Record{}, nil, domainerrors.Wrap(err, domainerrors.CodeMalformedPayload, "decode payload container")
	}
	return env.Data, env.Image, nil
}
