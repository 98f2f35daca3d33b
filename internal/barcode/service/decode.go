package service

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"permis/pkg/platform/audit"

	domainerrors "permis/pkg/domain-errors"

	"permis/internal/barcode/models"
	"permis/internal/barcode/payload"
	"permis/internal/barcode/tracer"
)

// DecodeResult carries everything recovered from a scanned payload.
type DecodeResult struct {
	Record       models.Record
	Summary      models.Summary
	Warnings     []string
	HasPhoto     bool
	PayloadBytes int
}

// Decode accepts whatever a scanner hands over: hex, base64, raw binary
// bytes, or legacy JSON text. Required-field violations are fatal; schema
// drift and missing recommended fields come back as warnings so scanners
// stay usable across migrations.
func (s *Service) Decode(ctx context.Context, raw string) (DecodeResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDecode)
	var err error
	defer func() { span.End(err) }()

	record, portrait, size, kind, err := s.decodeAny(raw)
	if err != nil {
		s.countDecode("malformed")
		s.emitAudit(ctx, audit.ActionBarcodeDecoded, audit.OutcomeFailed, "", 0, "", err)
		return DecodeResult{}, err
	}

	warnings, err := s.validate(record)
	if err != nil {
		s.countDecode("invalid")
		s.emitAudit(ctx, audit.ActionBarcodeDecoded, audit.OutcomeFailed, record.CardNumber, size, "", err)
		return DecodeResult{}, err
	}
	for _, w := range warnings {
		s.logger.Warn("decode warning", "warning", w, "card_num", record.CardNumber)
	}

	span.SetAttributes(
		tracer.String(tracer.AttrInputKind, kind),
		tracer.Int(tracer.AttrPayloadBytes, size),
		tracer.Int(tracer.AttrWarnings, len(warnings)),
	)
	s.countDecode("ok")
	s.emitAudit(ctx, audit.ActionBarcodeDecoded, audit.OutcomeOK, record.CardNumber, size, "", nil)

	return DecodeResult{
		Record:       record,
		Summary:      s.summarize(record, portrait != nil),
		Warnings:     warnings,
		HasPhoto:     portrait != nil,
		PayloadBytes: size,
	}, nil
}

// ExtractPhoto returns the embedded portrait bytes, or a not_found error when
// the payload carries none.
func (s *Service) ExtractPhoto(ctx context.Context, raw string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanExtractPhoto)
	var err error
	defer func() { span.End(err) }()

	record, portrait, _, _, err := s.decodeAny(raw)
	if err != nil {
		s.emitAudit(ctx, audit.ActionPhotoExtracted, audit.OutcomeFailed, "", 0, "", err)
		return nil, err
	}
	if len(portrait) == 0 {
		err = domainerrors.New(domainerrors.CodeNotFound, "payload carries no embedded photo")
		s.emitAudit(ctx, audit.ActionPhotoExtracted, audit.OutcomeFailed, record.CardNumber, 0, "", err)
		return nil, err
	}
	s.emitAudit(ctx, audit.ActionPhotoExtracted, audit.OutcomeOK, record.CardNumber, len(portrait), "", nil)
	return portrait, nil
}

// decodeAny detects the input representation and unpacks it. Detection order:
// legacy JSON text, hex, base64, then raw bytes as scanned.
func (s *Service) decodeAny(raw string) (models.Record, []byte, int, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Record{}, nil, 0, "", domainerrors.New(domainerrors.CodeBadRequest, "empty payload")
	}

	if strings.HasPrefix(trimmed, "{") {
		record, portrait, err := payload.DecodeLegacy(trimmed)
		return record, portrait, len(trimmed), "legacy_json", err
	}

	if blob, err := hex.DecodeString(trimmed); err == nil {
		record, portrait, err := payload.Unpack(blob)
		if err == nil {
			return record, portrait, len(blob), "hex", nil
		}
	}
	if blob, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		record, portrait, err := payload.Unpack(blob)
		if err == nil {
			return record, portrait, len(blob), "base64", nil
		}
	}

	blob := []byte(raw)
	record, portrait, err := payload.Unpack(blob)
	return record, portrait, len(blob), "binary", err
}

// validate applies the required/recommended field rules. Missing ver or
// country rejects the payload; everything else degrades to warnings.
func (s *Service) validate(record models.Record) ([]string, error) {
	if record.Version == 0 {
		return nil, domainerrors.New(domainerrors.CodeMissingField, "payload is missing required field ver")
	}
	if record.Country == "" {
		return nil, domainerrors.New(domainerrors.CodeMissingField, "payload is missing required field country")
	}

	var warnings []string
	if record.Version != models.Version {
		warnings = append(warnings, fmt.Sprintf("version mismatch: payload has %d, current is %d", record.Version, models.Version))
		s.countWarning("version_mismatch")
	}
	if record.Country != models.Country {
		warnings = append(warnings, fmt.Sprintf("unexpected country code %q, expected %q", record.Country, models.Country))
		s.countWarning("country_mismatch")
	}
	if record.CardNumber == "" {
		warnings = append(warnings, "card_num is missing; card cannot be cross-checked against the register")
		s.countWarning("missing_card_num")
	}
	return warnings, nil
}

func (s *Service) countDecode(outcome string) {
	if s.metrics != nil {
		s.metrics.BarcodesDecoded.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countWarning(kind string) {
	if s.metrics != nil {
		s.metrics.DecodeWarnings.WithLabelValues(kind).Inc()
	}
}
