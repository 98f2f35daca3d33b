// Package service orchestrates the barcode pipeline: field mapping, photo
// compression, payload packing, symbol rendering on the generation side, and
// input detection, unpacking, validation on the decode side.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"log/slog"
	"time"

	"permis/pkg/platform/audit"
	"permis/pkg/requestcontext"

	domainerrors "permis/pkg/domain-errors"

	"permis/internal/barcode/fields"
	"permis/internal/barcode/models"
	"permis/internal/barcode/payload"
	"permis/internal/barcode/photo"
	"permis/internal/barcode/tracer"
	"permis/internal/platform/metrics"
)

// PhotoCompressor shrinks a portrait into the image byte budget. A nil result
// means no configuration fit; generation continues without a photo.
type PhotoCompressor interface {
	Compress(src []byte) (out []byte, stage string)
}

// SymbolEncoder renders a packed payload into a raster, reporting the tier
// that produced it.
type SymbolEncoder interface {
	Encode(payload []byte) (image.Image, string, error)
}

// AuditPublisher records domain events for the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is stateless apart from read-only configuration and is safe for
// concurrent use.
type Service struct {
	compressor PhotoCompressor
	encoder    SymbolEncoder
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     tracer.Tracer
	audit      AuditPublisher
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.audit = p }
}

// WithClock fixes the time source. Tests use this to pin validity math.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(compressor PhotoCompressor, encoder SymbolEncoder, opts ...Option) *Service {
	s := &Service{
		compressor: compressor,
		encoder:    encoder,
		logger:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		tracer:     tracer.NewNoop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateInput is the record-keeping system's view of one license holder.
type GenerateInput struct {
	Person  models.Person
	License models.License
	Card    *models.Card
	Photo   []byte
}

// GenerateResult carries the rendered symbol and the canonical record that
// went into it, for the caller's own logging and storage.
type GenerateResult struct {
	ImageBase64   string
	Record        models.Record
	PayloadBytes  int
	PhotoIncluded bool
	Tier          string
}

// Generate runs the full pipeline. Photo trouble of any kind degrades to a
// barcode without a portrait; packing and symbol failures are fatal and carry
// distinct error codes.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanGenerate)
	var err error
	defer func() { span.End(err) }()

	if in.Person.Surname == "" && in.Person.FirstName == "" {
		err = domainerrors.New(domainerrors.CodeInvalidInput, "person name is required")
		s.countGenerate("invalid")
		return GenerateResult{}, err
	}

	record := fields.Map(in.Person, in.License, in.Card)

	var portrait []byte
	if len(in.Photo) > 0 {
		var stage string
		portrait, stage = s.compressor.Compress(in.Photo)
		if s.metrics != nil {
			s.metrics.PhotoOutcome.WithLabelValues(stage).Inc()
		}
		if portrait == nil {
			s.logger.Warn("portrait did not fit the image budget, omitting",
				"card_num", record.CardNumber, "stage", stage)
		}
	} else if s.metrics != nil {
		s.metrics.PhotoOutcome.WithLabelValues(photo.StageNone).Inc()
	}

	blob, err := payload.Pack(record, portrait)
	if err != nil {
		s.countGenerate("failed")
		s.emitAudit(ctx, audit.ActionBarcodeGenerated, audit.OutcomeFailed, record.CardNumber, 0, "", err)
		return GenerateResult{}, err
	}

	img, tier, err := s.encoder.Encode(blob)
	if err != nil {
		s.countGenerate("failed")
		s.emitAudit(ctx, audit.ActionBarcodeGenerated, audit.OutcomeFailed, record.CardNumber, len(blob), "", err)
		return GenerateResult{}, err
	}

	var buf bytes.Buffer
	if encErr := png.Encode(&buf, img); encErr != nil {
		err = domainerrors.Wrap(encErr, domainerrors.CodeRenderFailed, "encode symbol raster")
		s.countGenerate("failed")
		return GenerateResult{}, err
	}

	span.SetAttributes(
		tracer.String(tracer.AttrCardHash, tracer.HashCardNumber(record.CardNumber)),
		tracer.Int(tracer.AttrPayloadBytes, len(blob)),
		tracer.String(tracer.AttrSymbolTier, tier),
		tracer.Bool(tracer.AttrPhotoIncluded, portrait != nil),
	)
	if s.metrics != nil {
		s.metrics.PayloadBytes.Observe(float64(len(blob)))
		s.metrics.SymbolTier.WithLabelValues(tier).Inc()
	}
	s.countGenerate("ok")
	s.emitAudit(ctx, audit.ActionBarcodeGenerated, audit.OutcomeOK, record.CardNumber, len(blob), tier, nil)
	s.logger.Info("barcode generated",
		"card_num", record.CardNumber,
		"payload_bytes", len(blob),
		"tier", tier,
		"photo_included", portrait != nil)

	return GenerateResult{
		ImageBase64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Record:        record,
		PayloadBytes:  len(blob),
		PhotoIncluded: portrait != nil,
		Tier:          tier,
	}, nil
}

func (s *Service) countGenerate(outcome string) {
	if s.metrics != nil {
		s.metrics.BarcodesGenerated.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) emitAudit(ctx context.Context, action, outcome, cardNum string, payloadBytes int, tier string, cause error) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Action:       action,
		Outcome:      outcome,
		CardNumber:   cardNum,
		PayloadBytes: payloadBytes,
		Tier:         tier,
		RequestID:    requestcontext.RequestID(ctx),
	}
	if cause != nil {
		event.Detail = cause.Error()
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.Warn("audit emit failed", "action", action, "error", err)
	}
}
