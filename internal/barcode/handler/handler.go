// Package handler exposes the barcode pipeline over HTTP.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "permis/pkg/domain-errors"
	"permis/pkg/platform/httputil"
	"permis/pkg/requestcontext"

	"permis/internal/barcode/models"
	"permis/internal/barcode/service"
	"permis/internal/platform/metrics"
)

// Request bodies stay well under this; the generate photo is the only large
// member and it is bounded by what a portrait scan produces.
const maxBodyBytes = 4 << 20

type Service interface {
	Generate(ctx context.Context, in service.GenerateInput) (service.GenerateResult, error)
	Decode(ctx context.Context, raw string) (service.DecodeResult, error)
	ExtractPhoto(ctx context.Context, raw string) ([]byte, error)
	FormatDescription() models.FormatDescription
	ScanTestPayload() (string, models.Record, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/barcode/generate", h.HandleGenerate)
	r.Post("/barcode/decode", h.HandleDecode)
	r.Post("/barcode/decode/photo", h.HandleDecodePhoto)
	r.Get("/barcode/format", h.HandleFormat)
	r.Get("/barcode/scan-test", h.HandleScanTest)
}

// Latency returns middleware recording per-route latency, labeled by the
// matched chi route pattern.
func Latency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
				m.EndpointLatency.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
			}
		})
	}
}

// HandleGenerate implements POST /barcode/generate.
//
// Input: { "person": {...}, "license": {...}, "card": {...}, "photo_base64": "..." }
// Output: { "barcode_image_base64": "...", "barcode_data": {...}, "data_size_bytes": n, "photo_included": bool, "tier": "binary" }
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode generate request",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}

	in, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Generate(ctx, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "barcode generation failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &GenerateResponse{
		BarcodeImageBase64: res.ImageBase64,
		BarcodeData:        res.Record,
		DataSizeBytes:      res.PayloadBytes,
		PhotoIncluded:      res.PhotoIncluded,
		Tier:               res.Tier,
	})
}

// HandleDecode implements POST /barcode/decode.
//
// Input: { "payload": "<hex | base64 | raw | legacy JSON>" }
// Output: { "decoded_data": {...}, "license_info": {...}, "warnings": [...] }
func (h *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}

	res, err := h.service.Decode(ctx, req.Payload)
	if err != nil {
		h.logger.WarnContext(ctx, "barcode decode failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, &DecodeResponse{
		DecodedData: res.Record,
		LicenseInfo: res.Summary,
		Warnings:    warnings,
	})
}

// HandleDecodePhoto implements POST /barcode/decode/photo.
//
// Input: { "payload": "..." }
// Output: { "photo_base64": "...", "photo_size_bytes": n }
func (h *Handler) HandleDecodePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid JSON in request body"))
		return
	}

	photo, err := h.service.ExtractPhoto(ctx, req.Payload)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &DecodePhotoResponse{
		PhotoBase64:    base64.StdEncoding.EncodeToString(photo),
		PhotoSizeBytes: len(photo),
	})
}

// HandleFormat implements GET /barcode/format: the published wire format.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.FormatDescription())
}

// HandleScanTest implements GET /barcode/scan-test: a stable legacy payload
// scanner integrators can print and point their hardware at.
func (h *Handler) HandleScanTest(w http.ResponseWriter, r *http.Request) {
	payload, record, err := h.service.ScanTestPayload()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &ScanTestResponse{
		Payload: payload,
		Format:  "legacy_json",
		Instructions: "Encode the payload string into any barcode symbology your scanner reads, " +
			"scan it, and POST the scanned text to /barcode/decode. The decoded record must match 'expected'.",
		Expected: record,
	})
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return t, nil
}
