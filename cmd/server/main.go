package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"permis/pkg/platform/audit"
	"permis/pkg/platform/audit/publisher"
	"permis/pkg/platform/audit/sink"
	"permis/pkg/platform/middleware/request"

	"permis/internal/barcode/handler"
	"permis/internal/barcode/photo"
	"permis/internal/barcode/service"
	"permis/internal/barcode/symbol"
	"permis/internal/barcode/tracer"
	"permis/internal/platform/config"
	"permis/internal/platform/health"
	"permis/internal/platform/httpserver"
	"permis/internal/platform/kafka/producer"
	"permis/internal/platform/logger"
	"permis/internal/platform/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Pipeline logic lives in internal/barcode packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing permis",
		"addr", cfg.Addr,
		"renderer", cfg.Renderer,
	)

	m := metrics.New()

	auditSink, kafkaProducer := buildAuditSink(cfg, log)
	auditPublisher := publisher.New(auditSink,
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
		publisher.WithLogger(log))

	renderer := buildRenderer(cfg, log)

	svc := service.New(
		photo.NewCompressor(log),
		symbol.NewEncoder(renderer, symbol.WithLogger(log)),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithTracer(tracer.NewOTel()),
		service.WithAuditPublisher(auditPublisher),
	)

	h := handler.New(svc, log)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(handler.Latency(m))
	h.Register(r)

	healthHandler := health.New(cfg.Renderer)
	healthHandler.RegisterCheck("renderer", func() error {
		_, err := renderer.Render("permis", symbol.DefaultTiers()[0])
		return err
	})
	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	auditPublisher.Close()
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(ctx); err != nil {
			log.Error("kafka producer close failed", "error", err)
		}
	}

	log.Info("server stopped")
}

// buildRenderer selects the symbol capability. Simulated output is an
// explicit choice for environments without a scanning chain.
func buildRenderer(cfg config.Server, log *slog.Logger) symbol.Renderer {
	switch cfg.Renderer {
	case config.RendererQR:
		return symbol.NewQRRenderer()
	case config.RendererSimulated:
		log.Warn("using simulated renderer, output is not scannable")
		return symbol.NewPlaceholderRenderer()
	default:
		return symbol.NewPDF417Renderer()
	}
}

// buildAuditSink returns the kafka sink when brokers are configured and the
// in-process sink otherwise. The producer is returned for shutdown.
func buildAuditSink(cfg config.Server, log *slog.Logger) (audit.Sink, *producer.Producer) {
	if cfg.KafkaBrokers == "" {
		log.Info("audit events kept in-process, no kafka brokers configured")
		return sink.NewMemory(), nil
	}

	p, err := producer.New(producer.Config{
		Brokers:         cfg.KafkaBrokers,
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, log)
	if err != nil {
		log.Error("kafka producer init failed, audit events kept in-process", "error", err)
		return sink.NewMemory(), nil
	}
	log.Info("audit events published to kafka", "topic", cfg.AuditTopic)
	return sink.NewKafka(p, cfg.AuditTopic), p
}
