package config

import (
	"os"
	"strconv"
)

// Renderer names the symbol rendering capability wired at process start.
// Capability is explicit configuration, never a runtime fallback: a deployment
// without a scannable renderer must ask for the simulated one.
const (
	RendererPDF417    = "pdf417"
	RendererQR        = "qr"
	RendererSimulated = "simulated"
)

// Server captures process-level configuration.
type Server struct {
	Addr     string
	Renderer string

	// Audit event publishing. Empty Brokers keeps audit in-process.
	KafkaBrokers string
	AuditTopic   string
	AuditBuffer  int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PERMIS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	renderer := os.Getenv("PERMIS_RENDERER")
	switch renderer {
	case RendererPDF417, RendererQR, RendererSimulated:
	default:
		renderer = RendererPDF417
	}

	topic := os.Getenv("PERMIS_AUDIT_TOPIC")
	if topic == "" {
		topic = "permis.audit"
	}

	buffer := 256
	if v := os.Getenv("PERMIS_AUDIT_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			buffer = n
		}
	}

	return Server{
		Addr:         addr,
		Renderer:     renderer,
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		AuditTopic:   topic,
		AuditBuffer:  buffer,
	}
}
