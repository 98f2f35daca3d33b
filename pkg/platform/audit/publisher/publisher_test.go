package publisher

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"permis/pkg/platform/audit"
	"permis/pkg/platform/audit/sink"
)

type PublisherSuite struct {
	suite.Suite
	sink *sink.Memory
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.sink = sink.NewMemory()
}

func (s *PublisherSuite) TestSyncEmitFillsDefaults() {
	p := New(s.sink)

	err := p.Emit(context.Background(), audit.Event{
		Action:  audit.ActionBarcodeGenerated,
		Outcome: audit.OutcomeOK,
	})
	s.Require().NoError(err)

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.NotEmpty(events[0].ID)
	s.False(events[0].Timestamp.IsZero())
	s.Equal(audit.ActionBarcodeGenerated, events[0].Action)
}

func (s *PublisherSuite) TestAsyncEmitDrainsOnClose() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(s.sink, WithAsyncBuffer(16), WithLogger(logger))

	for i := 0; i < 5; i++ {
		s.Require().NoError(p.Emit(context.Background(), audit.Event{
			Action:  audit.ActionBarcodeDecoded,
			Outcome: audit.OutcomeOK,
		}))
	}
	p.Close()

	s.Len(s.sink.Events(), 5)
}

func (s *PublisherSuite) TestAsyncBufferFullDropsEvent() {
	// Buffer of one and no consumer fast enough: fill it, then overflow.
	blocking := &blockingSink{release: make(chan struct{})}
	p := New(blocking, WithAsyncBuffer(1))
	defer func() {
		close(blocking.release)
		p.Close()
	}()

	// First event occupies the worker, second fills the buffer.
	_ = p.Emit(context.Background(), audit.Event{Action: "a"})
	// Give the worker a moment to pick up the first event.
	time.Sleep(50 * time.Millisecond)
	_ = p.Emit(context.Background(), audit.Event{Action: "b"})

	err := p.Emit(context.Background(), audit.Event{Action: "c"})
	s.Error(err)
}

type blockingSink struct {
	release chan struct{}
}

func (b *blockingSink) Append(context.Context, audit.Event) error {
	<-b.release
	return nil
}
