package request

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"permis/pkg/requestcontext"
)

type RequestMiddlewareSuite struct {
	suite.Suite
}

func TestRequestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(RequestMiddlewareSuite))
}

func (s *RequestMiddlewareSuite) TestRequestID() {
	s.Run("valid client id is propagated", func() {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/barcode/format", nil)
		req.Header.Set("X-Request-ID", "scanner-42")
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		s.Equal("scanner-42", seen)
		s.Equal("scanner-42", rec.Header().Get("X-Request-ID"))
	})

	s.Run("missing id is replaced with uuid", func() {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/barcode/format", nil)
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		s.NotEmpty(seen)
		s.Len(seen, 36)
	})

	s.Run("injection attempt is replaced", func() {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/barcode/format", nil)
		req.Header.Set("X-Request-ID", "bad id\nwith newline")
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		s.NotContains(seen, "\n")
		s.NotEqual("bad id\nwith newline", seen)
	})

	s.Run("overlong id is replaced", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", MaxRequestIDLength+1))
		rec := httptest.NewRecorder()
		RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

		s.NotEqual(strings.Repeat("a", MaxRequestIDLength+1), rec.Header().Get("X-Request-ID"))
	})
}

func (s *RequestMiddlewareSuite) TestRecovery() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("photo decoder went sideways")
	})

	req := httptest.NewRequest(http.MethodPost, "/barcode/generate", nil)
	rec := httptest.NewRecorder()
	Recovery(logger)(next).ServeHTTP(rec, req)

	s.Equal(http.StatusInternalServerError, rec.Code)
}
