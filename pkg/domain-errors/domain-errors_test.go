package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorMessage() {
	s.Run("message is used when present", func() {
		err := New(CodePayloadTooLarge, "payload is 950 bytes, budget is 800")
		s.Equal("payload is 950 bytes, budget is 800", err.Error())
	})

	s.Run("code is the fallback message", func() {
		err := &Error{Code: CodeSymbolCapacity}
		s.Equal("symbol_capacity_exceeded", err.Error())
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesCode() {
	inner := New(CodeMissingField, "missing required field: ver")
	wrapped := Wrap(inner, CodeInternal, "decode failed")

	s.True(HasCode(wrapped, CodeMissingField), "wrapping must not change the original code")
	s.False(HasCode(wrapped, CodeInternal))
	s.True(errors.Is(wrapped, inner.(*Error)))
}

func (s *DomainErrorsSuite) TestWrapForeignError() {
	inner := fmt.Errorf("cbor: unexpected EOF")
	wrapped := Wrap(inner, CodeMalformedPayload, "invalid barcode container")

	s.True(HasCode(wrapped, CodeMalformedPayload))
	s.ErrorIs(wrapped, inner)
}

func (s *DomainErrorsSuite) TestHasCodeOnPlainError() {
	s.False(HasCode(errors.New("boring"), CodeInternal))
}
