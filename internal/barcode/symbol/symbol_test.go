package symbol_test

//go:generate mockgen -source=symbol.go -destination=mocks/renderer_mock.go -package=mocks Renderer

import (
	"encoding/base64"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	domainerrors "permis/pkg/domain-errors"

	"permis/internal/barcode/symbol"
	"permis/internal/barcode/symbol/mocks"
)

type EncoderSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	renderer *mocks.MockRenderer
}

func (s *EncoderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.renderer = mocks.NewMockRenderer(s.ctrl)
}

func (s *EncoderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestEncoderSuite(t *testing.T) {
	suite.Run(t, new(EncoderSuite))
}

func (s *EncoderSuite) TestDefaultTierLadder() {
	tiers := symbol.DefaultTiers()
	s.Require().Len(tiers, 3)

	s.Equal("binary", tiers[0].Name)
	s.Equal(12, tiers[0].Columns)
	s.Equal(2, tiers[0].SecurityLevel)

	s.Equal("text", tiers[1].Name)
	s.Equal(14, tiers[1].Columns)
	s.Equal(1, tiers[1].SecurityLevel)

	s.Equal("base64", tiers[2].Name)
	s.Equal(16, tiers[2].Columns)
	s.Equal(1, tiers[2].SecurityLevel)
}

func (s *EncoderSuite) TestTransformsPreservePayload() {
	payload := []byte{0x00, 0x7f, 0x80, 0xff, 0x42}
	tiers := symbol.DefaultTiers()

	s.Equal(string(payload), tiers[0].Transform(payload))
	s.Equal(string(payload), tiers[1].Transform(payload))
	s.Equal(base64.StdEncoding.EncodeToString(payload), tiers[2].Transform(payload))
}

func (s *EncoderSuite) TestFirstTierWins() {
	payload := []byte{0x01, 0x02, 0xfe}
	want := image.NewGray(image.Rect(0, 0, 10, 10))

	s.renderer.EXPECT().
		Render(string(payload), gomock.Any()).
		DoAndReturn(func(_ string, tier symbol.Tier) (image.Image, error) {
			s.Equal("binary", tier.Name)
			return want, nil
		})

	img, tier, err := symbol.NewEncoder(s.renderer).Encode(payload)
	s.Require().NoError(err)
	s.Equal("binary", tier)
	s.Same(image.Image(want), img)
}

func (s *EncoderSuite) TestFallsBackThroughTiers() {
	payload := []byte{0xde, 0xad}
	want := image.NewGray(image.Rect(0, 0, 10, 10))
	rejected := errors.New("alphabet rejected")

	gomock.InOrder(
		s.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, rejected),
		s.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, rejected),
		s.renderer.EXPECT().
			Render(base64.StdEncoding.EncodeToString(payload), gomock.Any()).
			DoAndReturn(func(_ string, tier symbol.Tier) (image.Image, error) {
				s.Equal("base64", tier.Name)
				return want, nil
			}),
	)

	_, tier, err := symbol.NewEncoder(s.renderer).Encode(payload)
	s.Require().NoError(err)
	s.Equal("base64", tier)
}

func (s *EncoderSuite) TestAllTiersExhausted() {
	s.renderer.EXPECT().
		Render(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("too large")).
		Times(3)

	_, _, err := symbol.NewEncoder(s.renderer).Encode(make([]byte, 900))
	s.Require().Error(err)
	s.True(domainerrors.HasCode(err, domainerrors.CodeSymbolCapacity))
	s.Contains(err.Error(), `tier "base64"`)
	s.Contains(err.Error(), "900 bytes")
}

type RendererSuite struct {
	suite.Suite
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererSuite))
}

func (s *RendererSuite) TestPDF417RendersRaster() {
	tiers := symbol.DefaultTiers()
	img, err := symbol.NewPDF417Renderer().Render("MG240001234", tiers[0])

	s.Require().NoError(err)
	s.Positive(img.Bounds().Dx())
	s.Positive(img.Bounds().Dy())
	s.False(symbol.IsPlaceholder(img))
}

func (s *RendererSuite) TestQRRendersRaster() {
	tiers := symbol.DefaultTiers()
	img, err := symbol.NewQRRenderer().Render("MG240001234", tiers[2])

	s.Require().NoError(err)
	s.Equal(256, img.Bounds().Dx())
	s.False(symbol.IsPlaceholder(img))
}

func (s *RendererSuite) TestPlaceholderIsMarked() {
	tiers := symbol.DefaultTiers()
	img, err := symbol.NewPlaceholderRenderer().Render("anything", tiers[0])

	s.Require().NoError(err)
	s.True(symbol.IsPlaceholder(img))

	// The raster carries drawn text, so it cannot be a uniform grey field.
	gray, ok := img.(*symbol.PlaceholderImage)
	s.Require().True(ok)
	dark := 0
	b := gray.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y < 0x80 {
				dark++
			}
		}
	}
	s.Positive(dark)
}
