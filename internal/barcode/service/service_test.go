package service_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"permis/pkg/platform/audit"
	"permis/pkg/platform/audit/publisher"
	"permis/pkg/platform/audit/sink"

	domainerrors "permis/pkg/domain-errors"

	"permis/internal/barcode/models"
	"permis/internal/barcode/payload"
	"permis/internal/barcode/photo"
	"permis/internal/barcode/service"
	"permis/internal/barcode/symbol"
)

type ServiceSuite struct {
	suite.Suite
	sink *sink.Memory
	svc  *service.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))
	s.sink = sink.NewMemory()

	s.svc = service.New(
		photo.NewCompressor(logger),
		symbol.NewEncoder(symbol.NewPlaceholderRenderer()),
		service.WithLogger(logger),
		service.WithAuditPublisher(publisher.New(s.sink)),
		service.WithClock(func() time.Time {
			return time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
		}),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleInput() service.GenerateInput {
	return service.GenerateInput{
		Person: models.Person{
			Surname:   "Randrianarisoa",
			FirstName: "Marie",
			Sex:       "F",
			BirthDate: date(1985, time.March, 15),
		},
		License: models.License{
			Category:               "B",
			ProfessionalCategories: []string{"EB"},
			IssueDate:              date(2023, time.January, 1),
			FirstIssueDate:         date(2018, time.January, 1),
			DriverRestrictions:     []string{"corrective_lenses"},
		},
		Card: &models.Card{
			Number:     "MG240001234",
			ValidUntil: date(2028, time.January, 1),
		},
	}
}

func portraitJPEG(s *ServiceSuite, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x90
	}
	var buf bytes.Buffer
	s.Require().NoError(jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func (s *ServiceSuite) TestGenerateFullScenario() {
	res, err := s.svc.Generate(context.Background(), sampleInput())
	s.Require().NoError(err)

	s.Equal(models.Record{
		Version:            1,
		Country:            "MG",
		Name:               "RANDRIANARISOA Marie",
		Sex:                "F",
		BirthDate:          "1985-03-15",
		FirstIssued:        "2018-01-01",
		ValidFrom:          "2023-01-01",
		ValidTo:            "2028-01-01",
		Codes:              []string{"B", "EB"},
		DriverRestrictions: []string{"glasses"},
		CardNumber:         "MG240001234",
	}, res.Record)

	s.Equal("binary", res.Tier)
	s.False(res.PhotoIncluded)
	s.Positive(res.PayloadBytes)
	s.LessOrEqual(res.PayloadBytes, models.MaxPayloadBytes)

	raw, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	s.Require().NoError(err)
	_, err = png.Decode(bytes.NewReader(raw))
	s.Require().NoError(err)

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionBarcodeGenerated, events[0].Action)
	s.Equal(audit.OutcomeOK, events[0].Outcome)
	s.Equal("MG240001234", events[0].CardNumber)
	s.Equal(res.PayloadBytes, events[0].PayloadBytes)
}

func (s *ServiceSuite) TestGenerateEmbedsPortrait() {
	in := sampleInput()
	in.Photo = portraitJPEG(s, 120, 180)

	res, err := s.svc.Generate(context.Background(), in)
	s.Require().NoError(err)
	s.True(res.PhotoIncluded)
}

func (s *ServiceSuite) TestGeneratePhotoFailureIsSoft() {
	in := sampleInput()
	in.Photo = []byte("not an image at all")

	res, err := s.svc.Generate(context.Background(), in)
	s.Require().NoError(err)
	s.False(res.PhotoIncluded)
}

func (s *ServiceSuite) TestGenerateRequiresName() {
	in := sampleInput()
	in.Person.Surname = ""
	in.Person.FirstName = ""

	_, err := s.svc.Generate(context.Background(), in)
	s.Require().Error(err)
	s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidInput))
}

func (s *ServiceSuite) packedScenario() []byte {
	res, err := s.svc.Generate(context.Background(), sampleInput())
	s.Require().NoError(err)
	blob, err := payload.Pack(res.Record, nil)
	s.Require().NoError(err)
	return blob
}

func (s *ServiceSuite) TestDecodeAcceptsAllRepresentations() {
	blob := s.packedScenario()

	for name, input := range map[string]string{
		"hex":    hex.EncodeToString(blob),
		"base64": base64.StdEncoding.EncodeToString(blob),
		"binary": string(blob),
	} {
		s.Run(name, func() {
			res, err := s.svc.Decode(context.Background(), input)
			s.Require().NoError(err)
			s.Equal("MG240001234", res.Record.CardNumber)
			s.Equal(len(blob), res.PayloadBytes)
			s.Empty(res.Warnings)
		})
	}
}

func (s *ServiceSuite) TestDecodeScenarioSummary() {
	res, err := s.svc.Decode(context.Background(), hex.EncodeToString(s.packedScenario()))
	s.Require().NoError(err)

	s.Equal("RANDRIANARISOA Marie", res.Summary.FullName)
	s.Equal("Female", res.Summary.Sex)
	s.Equal([]string{"B", "EB"}, res.Summary.LicenseCodes)
	s.Equal("2028-01-01", res.Summary.ValidUntil)
	s.False(res.Summary.HasPhoto)
	s.Equal(1, res.Summary.SchemaVersion)

	// Clock is pinned to 2026-08-27, well before the 2028 expiry.
	s.Require().NotNil(res.Summary.IsValid)
	s.True(*res.Summary.IsValid)
	s.Require().NotNil(res.Summary.DaysUntilExpiry)
	s.Positive(*res.Summary.DaysUntilExpiry)
}

func (s *ServiceSuite) TestDecodeLegacyJSON() {
	text, record, err := s.svc.ScanTestPayload()
	s.Require().NoError(err)

	res, err := s.svc.Decode(context.Background(), text)
	s.Require().NoError(err)
	s.Equal(record, res.Record)
	s.Empty(res.Warnings)
	s.Equal("Male", res.Summary.Sex)
}

func (s *ServiceSuite) TestDecodeWarnings() {
	res, err := s.svc.Decode(context.Background(),
		`{"ver":2,"country":"ZA","name":"SMITH John"}`)
	s.Require().NoError(err)

	s.Len(res.Warnings, 3)
	s.Contains(res.Warnings[0], "version mismatch")
	s.Contains(res.Warnings[1], "country code")
	s.Contains(res.Warnings[2], "card_num")
}

func (s *ServiceSuite) TestDecodeMissingRequiredFields() {
	s.Run("missing ver", func() {
		_, err := s.svc.Decode(context.Background(), `{"country":"MG"}`)
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeMissingField))
		s.Contains(err.Error(), "ver")
	})

	s.Run("missing country", func() {
		_, err := s.svc.Decode(context.Background(), `{"ver":1}`)
		s.Require().Error(err)
		s.True(domainerrors.HasCode(err, domainerrors.CodeMissingField))
		s.Contains(err.Error(), "country")
	})
}

func (s *ServiceSuite) TestDecodeRejectsGarbage() {
	_, err := s.svc.Decode(context.Background(), "zzzz not a payload zzzz")
	s.Require().Error(err)
	s.True(domainerrors.HasCode(err, domainerrors.CodeMalformedPayload))

	_, err = s.svc.Decode(context.Background(), "   ")
	s.Require().Error(err)
	s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))
}

func (s *ServiceSuite) TestExtractPhoto() {
	in := sampleInput()
	in.Photo = portraitJPEG(s, 120, 180)
	res, err := s.svc.Generate(context.Background(), in)
	s.Require().NoError(err)
	s.Require().True(res.PhotoIncluded)

	compressed, _ := photo.NewCompressor(slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))).Compress(in.Photo)
	blob, err := payload.Pack(res.Record, compressed)
	s.Require().NoError(err)

	got, err := s.svc.ExtractPhoto(context.Background(), hex.EncodeToString(blob))
	s.Require().NoError(err)
	s.Equal(compressed, got)
}

func (s *ServiceSuite) TestExtractPhotoNotFound() {
	_, err := s.svc.ExtractPhoto(context.Background(), hex.EncodeToString(s.packedScenario()))
	s.Require().Error(err)
	s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
}

func (s *ServiceSuite) TestSummaryValidity() {
	decodeAt := func(clock time.Time, record models.Record) models.Summary {
		svc := service.New(
			photo.NewCompressor(slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil))),
			symbol.NewEncoder(symbol.NewPlaceholderRenderer()),
			service.WithClock(func() time.Time { return clock }),
		)
		blob, err := payload.Pack(record, nil)
		s.Require().NoError(err)
		res, err := svc.Decode(context.Background(), hex.EncodeToString(blob))
		s.Require().NoError(err)
		return res.Summary
	}

	base := models.Record{Version: 1, Country: "MG", CardNumber: "MG1"}

	s.Run("valid on expiry day", func() {
		rec := base
		rec.ValidTo = "2028-01-01"
		sum := decodeAt(date(2028, time.January, 1), rec)
		s.Require().NotNil(sum.IsValid)
		s.True(*sum.IsValid)
		s.Require().NotNil(sum.DaysUntilExpiry)
		s.Equal(0, *sum.DaysUntilExpiry)
	})

	s.Run("expired the day after", func() {
		rec := base
		rec.ValidTo = "2028-01-01"
		sum := decodeAt(date(2028, time.January, 2), rec)
		s.Require().NotNil(sum.IsValid)
		s.False(*sum.IsValid)
		s.Require().NotNil(sum.DaysUntilExpiry)
		s.Equal(-1, *sum.DaysUntilExpiry)
	})

	s.Run("no expiry means permanent", func() {
		sum := decodeAt(date(2028, time.January, 1), base)
		s.Require().NotNil(sum.IsValid)
		s.True(*sum.IsValid)
		s.Nil(sum.DaysUntilExpiry)
	})

	s.Run("unparseable expiry leaves validity unknown", func() {
		rec := base
		rec.ValidTo = "01/01/2028"
		sum := decodeAt(date(2028, time.January, 1), rec)
		s.Nil(sum.IsValid)
		s.Nil(sum.DaysUntilExpiry)
	})
}

func (s *ServiceSuite) TestFormatDescription() {
	desc := s.svc.FormatDescription()

	s.Equal(1, desc.Version)
	s.Equal("PDF417", desc.Format)
	s.Equal(800, desc.MaxPayloadBytes)
	s.Equal(400, desc.MaxImageBytes)
	s.Equal(2, desc.ErrorCorrectionLevel)
	s.Contains(desc.LicenseCategories, "B")
	s.Contains(desc.DriverRestrictions, "glasses")

	var ver *models.FieldSpec
	for i := range desc.Fields {
		if desc.Fields[i].Key == "ver" {
			ver = &desc.Fields[i]
		}
	}
	s.Require().NotNil(ver)
	s.True(ver.Required)
}

func (s *ServiceSuite) TestConcurrentGenerateAndDecode() {
	blob := s.packedScenario()
	input := hex.EncodeToString(blob)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			if _, err := s.svc.Generate(context.Background(), sampleInput()); err != nil {
				return err
			}
			_, err := s.svc.Decode(context.Background(), input)
			return err
		})
	}
	s.Require().NoError(g.Wait())
}

func (s *ServiceSuite) TestScanTestPayloadIsLegacyText() {
	text, record, err := s.svc.ScanTestPayload()
	s.Require().NoError(err)
	s.True(len(text) > 0 && text[0] == '{')
	s.Equal("MG000000001", record.CardNumber)
}
