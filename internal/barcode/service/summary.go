package service

import (
	"time"

	"permis/internal/barcode/fields"
	"permis/internal/barcode/models"
	"permis/internal/barcode/payload"
)

// summarize derives the human-readable view of a decoded record. Validity is
// computed against the service clock; a record without vt is permanent and
// counts as valid.
func (s *Service) summarize(record models.Record, hasPhoto bool) models.Summary {
	summary := models.Summary{
		FullName:            record.Name,
		Sex:                 sexWord(record.Sex),
		DateOfBirth:         record.BirthDate,
		LicenseCodes:        record.Codes,
		Country:             record.Country,
		ValidFrom:           record.ValidFrom,
		ValidUntil:          record.ValidTo,
		FirstIssued:         record.FirstIssued,
		CardNumber:          record.CardNumber,
		DriverRestrictions:  record.DriverRestrictions,
		VehicleRestrictions: record.VehicleRestrictions,
		HasPhoto:            hasPhoto,
		SchemaVersion:       record.Version,
	}

	if record.ValidTo == "" {
		valid := true
		summary.IsValid = &valid
		return summary
	}
	validTo, err := time.Parse(models.DateLayout, record.ValidTo)
	if err != nil {
		return summary
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	valid := !validTo.Before(today)
	days := int(validTo.Sub(today).Hours() / 24)
	summary.IsValid = &valid
	summary.DaysUntilExpiry = &days
	return summary
}

func sexWord(code string) string {
	switch code {
	case "M":
		return "Male"
	case "F":
		return "Female"
	default:
		return code
	}
}

// FormatDescription publishes the wire format so scanner integrators do not
// have to reverse-engineer it.
func (s *Service) FormatDescription() models.FormatDescription {
	return models.FormatDescription{
		Version:              models.Version,
		Format:               "PDF417",
		Encoding:             "CBOR binary container; legacy payloads are minified JSON text",
		ErrorCorrectionLevel: 2,
		MaxPayloadBytes:      models.MaxPayloadBytes,
		MaxImageBytes:        models.MaxImageBytes,
		Fields:               models.WireFields,
		LicenseCategories:    models.LicenseCategories,
		DriverRestrictions:   fields.DriverRestrictionLegend(),
		VehicleRestrictions:  fields.VehicleRestrictionLegend(),
	}
}

// ScanTestPayload returns a fixed legacy-text payload for scanner smoke
// tests. The content is stable so integrators can hard-code the expected
// decode result.
func (s *Service) ScanTestPayload() (string, models.Record, error) {
	record := models.Record{
		Version:     models.Version,
		Country:     models.Country,
		Name:        "RAKOTOMALALA Jean",
		Sex:         "M",
		BirthDate:   "1990-06-01",
		FirstIssued: "2015-02-10",
		ValidFrom:   "2024-01-01",
		ValidTo:     "2029-01-01",
		Codes:       []string{"B"},
		CardNumber:  "MG000000001",
	}
	text, err := payload.EncodeLegacy(record, nil)
	return text, record, err
}
