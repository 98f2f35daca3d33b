// Package fields maps external identity, license, and card records onto the
// canonical short-keyed barcode record. The mapping is a pure transformation:
// no lookups, no side effects.
package fields

import (
	"strings"
	"time"

	"permis/internal/barcode/models"
)

// driverRestrictionCodes maps internal driver restriction codes to the
// abbreviated barcode vocabulary. Unknown codes pass through unchanged so
// newer issuing software stays readable by older scanners.
var driverRestrictionCodes = map[string]string{
	"corrective_lenses": "glasses",
	"prosthetics":       "prosthetics",
}

// vehicleRestrictionCodes maps internal vehicle restriction codes to the
// abbreviated barcode vocabulary.
var vehicleRestrictionCodes = map[string]string{
	"automatic_transmission": "auto",
	"electric_powered":       "electric",
	"physical_disabled":      "disabled",
	"tractor_only":           "tractor",
	"industrial_agriculture": "industrial",
}

// DriverRestrictionLegend returns the published driver restriction vocabulary.
func DriverRestrictionLegend() map[string]string {
	return map[string]string{
		"glasses":     "Must wear corrective lenses",
		"prosthetics": "Uses artificial limb/prosthetics",
	}
}

// VehicleRestrictionLegend returns the published vehicle restriction vocabulary.
func VehicleRestrictionLegend() map[string]string {
	return map[string]string{
		"auto":       "Automatic transmission only",
		"electric":   "Electric powered vehicles only",
		"disabled":   "Vehicles adapted for disabilities",
		"tractor":    "Tractor vehicles only",
		"industrial": "Industrial/agriculture vehicles only",
	}
}

// Map builds the canonical barcode record from external records. The card is
// optional; when present its number is embedded and its validity end date
// backs vt for licenses without their own expiry.
func Map(person models.Person, license models.License, card *models.Card) models.Record {
	rec := models.Record{
		Version:   models.Version,
		Country:   models.Country,
		Name:      fullName(person),
		Sex:       strings.ToUpper(strings.TrimSpace(person.Sex)),
		BirthDate: isoDate(person.BirthDate),
		ValidFrom: isoDate(license.IssueDate),
		FirstIssued: isoDate(firstNonZero(
			license.FirstIssueDate, license.IssueDate)),
		Codes:               categoryCodes(license),
		DriverRestrictions:  mapRestrictions(license.DriverRestrictions, driverRestrictionCodes),
		VehicleRestrictions: mapRestrictions(license.VehicleRestrictions, vehicleRestrictionCodes),
	}

	// Only learner permits carry their own expiry; everyone else is valid
	// as long as the physical card is.
	switch {
	case !license.ExpiryDate.IsZero():
		rec.ValidTo = isoDate(license.ExpiryDate)
	case card != nil:
		rec.ValidTo = isoDate(card.ValidUntil)
	}

	if card != nil {
		rec.CardNumber = card.Number
	}

	return rec
}

// fullName joins surname (uppercased), given name, and middle name.
func fullName(p models.Person) string {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(p.Surname); s != "" {
		parts = append(parts, strings.ToUpper(s))
	}
	if s := strings.TrimSpace(p.FirstName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(p.MiddleName); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func categoryCodes(license models.License) []string {
	var codes []string
	if license.Category != "" {
		codes = append(codes, license.Category)
	}
	for _, c := range license.ProfessionalCategories {
		if c != "" && !contains(codes, c) {
			codes = append(codes, c)
		}
	}
	return codes
}

// mapRestrictions translates restriction codes through the fixed vocabulary.
// Unmapped codes pass through unchanged; duplicates collapse.
func mapRestrictions(in []string, vocab map[string]string) []string {
	var out []string
	for _, code := range in {
		mapped, ok := vocab[code]
		if !ok {
			mapped = code
		}
		if mapped != "" && !contains(out, mapped) {
			out = append(out, mapped)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func firstNonZero(ts ...time.Time) time.Time {
	for _, t := range ts {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}
