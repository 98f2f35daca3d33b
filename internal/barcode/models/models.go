package models

import "time"

// Schema constants for the printed barcode. The byte budgets derive from the
// symbol's physical capacity at the loosest encoding tier; the packer enforces
// them so rendering can rely on fitting.
const (
	// Version is the current wire schema version. Generation always stamps
	// it; decode tolerates mismatches with a warning.
	Version = 1

	// Country is the issuing country code stamped into every record.
	Country = "MG"

	// MaxPayloadBytes bounds the packed binary container.
	MaxPayloadBytes = 800

	// MaxImageBytes bounds the embedded compressed portrait.
	MaxImageBytes = 400

	// PhotoMaxWidth and PhotoMaxHeight define the portrait pixel envelope.
	// The 2:3 ratio is the standardized ID portrait shape.
	PhotoMaxWidth  = 60
	PhotoMaxHeight = 90
)

// DateLayout is the ISO date format used for every date on the wire.
const DateLayout = "2006-01-02"

// Record is the canonical barcode record: the fixed short-keyed field set
// representing a license holder. It is constructed fresh on every call and
// never persisted here; callers store the packed blob where they see fit.
//
// Field tags double as CBOR keys: the binary packer falls back to json tags.
type Record struct {
	Version             int      `json:"ver"`
	Country             string   `json:"country"`
	Name                string   `json:"name,omitempty"`
	IDNumber            string   `json:"idn,omitempty"`
	Sex                 string   `json:"sex,omitempty"`
	BirthDate           string   `json:"dob,omitempty"`
	FirstIssued         string   `json:"fi,omitempty"`
	ValidFrom           string   `json:"vf,omitempty"`
	ValidTo             string   `json:"vt,omitempty"`
	Codes               []string `json:"codes,omitempty"`
	DriverRestrictions  []string `json:"dr,omitempty"`
	VehicleRestrictions []string `json:"vr,omitempty"`
	CardNumber          string   `json:"card_num,omitempty"`
}

// Person carries the identity fields handed in by the record-keeping system.
type Person struct {
	Surname    string
	FirstName  string
	MiddleName string
	Sex        string // "M" or "F"
	BirthDate  time.Time
}

// License carries the license fields handed in by the record-keeping system.
type License struct {
	Category               string
	ProfessionalCategories []string
	IssueDate              time.Time
	FirstIssueDate         time.Time
	// ExpiryDate is set only for licenses that expire on their own terms
	// (learner permits); otherwise validity ends with the physical card.
	ExpiryDate          time.Time
	DriverRestrictions  []string
	VehicleRestrictions []string
}

// Card identifies the physical card a license is printed on.
type Card struct {
	Number     string
	ValidUntil time.Time
}

// Summary is the derived human-readable view of a decoded record.
type Summary struct {
	FullName            string   `json:"full_name"`
	Sex                 string   `json:"sex"`
	DateOfBirth         string   `json:"date_of_birth,omitempty"`
	LicenseCodes        []string `json:"license_codes"`
	Country             string   `json:"country"`
	ValidFrom           string   `json:"valid_from,omitempty"`
	ValidUntil          string   `json:"valid_until,omitempty"`
	FirstIssued         string   `json:"first_issued,omitempty"`
	CardNumber          string   `json:"card_number,omitempty"`
	DriverRestrictions  []string `json:"driver_restrictions"`
	VehicleRestrictions []string `json:"vehicle_restrictions"`
	HasPhoto            bool     `json:"has_photo"`
	SchemaVersion       int      `json:"barcode_version"`
	// IsValid is nil when the validity date cannot be parsed.
	IsValid         *bool `json:"is_valid"`
	DaysUntilExpiry *int  `json:"days_until_expiry"`
}
