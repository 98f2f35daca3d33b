package models

// FieldSpec documents one wire-format field for the format disclosure.
type FieldSpec struct {
	Key         string `json:"key"`
	Required    bool   `json:"required"`
	Recommended bool   `json:"recommended,omitempty"`
	Description string `json:"description"`
}

// FormatDescription is the published barcode format specification: pure
// configuration disclosure so integrators can build scanners without reading
// this codebase.
type FormatDescription struct {
	Version              int               `json:"version"`
	Format               string            `json:"format"`
	Encoding             string            `json:"encoding"`
	ErrorCorrectionLevel int               `json:"error_correction_level"`
	MaxPayloadBytes      int               `json:"max_payload_bytes"`
	MaxImageBytes        int               `json:"max_image_bytes"`
	Fields               []FieldSpec       `json:"fields"`
	LicenseCategories    map[string]string `json:"license_categories"`
	DriverRestrictions   map[string]string `json:"driver_restrictions"`
	VehicleRestrictions  map[string]string `json:"vehicle_restrictions"`
}

// WireFields is the authoritative field table (spec keys, one row per key).
var WireFields = []FieldSpec{
	{Key: "ver", Required: true, Description: "Format version number"},
	{Key: "country", Required: true, Description: "ISO country code (MG for Madagascar)"},
	{Key: "name", Description: "Full name (uppercase surname first)"},
	{Key: "idn", Description: "National ID number"},
	{Key: "sex", Description: "Sex (M or F)"},
	{Key: "dob", Description: "Date of birth (YYYY-MM-DD)"},
	{Key: "fi", Description: "First issue date (YYYY-MM-DD)"},
	{Key: "vf", Description: "Valid from date (YYYY-MM-DD)"},
	{Key: "vt", Description: "Valid until date (YYYY-MM-DD)"},
	{Key: "codes", Description: "License category codes"},
	{Key: "dr", Description: "Driver restriction codes"},
	{Key: "vr", Description: "Vehicle restriction codes"},
	{Key: "card_num", Recommended: true, Description: "Physical card number (primary identifier for verification)"},
	{Key: "img", Description: "Compressed portrait bytes (binary container only)"},
	{Key: "photo", Description: "Base64 portrait (legacy text format only)"},
}

// LicenseCategories is the printed legend for category codes.
var LicenseCategories = map[string]string{
	"A":  "Motorcycle",
	"B":  "Light vehicle (cars)",
	"C":  "Heavy vehicle (trucks)",
	"D":  "Bus/taxi",
	"EB": "Light trailer",
	"EC": "Heavy trailer",
}
