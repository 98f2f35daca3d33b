package handler

import (
	"encoding/base64"

	dErrors "permis/pkg/domain-errors"

	"permis/internal/barcode/models"
	"permis/internal/barcode/service"
)

// GenerateRequest mirrors the record-keeping system's shape. Dates are
// YYYY-MM-DD strings on the wire.
type GenerateRequest struct {
	Person      PersonDTO  `json:"person"`
	License     LicenseDTO `json:"license"`
	Card        *CardDTO   `json:"card,omitempty"`
	PhotoBase64 string     `json:"photo_base64,omitempty"`
}

type PersonDTO struct {
	Surname    string `json:"surname"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	Sex        string `json:"sex"`
	BirthDate  string `json:"birth_date"`
}

type LicenseDTO struct {
	Category               string   `json:"category"`
	ProfessionalCategories []string `json:"professional_categories,omitempty"`
	IssueDate              string   `json:"issue_date"`
	FirstIssueDate         string   `json:"first_issue_date,omitempty"`
	ExpiryDate             string   `json:"expiry_date,omitempty"`
	DriverRestrictions     []string `json:"driver_restrictions,omitempty"`
	VehicleRestrictions    []string `json:"vehicle_restrictions,omitempty"`
}

type CardDTO struct {
	Number     string `json:"number"`
	ValidUntil string `json:"valid_until"`
}

func (req *GenerateRequest) toInput() (service.GenerateInput, error) {
	var in service.GenerateInput
	var err error

	in.Person = models.Person{
		Surname:    req.Person.Surname,
		FirstName:  req.Person.FirstName,
		MiddleName: req.Person.MiddleName,
		Sex:        req.Person.Sex,
	}
	if in.Person.BirthDate, err = parseDate("person.birth_date", req.Person.BirthDate); err != nil {
		return in, err
	}

	in.License = models.License{
		Category:               req.License.Category,
		ProfessionalCategories: req.License.ProfessionalCategories,
		DriverRestrictions:     req.License.DriverRestrictions,
		VehicleRestrictions:    req.License.VehicleRestrictions,
	}
	if in.License.IssueDate, err = parseDate("license.issue_date", req.License.IssueDate); err != nil {
		return in, err
	}
	if in.License.FirstIssueDate, err = parseDate("license.first_issue_date", req.License.FirstIssueDate); err != nil {
		return in, err
	}
	if in.License.ExpiryDate, err = parseDate("license.expiry_date", req.License.ExpiryDate); err != nil {
		return in, err
	}

	if req.Card != nil {
		card := models.Card{Number: req.Card.Number}
		if card.ValidUntil, err = parseDate("card.valid_until", req.Card.ValidUntil); err != nil {
			return in, err
		}
		in.Card = &card
	}

	if req.PhotoBase64 != "" {
		in.Photo, err = base64.StdEncoding.DecodeString(req.PhotoBase64)
		if err != nil {
			return in, dErrors.New(dErrors.CodeInvalidInput, "photo_base64 is not valid base64")
		}
	}
	return in, nil
}

type GenerateResponse struct {
	BarcodeImageBase64 string        `json:"barcode_image_base64"`
	BarcodeData        models.Record `json:"barcode_data"`
	DataSizeBytes      int           `json:"data_size_bytes"`
	PhotoIncluded      bool          `json:"photo_included"`
	Tier               string        `json:"tier"`
}

type DecodeRequest struct {
	Payload string `json:"payload"`
}

type DecodeResponse struct {
	DecodedData models.Record  `json:"decoded_data"`
	LicenseInfo models.Summary `json:"license_info"`
	Warnings    []string       `json:"warnings"`
}

type DecodePhotoResponse struct {
	PhotoBase64    string `json:"photo_base64"`
	PhotoSizeBytes int    `json:"photo_size_bytes"`
}

type ScanTestResponse struct {
	Payload      string        `json:"payload"`
	Format       string        `json:"format"`
	Instructions string        `json:"instructions"`
	Expected     models.Record `json:"expected"`
}
