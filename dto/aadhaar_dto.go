package dto

import (
	"encoding/xml"
	"strings"
)

// AadhaarQRData represents the XML structure in the Aadhaar print letter QR code
// Based on UIDAI's PrintLetterBarcodeData format
type AadhaarQRData struct {
	XMLName     xml.Name `xml:"PrintLetterBarcodeData"`
	UID         string   `xml:"uid,attr"`
	Name        string   `xml:"name,attr"`
	Gender      string   `xml:"gender,attr"`
	YearOfBirth string   `xml:"yob,attr"`
	DateOfBirth string   `xml:"dob,attr"`
}

// GetUID returns the Aadhaar number grouped as "dddd dddd dddd",
// or "" when the QR does not carry a full 12 digit number.
func (q *AadhaarQRData) GetUID() string {
	digits := strings.Join(strings.Fields(q.UID), "")
	if len(digits) != 12 {
		return ""
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return digits[:4] + " " + digits[4:8] + " " + digits[8:]
}

// GetDOB returns the full date of birth. Year-only values are not a DOB and are skipped.
func (q *AadhaarQRData) GetDOB() string {
	return strings.TrimSpace(q.DateOfBirth)
}

// GetGender maps the QR gender code (M/F) to the OCR output form
func (q *AadhaarQRData) GetGender() string {
	switch strings.ToUpper(strings.TrimSpace(q.Gender)) {
	case "M", "MALE":
		return "Male"
	case "F", "FEMALE":
		return "Female"
	}
	return ""
}
