package dto

// Identity is one registered person in the identity registry
type Identity struct {
	Name          string `json:"name"`
	DOB           string `json:"dob,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	PANNumber     string `json:"pan_number,omitempty"`
	Gender        string `json:"gender,omitempty"`
	FatherName    string `json:"father_name,omitempty"`
	RollNumber    string `json:"roll_number,omitempty"`
	TotalMarks    string `json:"total_marks,omitempty"`
}

// VerificationResult is the outcome of checking an extracted record against the registry.
// Verified holds the registry entry (without the number used for the lookup) on success.
type VerificationResult struct {
	Valid              bool      `json:"valid"`
	Message            string    `json:"message"`
	SuspiciousActivity bool      `json:"suspicious_activity"`
	Reason             string    `json:"reason,omitempty"`
	Confidence         float64   `json:"confidence"`
	Inconsistencies    []string  `json:"inconsistencies,omitempty"`
	Verified           *Identity `json:"verified,omitempty"`
}

// VerifyResponse is returned by POST /api/v1/documents/verify
type VerifyResponse struct {
	Record       *FieldRecord        `json:"record"`
	Verification *VerificationResult `json:"verification"`
}
