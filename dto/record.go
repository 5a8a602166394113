package dto

import (
	"bytes"

	"github.com/goccy/go-json"
)

type DocumentType string

const (
	DocTypeAadhaar   DocumentType = "aadhaar"
	DocTypePAN       DocumentType = "pan"
	DocTypeMarksheet DocumentType = "marksheet"
	DocTypeUnknown   DocumentType = "unknown"
)

// Field keys used in the extraction record
const (
	KeyRawText       = "raw_text"
	KeyDocumentType  = "document_type"
	KeyAadhaarNumber = "aadhaar_number"
	KeyName          = "name"
	KeyDOB           = "dob"
	KeyGender        = "gender"
	KeyPANNumber     = "pan_number"
	KeyFatherName    = "father_name"
	KeyRollNumber    = "roll_number"
	KeyTotalMarks    = "total_marks"
)

// CandidateKeys returns the type-specific keys a record of the given type may carry,
// in the order the extractors write them.
func CandidateKeys(docType DocumentType) []string {
	switch docType {
	case DocTypeAadhaar:
		return []string{KeyAadhaarNumber, KeyDOB, KeyName, KeyGender}
	case DocTypePAN:
		return []string{KeyPANNumber, KeyName, KeyFatherName, KeyDOB}
	case DocTypeMarksheet:
		return []string{KeyRollNumber, KeyTotalMarks, KeyName}
	}
	return nil
}

// FieldRecord is the structured output of one extraction run.
// It behaves like a string map that remembers insertion order, so the JSON
// form is always {raw_text, document_type, <fields...>}.
type FieldRecord struct {
	keys   []string
	values map[string]string
}

// NewFieldRecord creates a record holding the two universal keys.
func NewFieldRecord(rawText string, docType DocumentType) FieldRecord {
	r := FieldRecord{values: make(map[string]string)}
	r.Set(KeyRawText, rawText)
	r.Set(KeyDocumentType, string(docType))
	return r
}

// Set stores a value. Existing keys keep their position.
func (r *FieldRecord) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r FieldRecord) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r FieldRecord) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (r FieldRecord) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r FieldRecord) Len() int {
	return len(r.keys)
}

// Map returns an unordered copy of the record.
func (r FieldRecord) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r FieldRecord) DocumentType() DocumentType {
	if v, ok := r.values[KeyDocumentType]; ok {
		return DocumentType(v)
	}
	return DocTypeUnknown
}

func (r FieldRecord) RawText() string {
	return r.values[KeyRawText]
}

// MarshalJSON writes the keys in insertion order. Non-ASCII text is kept as is
// and HTML characters are not escaped.
func (r FieldRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, r.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
