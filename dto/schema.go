package dto

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	schemaOnce sync.Once
	schemas    map[DocumentType]*jsonschema.Schema
	schemaErr  error
)

// buildRecordSchema returns the JSON schema for a record of the given type.
// Only the universal keys and the type's own candidate keys are allowed.
func buildRecordSchema(docType DocumentType) map[string]any {
	props := map[string]any{
		KeyRawText: map[string]any{"type": "string"},
		KeyDocumentType: map[string]any{
			"type":  "string",
			"const": string(docType),
		},
	}
	for _, k := range CandidateKeys(docType) {
		props[k] = map[string]any{"type": "string"}
	}

	switch docType {
	case DocTypeAadhaar:
		props[KeyAadhaarNumber] = map[string]any{"type": "string", "pattern": `^\d{4} \d{4} \d{4}$`}
		props[KeyGender] = map[string]any{"type": "string", "enum": []string{"Male", "Female"}}
	case DocTypePAN:
		props[KeyPANNumber] = map[string]any{"type": "string", "pattern": `^[A-Z]{5}[0-9]{4}[A-Z]$`}
	case DocTypeMarksheet:
		props[KeyTotalMarks] = map[string]any{"type": "string", "pattern": `^\d+$`}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{KeyRawText, KeyDocumentType},
	}
}

func compileSchemas() {
	schemas = make(map[DocumentType]*jsonschema.Schema)
	for _, dt := range []DocumentType{DocTypeAadhaar, DocTypePAN, DocTypeMarksheet, DocTypeUnknown} {
		b, err := json.Marshal(buildRecordSchema(dt))
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema %s: %w", dt, err)
			return
		}
		url := string(dt) + ".json"
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema %s: %w", dt, err)
			return
		}
		s, err := compiler.Compile(url)
		if err != nil {
			schemaErr = fmt.Errorf("compile schema %s: %w", dt, err)
			return
		}
		schemas[dt] = s
	}
}

// ValidateRecord checks that a record only carries keys allowed for its document type.
func ValidateRecord(rec FieldRecord) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}

	dt := rec.DocumentType()
	s, ok := schemas[dt]
	if !ok {
		return fmt.Errorf("unknown document type %q", dt)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("record does not match %s schema: %w", dt, err)
	}
	return nil
}
