package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

func TestExtractPANFieldsMinimal(t *testing.T) {
	rec := ExtractFields([]string{"Income Tax Department", "Namo", "Ravi Kumar", "ABCDE1234F"})

	assert.Equal(t, dto.DocTypePAN, rec.DocumentType())
	pan, _ := rec.Get(dto.KeyPANNumber)
	name, _ := rec.Get(dto.KeyName)
	assert.Equal(t, "ABCDE1234F", pan)
	assert.Equal(t, "Ravi Kumar", name)
	assert.False(t, rec.Has(dto.KeyFatherName))
	assert.False(t, rec.Has(dto.KeyDOB))
}

func TestExtractPANFieldsFullCard(t *testing.T) {
	rec := ExtractFields([]string{
		"INCOME TAX DEPARTMENT",
		"GOVT. OF INDIA",
		"Permanent Account Number Card",
		"ABCDE1234F",
		"Name",
		"RAVI KUMAR",
		"Father's Name",
		"SURESH KUMAR",
		"Date of Birth",
		"15/08/1985",
	})

	assert.Equal(t, dto.DocTypePAN, rec.DocumentType())
	assert.Equal(t, []string{
		dto.KeyRawText, dto.KeyDocumentType,
		dto.KeyPANNumber, dto.KeyName, dto.KeyFatherName, dto.KeyDOB,
	}, rec.Keys())

	name, _ := rec.Get(dto.KeyName)
	father, _ := rec.Get(dto.KeyFatherName)
	dob, _ := rec.Get(dto.KeyDOB)
	assert.Equal(t, "RAVI KUMAR", name)
	assert.Equal(t, "SURESH KUMAR", father)
	assert.Equal(t, "15/08/1985", dob)
}

func TestExtractPANGarbledLabels(t *testing.T) {
	rec := ExtractFields([]string{"Income Tax Department", "Iamo", "Ravi Kumar", "Fathcr's Namo", "Mohan Kumar"})

	name, _ := rec.Get(dto.KeyName)
	father, _ := rec.Get(dto.KeyFatherName)
	assert.Equal(t, "Ravi Kumar", name)
	assert.Equal(t, "Mohan Kumar", father)
}

func TestExtractPANSkipsKeywordLines(t *testing.T) {
	rec := ExtractFields([]string{"Income Tax Department", "Name", "", "PAN Card", "DOB: 01/01/1990", "Meena Iyer"})

	name, _ := rec.Get(dto.KeyName)
	assert.Equal(t, "Meena Iyer", name)
}

func TestExtractPANScansForwardOnly(t *testing.T) {
	rec := ExtractFields([]string{"ABCDE1234F", "Ravi Kumar", "15/08/1985", "DOB", "Name"})

	assert.Equal(t, dto.DocTypePAN, rec.DocumentType())
	assert.False(t, rec.Has(dto.KeyName))
	assert.False(t, rec.Has(dto.KeyDOB))
}

func TestExtractPANDOBTakesDateSubstring(t *testing.T) {
	rec := ExtractFields([]string{"ABCDE1234F", "DOB", "Birth 02-03-1979 (verified)"})

	dob, _ := rec.Get(dto.KeyDOB)
	assert.Equal(t, "02-03-1979", dob)
}
