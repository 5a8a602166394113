package service

import (
	"encoding/xml"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

// decodeAadhaarQR reads a UIDAI print-letter QR code from the image
func decodeAadhaarQR(img image.Image) (*dto.AadhaarQRData, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR code: %w", err)
	}

	qrText := strings.TrimSpace(result.GetText())
	log.Printf("QR code decoded, length: %d bytes", len(qrText))

	var qrData dto.AadhaarQRData
	if err := xml.Unmarshal([]byte(qrText), &qrData); err != nil {
		return nil, fmt.Errorf("failed to parse QR XML data: %w", err)
	}
	return &qrData, nil
}

// enrichFromQR fills Aadhaar fields that OCR missed. Values already present are kept.
func enrichFromQR(rec *dto.FieldRecord, q *dto.AadhaarQRData) []string {
	if rec.DocumentType() != dto.DocTypeAadhaar || q == nil {
		return nil
	}

	candidates := []struct{ key, value string }{
		{dto.KeyAadhaarNumber, q.GetUID()},
		{dto.KeyDOB, q.GetDOB()},
		{dto.KeyName, strings.TrimSpace(q.Name)},
		{dto.KeyGender, q.GetGender()},
	}

	var filled []string
	for _, c := range candidates {
		if c.value == "" || rec.Has(c.key) {
			continue
		}
		rec.Set(c.key, c.value)
		filled = append(filled, c.key)
	}
	return filled
}
