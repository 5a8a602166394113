package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	_ "golang.org/x/image/tiff"
)

// PDFProcessor reads the first page of a PDF. Only the first page is
// considered, matching how single-page identity documents are scanned.
type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) ([]string, error)
	ExtractFirstPageImage(pdfData []byte, password string) (image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns the text rows of page 1 from the PDF text layer
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) ([]string, error) {
	var (
		r   *pdf.Reader
		err error
	)
	size := int64(len(pdfData))
	if password != "" {
		tried := false
		r, err = pdf.NewReaderEncrypted(bytes.NewReader(pdfData), size, func() string {
			if tried {
				return ""
			}
			tried = true
			return password
		})
	} else {
		r, err = pdf.NewReader(bytes.NewReader(pdfData), size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF text layer: %w", err)
	}

	if r.NumPage() < 1 {
		return nil, nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return nil, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF rows: %w", err)
	}

	var lines []string
	for _, row := range rows {
		var sb strings.Builder
		for _, word := range row.Content {
			sb.WriteString(word.S)
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// ExtractFirstPageImage returns the largest embedded image on page 1
func (p *pdfProcessor) ExtractFirstPageImage(pdfData []byte, password string) (image.Image, error) {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	inFile := filepath.Join(tempDir, "doc.pdf")
	if err := os.WriteFile(inFile, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}

	outDir := filepath.Join(tempDir, "out")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	if err := api.ExtractImagesFile(inFile, outDir, []string{"1"}, conf); err != nil {
		if isDecryptError(err) {
			return nil, fmt.Errorf("%w: %v", ErrPDFDecrypt, err)
		}
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	return largestImageIn(outDir)
}

// isDecryptError covers pdfcpu's wrong password sentinel and its unwrapped
// password/decrypt messages
func isDecryptError(err error) bool {
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "decrypt")
}

// largestImageIn decodes every image file in dir and keeps the one with the
// biggest pixel area. Undecodable files are skipped.
func largestImageIn(dir string) (image.Image, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var best image.Image
	bestArea := 0
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		img, err := decodeImageFile(filepath.Join(dir, file.Name()))
		if err != nil {
			log.Printf("Skipping undecodable PDF image %s: %v", file.Name(), err)
			continue
		}
		if area := img.Bounds().Dx() * img.Bounds().Dy(); area > bestArea {
			best, bestArea = img, area
		}
	}

	if best == nil {
		return nil, ErrNoImageInPDF
	}
	return best, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
