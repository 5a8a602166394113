// Command extract classifies one document and prints its field record as JSON.
//
//	extract [-password secret] <path>
//
// stdout carries only the JSON record; diagnostics go to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/Aashish23092/ocr-document-verifier/config"
	"github.com/Aashish23092/ocr-document-verifier/dto"
	"github.com/Aashish23092/ocr-document-verifier/service"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsageErr = 2
)

type extractor interface {
	ExtractFromFile(ctx context.Context, data []byte, filename, password string) (*dto.FieldRecord, error)
}

func main() {
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	password := fs.String("password", "", "password for encrypted PDFs")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: extract [-password secret] <path>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(exitUsageErr)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(exitUsageErr)
	}

	cfg := config.LoadConfig()
	cfg.DebugOCR = true

	primary, fallback := service.NewRecognizers(cfg)
	svc := service.NewDocumentService(cfg, primary, fallback, service.NewPDFProcessor(), nil)

	os.Exit(run(context.Background(), svc, fs.Arg(0), *password, os.Stdout))
}

func run(ctx context.Context, svc extractor, path, password string, stdout io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Failed to read %s: %v", path, err)
		return exitFailure
	}

	rec, err := svc.ExtractFromFile(ctx, data, filepath.Base(path), password)
	if err != nil {
		log.Printf("Extraction failed: %v", err)
		return exitFailure
	}

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		log.Printf("Failed to write record: %v", err)
		return exitFailure
	}
	return exitOK
}
