package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

type stubExtractor struct {
	rec *dto.FieldRecord
	err error
}

func (s stubExtractor) ExtractFromFile(ctx context.Context, data []byte, filename, password string) (*dto.FieldRecord, error) {
	return s.rec, s.err
}

func writeTemp(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))
	return path
}

func TestRunWritesSingleJSONLine(t *testing.T) {
	rec := dto.NewFieldRecord("आधार कार्ड", dto.DocTypeUnknown)
	out := new(bytes.Buffer)

	code := run(context.Background(), stubExtractor{rec: &rec}, writeTemp(t), "", out)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "{\"raw_text\":\"आधार कार्ड\",\"document_type\":\"unknown\"}\n", out.String())
}

func TestRunFailures(t *testing.T) {
	out := new(bytes.Buffer)

	code := run(context.Background(), stubExtractor{}, filepath.Join(t.TempDir(), "missing.png"), "", out)
	assert.Equal(t, exitFailure, code)

	code = run(context.Background(), stubExtractor{err: errors.New("ocr down")}, writeTemp(t), "", out)
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out.String())
}
