package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"GOVERNMENT OF INDIA", "John Smith"},
		SplitLines("GOVERNMENT OF INDIA\n\n  John Smith  \n"))
	assert.Empty(t, SplitLines(" \n\t\n"))
}

func TestPaddleClientExtractLines(t *testing.T) {
	var got paddleRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"msg":"","status":"000","results":[[
			{"text":"Income Tax Department","confidence":0.98},
			{"text":"  ","confidence":0.1},
			{"text":"ABCDE1234F","confidence":0.95}
		]]}`))
	}))
	defer srv.Close()

	p := NewPaddleClient(srv.URL)
	lines, err := p.ExtractLines(context.Background(), []byte("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Income Tax Department", "ABCDE1234F"}, lines)
	require.Len(t, got.Images, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), got.Images[0])
}

func TestPaddleClientNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewPaddleClient(srv.URL).ExtractLines(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPaddleClientCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPaddleClient(srv.URL).ExtractLines(ctx, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
