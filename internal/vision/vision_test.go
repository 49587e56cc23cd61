package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/roadsign/internal/errs"
	"github.com/abhisek/roadsign/internal/llm"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestRecognize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("🚦 AB3a | Catégorie : Priorité")})
	r := New(mock)

	text, err := r.Recognize(context.Background(), Image{MediaType: "image/png", Data: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, "🚦 AB3a | Catégorie : Priorité", text)

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.System, "code de la route")
	require.Len(t, req.Messages, 1)
	require.Len(t, req.Messages[0].Images, 1)
	assert.Equal(t, "image/png", req.Messages[0].Images[0].MediaType)
	assert.Equal(t, pngHeader, req.Messages[0].Images[0].Data)
}

func TestRecognize_InvalidImage(t *testing.T) {
	mock := llm.NewMockProvider()
	r := New(mock)

	_, err := r.Recognize(context.Background(), Image{MediaType: "image/png"})
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = r.Recognize(context.Background(), Image{MediaType: "text/plain", Data: []byte("hi")})
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	assert.Zero(t, mock.CallCount())
}

func TestRecognize_ProviderFailure(t *testing.T) {
	r := New(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}))
	_, err := r.Recognize(context.Background(), Image{MediaType: "image/jpeg", Data: []byte{0xff}})
	assert.ErrorIs(t, err, errs.ErrGeneration)
}

func TestRecognize_EmptyText(t *testing.T) {
	r := New(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"  "`)}))
	_, err := r.Recognize(context.Background(), Image{MediaType: "image/jpeg", Data: []byte{0xff}})
	assert.ErrorIs(t, err, errs.ErrGeneration)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sign.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pngHeader)
		case "/sniff":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(pngHeader)
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	img, err := Fetch(ctx, srv.Client(), srv.URL+"/sign.png", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, pngHeader, img.Data)

	img, err = Fetch(ctx, srv.Client(), srv.URL+"/sniff", 1024)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/page", 1024)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/missing", 1024)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/sign.png", 4)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = Fetch(ctx, srv.Client(), "://bad", 1024)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}
