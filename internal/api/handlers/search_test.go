package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeEmbedder struct {
	embedding []float32
	err       error
	lastText  string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.lastText = text
	return f.embedding, f.err
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero defaults", limit: 0, want: defaultSearchLimit},
		{name: "negative defaults", limit: -3, want: defaultSearchLimit},
		{name: "positive passes through", limit: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLimit(tt.limit); got != tt.want {
				t.Errorf("normalizeLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestSearchVideosMalformedBody(t *testing.T) {
	h := NewSearchHandler(nil, &fakeEmbedder{})

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.SearchVideos(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchVideosEmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("OpenAI embedding creation failed")}
	h := NewSearchHandler(nil, embedder)

	req := httptest.NewRequest(http.MethodPost, "/search",
		strings.NewReader(`{"query": "kubernetes networking"}`))
	rec := httptest.NewRecorder()
	h.SearchVideos(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if embedder.lastText != "kubernetes networking" {
		t.Errorf("embedded text = %q", embedder.lastText)
	}
}
