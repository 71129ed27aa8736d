package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) (*Gemini, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGemini(Options{APIKey: "test-key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewGemini error: %v", err)
	}
	return g, srv
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	if _, err := NewGemini(Options{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestSolveReturnsFirstCandidateText(t *testing.T) {
	var captured geminiRequest
	g, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "Step 1: factor the expression."}},
				},
			}},
		})
	})

	answer, err := g.Solve(context.Background(), "solve x^2-1=0", nil)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if answer != "Step 1: factor the expression." {
		t.Fatalf("unexpected answer %q", answer)
	}
	if captured.SystemInstruction == nil || len(captured.SystemInstruction.Parts) == 0 {
		t.Fatal("expected system instruction in request")
	}
	if len(captured.Contents) != 1 || len(captured.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected contents shape: %#v", captured.Contents)
	}
	if captured.Contents[0].Parts[0].Text != "solve x^2-1=0" {
		t.Fatalf("prompt not forwarded: %#v", captured.Contents[0].Parts[0])
	}
}

func TestSolvePlacesImageBeforeText(t *testing.T) {
	var captured geminiRequest
	g, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}},
			}},
		})
	})

	_, err := g.Solve(context.Background(), "what is shown?", &InlineImage{
		MIMEType: "image/png",
		Data:     "aGVsbG8=",
	})
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	parts := captured.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/png" {
		t.Fatalf("expected image first, got %#v", parts[0])
	}
	if parts[1].Text != "what is shown?" {
		t.Fatalf("expected text second, got %#v", parts[1])
	}
}

func TestSolveErrorsOnUpstreamFailure(t *testing.T) {
	g, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	if _, err := g.Solve(context.Background(), "prompt", nil); err == nil {
		t.Fatal("expected error for non-2xx upstream status")
	}
}

func TestSolveErrorsOnEmptyResponse(t *testing.T) {
	g, _ := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	if _, err := g.Solve(context.Background(), "prompt", nil); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
