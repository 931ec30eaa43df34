package ai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newGeminiStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiGeneratorSendsPromptAndConfig(t *testing.T) {
	var body string
	srv := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q, want test-key", got)
		}
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"  new Phaser.Game(config);  "}]},"finishReason":"STOP"}]}`)
	})

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Model:      "models/gemini-2.0-flash",
		Generation: DefaultGenerationConfig(),
	})
	if err != nil {
		t.Fatalf("new gemini generator: %v", err)
	}
	if gen.Model() != "gemini-2.0-flash" {
		t.Fatalf("model = %q, want gemini-2.0-flash", gen.Model())
	}

	got, err := gen.GenerateText(context.Background(), "make a platformer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "  new Phaser.Game(config);  " {
		t.Fatalf("text = %q", got)
	}
	for _, want := range []string{"make a platformer", `"maxOutputTokens":8192`, `"responseMimeType":"text/plain"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("request body %s missing %s", body, want)
		}
	}
}

func TestGeminiGeneratorReportsAPIError(t *testing.T) {
	srv := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	})

	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "bad", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new gemini generator: %v", err)
	}
	if _, err := gen.GenerateText(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from failing api")
	}
}

func TestGeminiGeneratorEmptyResponses(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantText string
	}{
		{name: "no candidates is an error", body: `{"candidates":[]}`, wantErr: true},
		{
			name:     "blank text is returned as is",
			body:     `{"candidates":[{"content":{"role":"model","parts":[{"text":"   "}]},"finishReason":"STOP"}]}`,
			wantText: "   ",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newGeminiStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, tc.body)
			})
			gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "k", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("new gemini generator: %v", err)
			}
			got, err := gen.GenerateText(context.Background(), "anything")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got text %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if got != tc.wantText {
				t.Fatalf("text = %q, want %q", got, tc.wantText)
			}
		})
	}
}

func TestNewGeminiGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), GeminiConfig{APIKey: "  "}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
