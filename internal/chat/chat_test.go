package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mightywomble/linksdashboard/internal/store"
)

func TestAskRequiresKeys(t *testing.T) {
	p := New(time.Second)

	_, err := p.Ask(context.Background(), "hi", "openai", store.APIKeys{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("openai without key: got %v", err)
	}

	_, err = p.Ask(context.Background(), "hi", GeminiService, store.APIKeys{})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("gemini without key: got %v", err)
	}
}

func TestAskOpenAI(t *testing.T) {
	var gotAuth string
	var gotReq openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "hello back"}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	p := New(time.Second)
	p.openAIBaseURL = srv.URL

	reply, err := p.Ask(context.Background(), "hello", "openai", store.APIKeys{OpenAI: "sk-test"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "hello back" {
		t.Errorf("reply = %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Model != openAIModel {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "hello" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestAskOpenAIProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	p := New(time.Second)
	p.openAIBaseURL = srv.URL

	_, err := p.Ask(context.Background(), "hello", "openai", store.APIKeys{OpenAI: "sk-test"})
	if err == nil {
		t.Fatal("expected provider error")
	}
	if errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("provider failure misreported as missing key: %v", err)
	}
}
