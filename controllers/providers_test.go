package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"
)

func testSettings(model string) models.UserSettings {
	return models.UserSettings{
		SelectedModel: model,
		Temperature:   0.7,
		MaxTokens:     2000,
		TopP:          1.0,
	}
}

func TestCallOpenAI(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization header = %q", got)
		}
		var req AIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages shape: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Rent falls due each moon"}},
			},
		})
	}))
	defer ts.Close()

	old := openaiEndpoint
	openaiEndpoint = ts.URL
	defer func() { openaiEndpoint = old }()

	got, err := callOpenAI(context.Background(), "sk-test", Prompt{System: "sys", User: "usr"}, testSettings("gpt-4o"))
	if err != nil {
		t.Fatalf("callOpenAI failed: %v", err)
	}
	if got != "Rent falls due each moon" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestCallOpenAIErrorStatuses(t *testing.T) {
	cases := []struct {
		status  int
		wantMsg string
	}{
		{http.StatusTooManyRequests, "OpenAI rate limit exceeded"},
		{http.StatusUnauthorized, "Invalid OpenAI API key"},
		{http.StatusInternalServerError, "OpenAI API error: boom"},
	}
	for _, tc := range cases {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "boom"},
			})
		}))
		old := openaiEndpoint
		openaiEndpoint = ts.URL

		_, err := callOpenAI(context.Background(), "sk-test", Prompt{}, testSettings("gpt-4o"))
		openaiEndpoint = old
		ts.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		var appErr *utils.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("status %d: not an AppError: %v", tc.status, err)
		}
		if appErr.Service != models.ProviderOpenAI {
			t.Fatalf("status %d: service = %q", tc.status, appErr.Service)
		}
		if appErr.Message != tc.wantMsg {
			t.Fatalf("status %d: message = %q, want %q", tc.status, appErr.Message, tc.wantMsg)
		}
	}
}

func TestCallOpenAIEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer ts.Close()
	old := openaiEndpoint
	openaiEndpoint = ts.URL
	defer func() { openaiEndpoint = old }()

	got, err := callOpenAI(context.Background(), "sk-test", Prompt{}, testSettings("gpt-4o"))
	if err != nil {
		t.Fatalf("callOpenAI failed: %v", err)
	}
	if got != noResponseFallback {
		t.Fatalf("expected fallback text, got %q", got)
	}
}

func TestCallAnthropic(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "sk-ant" {
			t.Errorf("x-api-key header = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("anthropic-version header = %q", got)
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		// system和user拼成一条user消息
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages shape: %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[0].Content, "sys") || !strings.Contains(req.Messages[0].Content, "usr") {
			t.Errorf("combined prompt missing pieces: %q", req.Messages[0].Content)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "answer"}},
		})
	}))
	defer ts.Close()

	old := anthropicEndpoint
	anthropicEndpoint = ts.URL
	defer func() { anthropicEndpoint = old }()

	got, err := callAnthropic(context.Background(), "sk-ant", Prompt{System: "sys", User: "usr"}, testSettings("claude-3.5-sonnet"))
	if err != nil {
		t.Fatalf("callAnthropic failed: %v", err)
	}
	if got != "answer" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestCallGoogle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// apikey走query参数
		if got := r.URL.Query().Get("key"); got != "g-key" {
			t.Errorf("key query param = %q", got)
		}
		if !strings.Contains(r.URL.Path, "gemini-1.5-pro") {
			t.Errorf("model missing from path: %q", r.URL.Path)
		}
		var req googleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("unexpected contents shape: %+v", req.Contents)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "gemini says"}},
				}},
			},
		})
	}))
	defer ts.Close()

	old := googleEndpoint
	googleEndpoint = ts.URL + "/models/%s:generateContent"
	defer func() { googleEndpoint = old }()

	got, err := callGoogle(context.Background(), "g-key", Prompt{System: "sys", User: "usr"}, testSettings("gemini-1.5-pro"))
	if err != nil {
		t.Fatalf("callGoogle failed: %v", err)
	}
	if got != "gemini says" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestProcessWithAIUnsupportedProvider(t *testing.T) {
	_, err := ProcessWithAI(context.Background(), models.ProviderMistral, "key", Prompt{}, testSettings("mistral-large"))
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		t.Fatalf("unsupported provider should be a plain error, got AppError %+v", appErr)
	}
}
