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

func TestResolveProvider(t *testing.T) {
	cases := map[string]string{
		"gpt-4o":            models.ProviderOpenAI,
		"gpt-4-turbo":       models.ProviderOpenAI,
		"claude-3.5-sonnet": models.ProviderAnthropic,
		"claude-3-haiku":    models.ProviderAnthropic,
		"gemini-1.5-pro":    models.ProviderGoogle,
		"mistral-large":     models.ProviderMistral,
		"command-r-plus":    models.ProviderCohere,
	}
	for model, want := range cases {
		got, err := ResolveProvider(model)
		if err != nil {
			t.Fatalf("ResolveProvider(%q) failed: %v", model, err)
		}
		if got != want {
			t.Fatalf("ResolveProvider(%q) = %q, want %q", model, got, want)
		}
	}

	_, err := ResolveProvider("llama-70b")
	if err == nil {
		t.Fatal("unknown model resolved")
	}
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("unknown model: expected ValidationError, got %v", err)
	}
}

func TestValidateTransformationRequest(t *testing.T) {
	ok := TransformationRequest{Text: strings.Repeat("a", maxTextLength), TransformationType: "haiku"}
	if err := ValidateTransformationRequest(ok); err != nil {
		t.Fatalf("request at the 50000 boundary rejected: %v", err)
	}

	tooLong := TransformationRequest{Text: strings.Repeat("a", maxTextLength+1), TransformationType: "haiku"}
	err := ValidateTransformationRequest(tooLong)
	if err == nil {
		t.Fatal("50001-char text accepted")
	}
	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := ValidateTransformationRequest(TransformationRequest{Text: "", TransformationType: "haiku"}); err == nil {
		t.Fatal("empty text accepted")
	}
	if err := ValidateTransformationRequest(TransformationRequest{Text: "hi", TransformationType: ""}); err == nil {
		t.Fatal("empty transformationType accepted")
	}
	if err := ValidateTransformationRequest(TransformationRequest{Text: "hi", TransformationType: "nope"}); err == nil {
		t.Fatal("unknown transformationType accepted")
	}
}

// 未知转换类型必须在任何网络调用之前被拦下
func TestUnknownTypeRejectedBeforeNetwork(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()
	old := openaiEndpoint
	openaiEndpoint = ts.URL
	defer func() { openaiEndpoint = old }()

	req := TransformationRequest{Text: "some text", TransformationType: "definitely-not-real"}
	if err := ValidateTransformationRequest(req); err == nil {
		t.Fatal("unknown transformationType accepted")
	}
	if called {
		t.Fatal("vendor endpoint was hit during validation")
	}
}

// 端到端：haiku模板 + gpt-4o → openai适配器
func TestHaikuTransformationEndToEnd(t *testing.T) {
	const input = "Tenant shall pay rent monthly."

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req AIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("model = %q", req.Model)
		}
		// 用户消息里要原样带着那句话
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, input) {
			t.Errorf("user message does not embed the input text: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Rent due with each moon\nTenant's promise, landlord's trust\nPaper binds them both"}},
			},
		})
	}))
	defer ts.Close()
	old := openaiEndpoint
	openaiEndpoint = ts.URL
	defer func() { openaiEndpoint = old }()

	settings := testSettings("gpt-4o")
	provider, err := ResolveProvider(settings.SelectedModel)
	if err != nil {
		t.Fatalf("ResolveProvider failed: %v", err)
	}
	if provider != models.ProviderOpenAI {
		t.Fatalf("provider = %q", provider)
	}

	template, ok := GetPromptTemplate("haiku")
	if !ok {
		t.Fatal("haiku template missing")
	}
	prompt := Prompt{System: template.System, User: template.User(input)}

	result, err := ProcessWithAI(context.Background(), provider, "sk-test", prompt, settings)
	if err != nil {
		t.Fatalf("ProcessWithAI failed: %v", err)
	}
	if !strings.Contains(result, "Rent due with each moon") {
		t.Fatalf("unexpected result: %q", result)
	}
}
