package controllers

// 三家LLM厂商的HTTP适配器
// 请求体按各家的schema组装，响应统一抽取成纯文本，失败翻译成ExternalServiceError
// 不做重试：一次失败就是一次失败的转换
import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"go.uber.org/zap"
)

// 测试时指向httptest服务
var (
	openaiEndpoint    = "https://api.openai.com/v1/chat/completions"
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	googleEndpoint    = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
)

var llmClient = &http.Client{Timeout: 60 * time.Second}

const noResponseFallback = "No response generated"

// Prompt 渲染后的系统提示+用户提示
type Prompt struct {
	System string
	User   string
}

// ===========OpenAI风格============
type AIRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ===========Anthropic============
type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	Messages    []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// ===========Google generateContent============
type googlePart struct {
	Text string `json:"text"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googleRequest struct {
	Contents         []googleContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
		TopP            float64 `json:"topP"`
	} `json:"generationConfig"`
}

type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []googlePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// 各家的错误响应都是 {"error":{"message":...}} 这个形状
type vendorError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func vendorErrMessage(body []byte) string {
	var ve vendorError
	if err := json.Unmarshal(body, &ve); err == nil && ve.Error.Message != "" {
		return ve.Error.Message
	}
	return "Unknown error"
}

func postJSON(ctx context.Context, reqURL string, headers map[string]string, payload interface{}) (int, []byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	resp, err := llmClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close() //记得关闭响应体
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// callOpenAI 角色分离的messages结构，429/401给出可读的专门提示
func callOpenAI(ctx context.Context, apiKey string, prompt Prompt, settings models.UserSettings) (string, error) {
	payload := AIRequest{
		Model: settings.SelectedModel,
		Messages: []Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
		TopP:        settings.TopP,
	}
	status, body, err := postJSON(ctx, openaiEndpoint, map[string]string{
		"Authorization": "Bearer " + apiKey,
	}, payload)
	if err != nil {
		log.L().Error("openai request error:", zap.Error(err))
		return "", utils.NewExternalServiceError(fmt.Sprintf("Failed to connect to OpenAI: %v", err), models.ProviderOpenAI)
	}
	if status != http.StatusOK {
		switch status {
		case http.StatusTooManyRequests:
			return "", utils.NewExternalServiceError("OpenAI rate limit exceeded", models.ProviderOpenAI)
		case http.StatusUnauthorized:
			return "", utils.NewExternalServiceError("Invalid OpenAI API key", models.ProviderOpenAI)
		}
		return "", utils.NewExternalServiceError(fmt.Sprintf("OpenAI API error: %s", vendorErrMessage(body)), models.ProviderOpenAI)
	}

	var openaiResp AIResponse
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		log.L().Error("unmarshal openai response error:", zap.Error(err))
		return "", utils.NewExternalServiceError("Failed to parse OpenAI response", models.ProviderOpenAI)
	}
	if len(openaiResp.Choices) == 0 || openaiResp.Choices[0].Message.Content == "" {
		return noResponseFallback, nil
	}
	return openaiResp.Choices[0].Message.Content, nil
}

// callAnthropic messages接口不接受system角色，system和user拼成一条user消息
func callAnthropic(ctx context.Context, apiKey string, prompt Prompt, settings models.UserSettings) (string, error) {
	payload := anthropicRequest{
		Model:       settings.SelectedModel,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
		TopP:        settings.TopP,
		Messages: []Message{
			{Role: "user", Content: prompt.System + "\n\n" + prompt.User},
		},
	}
	status, body, err := postJSON(ctx, anthropicEndpoint, map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	}, payload)
	if err != nil {
		log.L().Error("anthropic request error:", zap.Error(err))
		return "", utils.NewExternalServiceError(fmt.Sprintf("Failed to connect to Anthropic: %v", err), models.ProviderAnthropic)
	}
	if status != http.StatusOK {
		return "", utils.NewExternalServiceError(fmt.Sprintf("Anthropic API error: %s", vendorErrMessage(body)), models.ProviderAnthropic)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.L().Error("unmarshal anthropic response error:", zap.Error(err))
		return "", utils.NewExternalServiceError("Failed to parse Anthropic response", models.ProviderAnthropic)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return noResponseFallback, nil
	}
	return resp.Content[0].Text, nil
}

// callGoogle apikey走query参数，system+user合成一个text块
func callGoogle(ctx context.Context, apiKey string, prompt Prompt, settings models.UserSettings) (string, error) {
	payload := googleRequest{
		Contents: []googleContent{
			{Parts: []googlePart{{Text: prompt.System + "\n\n" + prompt.User}}},
		},
	}
	payload.GenerationConfig.Temperature = settings.Temperature
	payload.GenerationConfig.MaxOutputTokens = settings.MaxTokens
	payload.GenerationConfig.TopP = settings.TopP

	reqURL := fmt.Sprintf(googleEndpoint, settings.SelectedModel) + "?key=" + url.QueryEscape(apiKey)
	status, body, err := postJSON(ctx, reqURL, nil, payload)
	if err != nil {
		log.L().Error("google request error:", zap.Error(err))
		return "", utils.NewExternalServiceError(fmt.Sprintf("Failed to connect to Google AI: %v", err), models.ProviderGoogle)
	}
	if status != http.StatusOK {
		return "", utils.NewExternalServiceError(fmt.Sprintf("Google AI API error: %s", vendorErrMessage(body)), models.ProviderGoogle)
	}

	var resp googleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.L().Error("unmarshal google response error:", zap.Error(err))
		return "", utils.NewExternalServiceError("Failed to parse Google AI response", models.ProviderGoogle)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == "" {
		return noResponseFallback, nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// ProcessWithAI 按provider分发到对应适配器
func ProcessWithAI(ctx context.Context, provider, apiKey string, prompt Prompt, settings models.UserSettings) (string, error) {
	switch provider {
	case models.ProviderOpenAI:
		return callOpenAI(ctx, apiKey, prompt, settings)
	case models.ProviderAnthropic:
		return callAnthropic(ctx, apiKey, prompt, settings)
	case models.ProviderGoogle:
		return callGoogle(ctx, apiKey, prompt, settings)
	default:
		// mistral/cohere在模型表里但还没有适配器
		return "", fmt.Errorf("unsupported AI provider: %s", provider)
	}
}
