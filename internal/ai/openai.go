package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tripscope/internal/types"
)

// DefaultOpenAIBase is the public OpenAI API root. Any compatible endpoint works.
const DefaultOpenAIBase = "https://api.openai.com/v1"

// DefaultOpenAIModel is used when no model name is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements LLMProvider against an OpenAI-compatible
// chat completions endpoint.
type OpenAIProvider struct {
	apiKey string
	base   string
	model  string
	client *http.Client
}

// NewOpenAIProvider builds a provider. The client timeout guards against
// stalled connections; per-call deadlines come from ctx.
func NewOpenAIProvider(apiKey, base, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if base == "" {
		base = DefaultOpenAIBase
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		apiKey: apiKey,
		base:   strings.TrimSuffix(base, "/"),
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ExtractRegion asks the model for the destination in text in JSON mode.
func (p *OpenAIProvider) ExtractRegion(ctx context.Context, text string) (*RegionResult, error) {
	reply, err := p.complete(ctx, chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: regionSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}
	var result RegionResult
	if err := json.Unmarshal([]byte(cleanJSONString(reply)), &result); err != nil {
		return nil, fmt.Errorf("openai: parse region JSON: %w", err)
	}
	return &result, nil
}

// PlanItinerary sends the system prompt, the history and the current prompt.
func (p *OpenAIProvider) PlanItinerary(ctx context.Context, req PlanRequest) (string, error) {
	messages := []chatMessage{{Role: "system", Content: buildPlanPrompt(req.Scope)}}
	for _, msg := range req.History {
		switch msg.Type {
		case types.RoleUser:
			messages = append(messages, chatMessage{Role: "user", Content: msg.Content})
		case types.RoleAssistant:
			messages = append(messages, chatMessage{Role: "assistant", Content: msg.Content})
		}
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	return p.complete(ctx, chatRequest{Model: p.model, Messages: messages, Temperature: 0.7})
}

func (p *OpenAIProvider) complete(ctx context.Context, body chatRequest) (string, error) {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.base+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || cr.Error != nil {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if cr.Error != nil {
			apiErr.Message = cr.Error.Message
		}
		return "", apiErr
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai: API returned empty choices array")
	}
	return cr.Choices[0].Message.Content, nil
}
