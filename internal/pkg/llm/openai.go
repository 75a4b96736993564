package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider calls an OpenAI-compatible endpoint. Unlike Gemini it
// cannot enforce an arbitrary response schema, so the shape is described in
// the system prompt and the decoded payload is validated after the fact.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible endpoint.
// baseURL may point at any server speaking the chat completions protocol.
func NewOpenAIProvider(apiKey, model, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	system := req.System
	if req.Shape != nil {
		system = system + "\n\n" + describeShape(req.Shape)
	}

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: req.User},
			},
			Temperature: 0.3,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("openai returned no choices")}
	}

	text := stripCodeFences(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("openai returned empty response")}
	}

	raw := json.RawMessage(text)
	if err := validateShape(req.Shape, raw); err != nil {
		return nil, err
	}

	return raw, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func describeShape(shape *Shape) string {
	var b strings.Builder
	b.WriteString("Respond with ONLY a single JSON object, no markdown, no code blocks, with exactly these fields:\n")
	for _, f := range shape.Fields {
		typ := "string"
		switch f.Type {
		case FieldNumber:
			typ = "number"
		case FieldStringArray:
			typ = "array of strings"
		}
		fmt.Fprintf(&b, "- %q (%s): %s\n", f.Name, typ, f.Description)
	}
	return b.String()
}

func stripCodeFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
