package vision

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sashabaranov/go-openai"

	"github.com/tryalma/doccheck/internal/model"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider extracts fields through the OpenAI Chat Completions API,
// or any OpenAI-compatible endpoint via BaseURL.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, eris.New("vision: openai provider requires api_key or base_url")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	m := cfg.Model
	if m == "" {
		m = defaultOpenAIModel
	}
	maxTokens := int(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     m,
		maxTokens: maxTokens,
	}, nil
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// ExtractFields sends the image as a data URL plus the extraction prompt.
func (p *OpenAIProvider) ExtractFields(ctx context.Context, req Request) (model.FieldSet, error) {
	data, mediaType, err := encodeImage(req.ImagePath)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL(data, mediaType),
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: promptFor(req.DocumentType),
					},
				},
			},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "vision: openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("vision: openai returned no choices")
	}

	return parseFields(resp.Choices[0].Message.Content)
}
