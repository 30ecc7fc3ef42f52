package vision

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/model"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicProvider extracts fields through the Anthropic Messages API.
type AnthropicProvider struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider creates a provider backed by the official SDK.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, eris.New("vision: anthropic provider requires api_key")
	}
	m := cfg.Model
	if m == "" {
		m = defaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicProvider{
		client:    sdk.NewClient(opts...),
		model:     m,
		maxTokens: maxTokens,
	}, nil
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// ExtractFields sends the image plus extraction prompt and parses the JSON
// reply.
func (p *AnthropicProvider) ExtractFields(ctx context.Context, req Request) (model.FieldSet, error) {
	data, mediaType, err := encodeImage(req.ImagePath)
	if err != nil {
		return nil, err
	}

	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(
				sdk.NewImageBlockBase64(mediaType, data),
				sdk.NewTextBlock(promptFor(req.DocumentType)),
			),
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "vision: anthropic message")
	}

	var reply string
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply += block.Text
		}
	}

	zap.L().Debug("anthropic extraction reply",
		zap.String("model", string(msg.Model)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return parseFields(reply)
}
