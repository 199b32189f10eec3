package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/metrics"
)

const (
	assistantSystemPrompt = "You are a helpful fashion assistant from the Zalando retail store."
	assistantClosingNote  = "Include this text at the end of the message: " +
		"I have listed some recommendations below for their consideration " +
		"based on the image and what they asked for."
)

// Assistant answers product questions grounded on a product image via a
// multimodal chat completion.
type Assistant struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewAssistant creates a multimodal chat assistant.
func NewAssistant(cfg *Config, chatModel string) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Assistant{
		client: openai.NewClientWithConfig(clientCfg),
		model:  chatModel,
		logger: cfg.Logger,
	}
}

// Answer sends the question together with the product image and returns the
// completion text.
func (a *Assistant) Answer(ctx context.Context, question, imageURL string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantSystemPrompt},
			{Role: openai.ChatMessageRoleAssistant, Content: assistantClosingNote},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: question},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", parseAPIError(err, domain.ErrAssistantProviderError)
	}
	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrAssistantProviderError)
	}

	metrics.AssistantRequestsTotal.WithLabelValues(a.model, "success").Inc()
	return resp.Choices[0].Message.Content, nil
}

// Describe asks the model for a retail-oriented description of an image.
// Used by the image embedding annotator to turn images into embeddable text.
func (a *Assistant) Describe(ctx context.Context, imageURL string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "Describe the clothing item in the image for a retail catalog: " +
					"type, colors, material, and style. One short paragraph.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", parseAPIError(err, domain.ErrAssistantProviderError)
	}
	if len(resp.Choices) == 0 {
		metrics.AssistantRequestsTotal.WithLabelValues(a.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrAssistantProviderError)
	}

	metrics.AssistantRequestsTotal.WithLabelValues(a.model, "success").Inc()
	return resp.Choices[0].Message.Content, nil
}
