package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemMessage = "You are BigMind, a content planning assistant for a branded storefront. " +
	"When proposing a page, include fenced page-metadata, visual-config and image-prompts blocks " +
	"using KEY: value lines, and put any page markup in a fenced html block."

// FetchResponse sends one prompt to the model and returns the raw
// assistant text for downstream extraction. The response is not parsed or
// validated here; the pipeline tolerates any shape.
func FetchResponse(ctx context.Context, c Client, model, prompt string) (string, error) {
	if c == nil || strings.TrimSpace(model) == "" {
		return "", errors.New("llm not configured")
	}
	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
