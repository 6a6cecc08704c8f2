// Package llm provides the direct-API reviewer invoker used by the CLI.
// Unlike the MCP path, where the connected client picks the reviewer model,
// this invoker reviews with one configured model and refuses outright when
// that model's family overlaps the generation model.
package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/crossvet/crossvet/internal/family"
	"github.com/crossvet/crossvet/internal/models"
	"github.com/crossvet/crossvet/internal/review"
)

const maxReviewTokens = 4096

// Client wraps the Anthropic API as a review.Invoker.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an invoker with the given API key and reviewer model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// Invoke sends the invocation to the configured reviewer model. It honors
// the exclusion preference by failing when its own model overlaps the
// generation model's family; the orchestrator then produces the manual
// fallback instead.
func (c *Client) Invoke(ctx context.Context, inv *models.Invocation) (*review.Response, error) {
	if family.Overlap(string(c.model), inv.Preferences.ExcludeModel) {
		return nil, fmt.Errorf(
			"configured reviewer model %s shares a family with generation model %s; pick a reviewer from another vendor",
			c.model, inv.GenerationModel)
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxReviewTokens,
		System: []anthropic.TextBlockParam{
			{Text: inv.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(inv.UserMessage)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &review.Response{Model: string(msg.Model), Content: text}, nil
}
