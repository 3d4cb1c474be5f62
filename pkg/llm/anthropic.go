package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const classifyMaxBodyChars = 4000

// AnthropicClassifier is the model-backed Stage 1 relevance classifier.
type AnthropicClassifier struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClassifier(apiKey string) *AnthropicClassifier {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClassifier{
		client: &client,
		// anthropic.ModelClaudeHaiku4_5 ("claude-haiku-4-5") is not defined in
		// SDK v1.5.0; newer SDK versions that define it require Go >= 1.23.
		model: anthropic.Model("claude-haiku-4-5"),
	}
}

func (c *AnthropicClassifier) Classify(ctx context.Context, article model.RawArticle) (*model.Stage1Result, error) {
	body := article.Body
	if len(body) > classifyMaxBodyChars {
		body = body[:classifyMaxBodyChars]
	}
	userPrompt := fmt.Sprintf("Title: %s\nSource: %s (%s)\nURL: %s\nBody: %s",
		article.Title, article.Source, article.SourceTier, article.URL, body)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: stage1SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	content := cleanJSONResponse(resp.Content[0].Text)

	var result model.Stage1Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if result.SourceTier == "" {
		result.SourceTier = article.SourceTier
	}

	return &result, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
