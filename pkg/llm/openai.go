package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/GScottKnight/ParcelNewsFetchV2/internal/model"
	"github.com/GScottKnight/ParcelNewsFetchV2/internal/signature"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIExtractor is the model-backed Stage 2 structured extractor.
type OpenAIExtractor struct {
	client       *openai.Client
	model        openai.ChatModel
	maxBodyChars int
}

func NewOpenAIExtractor(apiKey string, maxBodyChars int) *OpenAIExtractor {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIExtractor{
		client:       &client,
		model:        openai.ChatModelGPT4oMini,
		maxBodyChars: maxBodyChars,
	}
}

func (c *OpenAIExtractor) Extract(ctx context.Context, article model.RawArticle) (*model.Stage2Extraction, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(stage2SystemPrompt),
			openai.UserMessage(buildExtractionInput(article, c.maxBodyChars)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var extraction model.Stage2Extraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if extraction.NormalizedEventSignature == "" {
		extraction.NormalizedEventSignature = signature.Build(extraction.EventSignatureFields)
	}

	return &extraction, nil
}

func buildExtractionInput(article model.RawArticle, maxBodyChars int) string {
	body := article.Body
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	lines := []string{
		fmt.Sprintf("Title: %s", article.Title),
		fmt.Sprintf("Source: %s", article.Source),
		fmt.Sprintf("Published: %s", article.PublishedAt.Format(time.RFC3339)),
		fmt.Sprintf("URL: %s", article.URL),
		fmt.Sprintf("Tickers: %s", strings.Join(article.Tickers, ", ")),
		fmt.Sprintf("Channels: %s", strings.Join(article.Channels, ", ")),
		fmt.Sprintf("Body: %s", body),
	}
	return strings.Join(lines, "\n")
}
