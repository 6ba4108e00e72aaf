package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/bbertka/openai-gpt-review-analyzer/internal/adapters/observability"
	"github.com/bbertka/openai-gpt-review-analyzer/internal/domain"
)

const systemPrompt = "You are a helpful assistant. You will provide only a one word response to the question."

// Classifier is the remote language-model sentiment strategy. It asks the
// completion endpoint for a single word out of the label enumeration and
// refuses anything else: an unparseable reply is an error, never a silent
// default, so it can never corrupt the weighted sum downstream.
type Classifier struct {
	client *openai.Client
	model  string
}

func New(apiKey, baseURL, model string) *Classifier {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	if model == "" {
		model = openai.ChatModelGPT3_5Turbo
	}
	return &Classifier{client: &client, model: model}
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.SentimentLabel, error) {
	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(
				"What is the sentiment of this review? Please give me a one word response of either Good, Bad, or Neutral.\n\nReview:\n%s", text)),
		},
	})
	if err != nil {
		observability.ObserveExternal("openai", "chat_completions", 0, time.Since(start))
		return "", fmt.Errorf("chat completion: %w", err)
	}
	observability.ObserveExternal("openai", "chat_completions", 200, time.Since(start))

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return normalize(resp.Choices[0].Message.Content)
}

// normalize folds a free-form model reply into the fixed label set.
func normalize(reply string) (domain.SentimentLabel, error) {
	s := strings.ToLower(strings.TrimSpace(reply))
	s = strings.TrimRight(s, ".!,")
	switch s {
	case "good":
		return domain.Good, nil
	case "bad":
		return domain.Bad, nil
	case "neutral":
		return domain.Neutral, nil
	default:
		return "", fmt.Errorf("reply %q is not one of Good, Bad, Neutral", strings.TrimSpace(reply))
	}
}
