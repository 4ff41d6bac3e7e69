package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

// Provider names accepted by Options.Provider.
const (
	ProviderArk       = "ark"
	ProviderAnthropic = "anthropic"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 5 * time.Second
	maxOutputTokens   = 3000
)

// Options configures a Client. Zero retry settings fall back to the
// defaults (3 attempts, 5s initial delay, doubled per attempt).
type Options struct {
	Provider       string
	ArkURL         string // full chat-completions endpoint
	ArkAPIKey      string
	ArkModel       string
	AnthropicKey   string
	AnthropicModel string
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client calls the configured text-generation provider with bounded
// retries. It always returns text; exhausted retries yield a failure
// string in the report locale, never an error.
type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: 300 * time.Second},
	}
}

func (c *Client) Commentary(ctx context.Context, prompt, dataSummary, analysisType string) string {
	system, user := buildPrompts(prompt, dataSummary, analysisType)

	delay := c.opts.RetryDelay
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		var text string
		var err error
		switch c.opts.Provider {
		case ProviderAnthropic:
			text, err = c.callAnthropic(ctx, system, user)
		default:
			text, err = c.callArk(ctx, system, user)
		}
		if err == nil {
			log.Debug().Str("provider", c.opts.Provider).Str("analysis_type", analysisType).
				Int("response_len", len(text)).Msg("narrative generated")
			return text
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_retries", c.opts.MaxRetries).
			Str("provider", c.opts.Provider).Msg("narrative call failed")

		if attempt < c.opts.MaxRetries {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Sprintf("API调用失败: %s", ctx.Err())
			}
			delay *= 2
		}
	}
	return fmt.Sprintf("API调用失败: 多次尝试后仍然失败 - %s", lastErr)
}

type arkRequest struct {
	Model       string       `json:"model"`
	Messages    []arkMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type arkMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type arkResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// callArk talks to an OpenAI-compatible chat-completions endpoint.
func (c *Client) callArk(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(arkRequest{
		Model: c.opts.ArkModel,
		Messages: []arkMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.3,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.ArkURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.ArkAPIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ark endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ark endpoint returned %d: %s", resp.StatusCode, truncate(string(raw), 256))
	}

	var parsed arkResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parsing ark response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ark api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in ark response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *Client) callAnthropic(ctx context.Context, system, user string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(c.opts.AnthropicKey))

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.opts.AnthropicModel),
		MaxTokens: maxOutputTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
