// Package llm runs schema-constrained chat completions against an
// OpenAI-compatible endpoint such as Gemini's.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 1000
)

// ErrMalformedReply means the API answered but the reply could not be
// decoded into the requested shape.
var ErrMalformedReply = errors.New("malformed model reply")

type Client interface {
	Chat(ctx context.Context, req Request, result any) (*Response, error)
	Model() string
}

type Request struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       any
	MaxTokens    int
	// Temperature is left to the model when nil.
	Temperature *float64
}

type Response struct {
	PromptTokens     int
	CompletionTokens int
}

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type client struct {
	api   openai.Client
	model string
}

// New fails without an API key. Retries are disabled so callers see the
// first upstream status.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &client{api: openai.NewClient(opts...), model: model}, nil
}

func (c *client) Model() string {
	return c.model
}

func (c *client) Chat(ctx context.Context, req Request, result any) (*Response, error) {
	start := time.Now()
	completion, err := c.api.Chat.Completions.New(ctx, c.params(req))
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	usage := &Response{
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
	}
	slog.DebugContext(ctx, "llm chat completed",
		"model", c.model,
		"schema", req.SchemaName,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens)

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedReply)
	}
	choice := completion.Choices[0]
	if err := json.Unmarshal([]byte(choice.Message.Content), result); err != nil {
		if choice.FinishReason == "length" {
			return nil, fmt.Errorf("%w: reply cut off at %d tokens", ErrMalformedReply, usage.CompletionTokens)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	return usage, nil
}

func (c *client) params(req Request) openai.ChatCompletionNewParams {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	p := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	}
	if req.Temperature != nil {
		p.Temperature = openai.Float(*req.Temperature)
	}
	return p
}

// GenerateSchema reflects T into an inline JSON schema with no extra
// properties allowed, the form strict structured output requires.
func GenerateSchema[T any]() any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

func Temp(t float64) *float64 {
	return &t
}

// APIStatus reports the HTTP status and message of an API error. ok is false
// when the request never got an answer.
func APIStatus(err error) (status int, message string, ok bool) {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return 0, "", false
	}
	return apiErr.StatusCode, apiErr.Message, true
}
