package openai

import (
	"context"
	"iter"
)

// Completions is the legacy text completions surface. Given a prompt, the
// model returns one or more predicted completions. Most current models use
// the chat surface instead.
type Completions struct {
	client *Client
}

// Completions returns the legacy completions client.
func (c *Client) Completions() *Completions {
	return &Completions{client: c}
}

// CreateCompletionRequest is the request for Completions.Create.
type CreateCompletionRequest struct {
	Model  string `json:"model" validate:"required"`
	Prompt any    `json:"prompt" validate:"required"`

	BestOf           *int           `json:"best_of,omitempty"`
	Echo             *bool          `json:"echo,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]int `json:"logit_bias,omitempty"`
	Logprobs         *int           `json:"logprobs,omitempty"`
	MaxTokens        *int           `json:"max_tokens,omitempty"`
	N                *int           `json:"n,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	Stream           *bool          `json:"stream,omitempty"`
	StreamOptions    *StreamOptions `json:"stream_options,omitempty"`
	Suffix           string         `json:"suffix,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	User             string         `json:"user,omitempty"`
}

// Completion is the response for a text completion; streamed chunks share
// the same shape.
type Completion struct {
	ID                string             `json:"id"`
	Object            string             `json:"object"`
	Created           int64              `json:"created"`
	Model             string             `json:"model"`
	Choices           []CompletionChoice `json:"choices"`
	Usage             *Usage             `json:"usage,omitempty"`
	SystemFingerprint string             `json:"system_fingerprint,omitempty"`
}

// CompletionChoice is one generated completion alternative.
type CompletionChoice struct {
	Index        int                 `json:"index"`
	Text         string              `json:"text"`
	FinishReason string              `json:"finish_reason"`
	Logprobs     *CompletionLogprobs `json:"logprobs,omitempty"`
}

// CompletionLogprobs carries positional log probabilities in the legacy
// format.
type CompletionLogprobs struct {
	Tokens        []string             `json:"tokens,omitempty"`
	TokenLogprobs []float64            `json:"token_logprobs,omitempty"`
	TopLogprobs   []map[string]float64 `json:"top_logprobs,omitempty"`
	TextOffset    []int                `json:"text_offset,omitempty"`
}

// Create creates a completion for the provided prompt and parameters.
// When req.Stream is set, use CreateStream instead.
func (c *Completions) Create(ctx context.Context, req CreateCompletionRequest, opts ...RequestOption) (*Completion, error) {
	if req.Stream != nil && *req.Stream {
		return nil, invalidArgumentf("when stream is true, use Completions.CreateStream")
	}

	if err := c.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateCompletionRequest, Completion](ctx, c.client, "/completions", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateStream streams back partial completion progress, terminated by the
// [DONE] frame.
func (c *Completions) CreateStream(ctx context.Context, req CreateCompletionRequest, opts ...RequestOption) (iter.Seq2[*Completion, error], error) {
	if req.Stream != nil && !*req.Stream {
		return nil, invalidArgumentf("when stream is false, use Completions.Create")
	}

	if err := c.client.validateRequest(req); err != nil {
		return nil, err
	}

	return PostStream[CreateCompletionRequest, Completion](ctx, c.client, "/completions", req, opts...)
}
