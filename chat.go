package openai

import (
	"context"
	"iter"
)

// Chat creates model responses for conversations. Given a series of
// messages, the model returns one or more predicted completion messages.
type Chat struct {
	client *Client
}

// Chat returns the chat completions client.
func (c *Client) Chat() *Chat {
	return &Chat{client: c}
}

// Create creates a completion for the provided messages and parameters.
// When req.Stream is set, use CreateStream instead.
func (c *Chat) Create(ctx context.Context, req CreateChatCompletionRequest, opts ...RequestOption) (*ChatCompletion, error) {
	if req.Stream != nil && *req.Stream {
		return nil, invalidArgumentf("when stream is true, use Chat.CreateStream")
	}

	if err := c.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateChatCompletionRequest, ChatCompletion](ctx, c.client, "/chat/completions", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateStream creates a completion and streams back partial progress as
// server-sent events until the terminating [DONE] frame. The stream flag
// is forced on regardless of req.Stream.
func (c *Chat) CreateStream(ctx context.Context, req CreateChatCompletionRequest, opts ...RequestOption) (iter.Seq2[*ChatCompletionChunk, error], error) {
	if req.Stream != nil && !*req.Stream {
		return nil, invalidArgumentf("when stream is false, use Chat.Create")
	}

	if err := c.client.validateRequest(req); err != nil {
		return nil, err
	}

	return PostStream[CreateChatCompletionRequest, ChatCompletionChunk](ctx, c.client, "/chat/completions", req, opts...)
}
