package openai

import (
	"context"
	"encoding/json"
)

// Messages manages the messages inside a thread.
type Messages struct {
	client *Client
}

// Messages returns the thread message client.
func (c *Client) Messages() *Messages {
	return &Messages{client: c}
}

// MessageAttachment attaches a file to a message and names the tools that
// may read it.
type MessageAttachment struct {
	FileID string `json:"file_id,omitempty"`
	Tools  []struct {
		Type string `json:"type"`
	} `json:"tools,omitempty"`
}

// CreateMessageRequest is the request for Messages.Create. Content is a
// string or a list of content parts.
type CreateMessageRequest struct {
	Role    string `json:"role" validate:"required"`
	Content any  `json:"content" validate:"required"`

	Attachments []MessageAttachment `json:"attachments,omitempty"`
	Metadata    Metadata            `json:"metadata,omitempty"`
}

// ModifyMessageRequest is the request for Messages.Modify.
type ModifyMessageRequest struct {
	Metadata Metadata `json:"metadata,omitempty"`
}

// ThreadMessage is one message in a thread.
type ThreadMessage struct {
	ID          string               `json:"id"`
	Object      string               `json:"object"`
	CreatedAt   int64                `json:"created_at"`
	ThreadID    string               `json:"thread_id"`
	Status      string               `json:"status,omitempty"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details,omitempty"`
	CompletedAt  int64                  `json:"completed_at,omitempty"`
	IncompleteAt int64                  `json:"incomplete_at,omitempty"`
	Role         string                 `json:"role"`
	Content      []MessageContentPart   `json:"content"`
	AssistantID  string                 `json:"assistant_id,omitempty"`
	RunID        string                 `json:"run_id,omitempty"`
	Attachments  []MessageAttachment    `json:"attachments,omitempty"`
	Metadata     Metadata               `json:"metadata,omitempty"`
}

// MessageContentPart is one piece of thread message content.
type MessageContentPart struct {
	Type string `json:"type"`

	Text *struct {
		Value       string          `json:"value"`
		Annotations json.RawMessage `json:"annotations,omitempty"`
	} `json:"text,omitempty"`
	ImageFile *struct {
		FileID string `json:"file_id"`
		Detail string `json:"detail,omitempty"`
	} `json:"image_file,omitempty"`
	ImageURL *ImageURLPart `json:"image_url,omitempty"`
	Refusal  string        `json:"refusal,omitempty"`
}

// Create adds a message to a thread.
func (m *Messages) Create(ctx context.Context, threadID string, req CreateMessageRequest, opts ...RequestOption) (*ThreadMessage, error) {
	if err := m.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[CreateMessageRequest, ThreadMessage](ctx, m.client, "/threads/"+threadID+"/messages", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the messages of a thread.
func (m *Messages) List(ctx context.Context, threadID string, query ListQuery, opts ...RequestOption) (*List[ThreadMessage], error) {
	opts = append([]RequestOption{withAssistantsBeta(), query.requestOption()}, opts...)

	resp, err := Get[List[ThreadMessage]](ctx, m.client, "/threads/"+threadID+"/messages", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a message by ID.
func (m *Messages) Retrieve(ctx context.Context, threadID, messageID string, opts ...RequestOption) (*ThreadMessage, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Get[ThreadMessage](ctx, m.client, "/threads/"+threadID+"/messages/"+messageID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify updates a message's metadata.
func (m *Messages) Modify(ctx context.Context, threadID, messageID string, req ModifyMessageRequest, opts ...RequestOption) (*ThreadMessage, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[ModifyMessageRequest, ThreadMessage](ctx, m.client, "/threads/"+threadID+"/messages/"+messageID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a message from a thread.
func (m *Messages) Delete(ctx context.Context, threadID, messageID string, opts ...RequestOption) (*DeletionStatus, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Delete[DeletionStatus](ctx, m.client, "/threads/"+threadID+"/messages/"+messageID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
