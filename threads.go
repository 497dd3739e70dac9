package openai

import "context"

// Threads manages conversation threads for the Assistants API.
type Threads struct {
	client *Client
}

// Threads returns the thread client.
func (c *Client) Threads() *Threads {
	return &Threads{client: c}
}

// CreateThreadRequest is the request for Threads.Create.
type CreateThreadRequest struct {
	Messages      []CreateMessageRequest `json:"messages,omitempty"`
	Metadata      Metadata               `json:"metadata,omitempty"`
	ToolResources *ToolResources         `json:"tool_resources,omitempty"`
}

// ModifyThreadRequest is the request for Threads.Modify.
type ModifyThreadRequest struct {
	Metadata      Metadata       `json:"metadata,omitempty"`
	ToolResources *ToolResources `json:"tool_resources,omitempty"`
}

// Thread is a conversation thread.
type Thread struct {
	ID            string         `json:"id"`
	Object        string         `json:"object"`
	CreatedAt     int64          `json:"created_at"`
	Metadata      Metadata       `json:"metadata,omitempty"`
	ToolResources *ToolResources `json:"tool_resources,omitempty"`
}

// Create creates a thread, optionally seeded with messages.
func (t *Threads) Create(ctx context.Context, req CreateThreadRequest, opts ...RequestOption) (*Thread, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[CreateThreadRequest, Thread](ctx, t.client, "/threads", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a thread by ID.
func (t *Threads) Retrieve(ctx context.Context, threadID string, opts ...RequestOption) (*Thread, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Get[Thread](ctx, t.client, "/threads/"+threadID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify updates a thread's metadata or tool resources.
func (t *Threads) Modify(ctx context.Context, threadID string, req ModifyThreadRequest, opts ...RequestOption) (*Thread, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[ModifyThreadRequest, Thread](ctx, t.client, "/threads/"+threadID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a thread.
func (t *Threads) Delete(ctx context.Context, threadID string, opts ...RequestOption) (*DeletionStatus, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Delete[DeletionStatus](ctx, t.client, "/threads/"+threadID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
