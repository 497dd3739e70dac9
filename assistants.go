package openai

import (
	"context"
	"encoding/json"
)

// Assistants manages assistant configurations for the Assistants API.
// All calls opt into the assistants=v2 beta surface automatically.
type Assistants struct {
	client *Client
}

// Assistants returns the assistant client.
func (c *Client) Assistants() *Assistants {
	return &Assistants{client: c}
}

// AssistantTool enables one tool for an assistant: code_interpreter,
// file_search or function.
type AssistantTool struct {
	Type string `json:"type"`

	FileSearch *struct {
		MaxNumResults  *int            `json:"max_num_results,omitempty"`
		RankingOptions json.RawMessage `json:"ranking_options,omitempty"`
	} `json:"file_search,omitempty"`
	Function *FunctionDefinition `json:"function,omitempty"`
}

// ToolResources binds files and vector stores to an assistant's or
// thread's tools.
type ToolResources struct {
	CodeInterpreter *struct {
		FileIDs []string `json:"file_ids,omitempty"`
	} `json:"code_interpreter,omitempty"`
	FileSearch *struct {
		VectorStoreIDs []string        `json:"vector_store_ids,omitempty"`
		VectorStores   json.RawMessage `json:"vector_stores,omitempty"`
	} `json:"file_search,omitempty"`
}

// CreateAssistantRequest is the request for Assistants.Create.
type CreateAssistantRequest struct {
	Model string `json:"model" validate:"required"`

	Description    string           `json:"description,omitempty"`
	Instructions   string           `json:"instructions,omitempty"`
	Metadata       Metadata         `json:"metadata,omitempty"`
	Name           string           `json:"name,omitempty"`
	ReasoningEffort string          `json:"reasoning_effort,omitempty"`
	ResponseFormat any              `json:"response_format,omitempty"`
	Temperature    *float64         `json:"temperature,omitempty"`
	ToolResources  *ToolResources   `json:"tool_resources,omitempty"`
	Tools          []AssistantTool  `json:"tools,omitempty"`
	TopP           *float64         `json:"top_p,omitempty"`
}

// ModifyAssistantRequest is the request for Assistants.Modify. It has the
// same shape as create but every field is optional.
type ModifyAssistantRequest struct {
	Description    string           `json:"description,omitempty"`
	Instructions   string           `json:"instructions,omitempty"`
	Metadata       Metadata         `json:"metadata,omitempty"`
	Model          string           `json:"model,omitempty"`
	Name           string           `json:"name,omitempty"`
	ReasoningEffort string          `json:"reasoning_effort,omitempty"`
	ResponseFormat any              `json:"response_format,omitempty"`
	Temperature    *float64         `json:"temperature,omitempty"`
	ToolResources  *ToolResources   `json:"tool_resources,omitempty"`
	Tools          []AssistantTool  `json:"tools,omitempty"`
	TopP           *float64         `json:"top_p,omitempty"`
}

// Assistant is a configured assistant.
type Assistant struct {
	ID            string          `json:"id"`
	Object        string          `json:"object"`
	CreatedAt     int64           `json:"created_at"`
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	Model         string          `json:"model"`
	Instructions  string          `json:"instructions,omitempty"`
	Tools         []AssistantTool `json:"tools"`
	ToolResources *ToolResources  `json:"tool_resources,omitempty"`
	Metadata      Metadata        `json:"metadata,omitempty"`
	Temperature   *float64        `json:"temperature,omitempty"`
	TopP          *float64        `json:"top_p,omitempty"`
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
}

// Create creates an assistant.
func (a *Assistants) Create(ctx context.Context, req CreateAssistantRequest, opts ...RequestOption) (*Assistant, error) {
	if err := a.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[CreateAssistantRequest, Assistant](ctx, a.client, "/assistants", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's assistants.
func (a *Assistants) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[Assistant], error) {
	opts = append([]RequestOption{withAssistantsBeta(), query.requestOption()}, opts...)

	resp, err := Get[List[Assistant]](ctx, a.client, "/assistants", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns an assistant by ID.
func (a *Assistants) Retrieve(ctx context.Context, assistantID string, opts ...RequestOption) (*Assistant, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Get[Assistant](ctx, a.client, "/assistants/"+assistantID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify updates an assistant.
func (a *Assistants) Modify(ctx context.Context, assistantID string, req ModifyAssistantRequest, opts ...RequestOption) (*Assistant, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[ModifyAssistantRequest, Assistant](ctx, a.client, "/assistants/"+assistantID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes an assistant.
func (a *Assistants) Delete(ctx context.Context, assistantID string, opts ...RequestOption) (*DeletionStatus, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Delete[DeletionStatus](ctx, a.client, "/assistants/"+assistantID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
