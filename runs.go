package openai

import (
	"context"
	"encoding/json"
	"iter"
)

// Runs executes assistants against threads.
type Runs struct {
	client *Client
}

// Runs returns the run client.
func (c *Client) Runs() *Runs {
	return &Runs{client: c}
}

// TruncationStrategy controls how much thread history a run sees.
type TruncationStrategy struct {
	Type         string `json:"type"`
	LastMessages *int   `json:"last_messages,omitempty"`
}

// CreateRunRequest is the request for Runs.Create. Fields left unset fall
// back to the assistant's configuration.
type CreateRunRequest struct {
	AssistantID string `json:"assistant_id" validate:"required"`

	AdditionalInstructions string                 `json:"additional_instructions,omitempty"`
	AdditionalMessages     []CreateMessageRequest `json:"additional_messages,omitempty"`
	Instructions           string                 `json:"instructions,omitempty"`
	MaxCompletionTokens    *int                   `json:"max_completion_tokens,omitempty"`
	MaxPromptTokens        *int                   `json:"max_prompt_tokens,omitempty"`
	Metadata               Metadata               `json:"metadata,omitempty"`
	Model                  string                 `json:"model,omitempty"`
	ParallelToolCalls      *bool                  `json:"parallel_tool_calls,omitempty"`
	ReasoningEffort        string                 `json:"reasoning_effort,omitempty"`
	ResponseFormat         any                    `json:"response_format,omitempty"`
	Stream                 *bool                  `json:"stream,omitempty"`
	Temperature            *float64               `json:"temperature,omitempty"`
	ToolChoice             any                    `json:"tool_choice,omitempty"`
	Tools                  []AssistantTool        `json:"tools,omitempty"`
	TopP                   *float64               `json:"top_p,omitempty"`
	TruncationStrategy     *TruncationStrategy    `json:"truncation_strategy,omitempty"`
}

// CreateThreadAndRunRequest creates a thread and runs it in one call.
type CreateThreadAndRunRequest struct {
	AssistantID string `json:"assistant_id" validate:"required"`

	Instructions        string               `json:"instructions,omitempty"`
	MaxCompletionTokens *int                 `json:"max_completion_tokens,omitempty"`
	MaxPromptTokens     *int                 `json:"max_prompt_tokens,omitempty"`
	Metadata            Metadata             `json:"metadata,omitempty"`
	Model               string               `json:"model,omitempty"`
	ParallelToolCalls   *bool                `json:"parallel_tool_calls,omitempty"`
	ResponseFormat      any                  `json:"response_format,omitempty"`
	Stream              *bool                `json:"stream,omitempty"`
	Temperature         *float64             `json:"temperature,omitempty"`
	Thread              *CreateThreadRequest `json:"thread,omitempty"`
	ToolChoice          any                  `json:"tool_choice,omitempty"`
	ToolResources       *ToolResources       `json:"tool_resources,omitempty"`
	Tools               []AssistantTool      `json:"tools,omitempty"`
	TopP                *float64             `json:"top_p,omitempty"`
	TruncationStrategy  *TruncationStrategy  `json:"truncation_strategy,omitempty"`
}

// ModifyRunRequest is the request for Runs.Modify.
type ModifyRunRequest struct {
	Metadata Metadata `json:"metadata,omitempty"`
}

// RequiredAction describes tool outputs a run is waiting for.
type RequiredAction struct {
	Type              string `json:"type"`
	SubmitToolOutputs *struct {
		ToolCalls []ToolCall `json:"tool_calls"`
	} `json:"submit_tool_outputs,omitempty"`
}

// Run is an assistant execution against a thread.
type Run struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	CreatedAt    int64  `json:"created_at"`
	ThreadID     string `json:"thread_id"`
	AssistantID  string `json:"assistant_id"`
	Status       string `json:"status"`
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	LastError    *APIError       `json:"last_error,omitempty"`
	ExpiresAt    int64           `json:"expires_at,omitempty"`
	StartedAt    int64           `json:"started_at,omitempty"`
	CancelledAt  int64           `json:"cancelled_at,omitempty"`
	FailedAt     int64           `json:"failed_at,omitempty"`
	CompletedAt  int64           `json:"completed_at,omitempty"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details,omitempty"`
	Model               string              `json:"model"`
	Instructions        string              `json:"instructions,omitempty"`
	Tools               []AssistantTool     `json:"tools,omitempty"`
	Metadata            Metadata            `json:"metadata,omitempty"`
	Usage               *Usage              `json:"usage,omitempty"`
	Temperature         *float64            `json:"temperature,omitempty"`
	TopP                *float64            `json:"top_p,omitempty"`
	MaxPromptTokens     *int                `json:"max_prompt_tokens,omitempty"`
	MaxCompletionTokens *int                `json:"max_completion_tokens,omitempty"`
	TruncationStrategy  *TruncationStrategy `json:"truncation_strategy,omitempty"`
	ToolChoice          json.RawMessage     `json:"tool_choice,omitempty"`
	ParallelToolCalls   bool                `json:"parallel_tool_calls,omitempty"`
	ResponseFormat      json.RawMessage     `json:"response_format,omitempty"`
}

// RunStep is one step taken during a run.
type RunStep struct {
	ID          string    `json:"id"`
	Object      string    `json:"object"`
	CreatedAt   int64     `json:"created_at"`
	RunID       string    `json:"run_id"`
	AssistantID string    `json:"assistant_id"`
	ThreadID    string    `json:"thread_id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	StepDetails json.RawMessage `json:"step_details"`
	LastError   *APIError `json:"last_error,omitempty"`
	ExpiredAt   int64     `json:"expired_at,omitempty"`
	CancelledAt int64     `json:"cancelled_at,omitempty"`
	FailedAt    int64     `json:"failed_at,omitempty"`
	CompletedAt int64     `json:"completed_at,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	Usage       *Usage    `json:"usage,omitempty"`
}

// ToolOutput is one function result handed back to a waiting run.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id,omitempty"`
	Output     string `json:"output,omitempty"`
}

// SubmitToolOutputsRequest is the request for Runs.SubmitToolOutputs.
type SubmitToolOutputsRequest struct {
	ToolOutputs []ToolOutput `json:"tool_outputs" validate:"required,min=1"`
	Stream      *bool        `json:"stream,omitempty"`
}

// Create starts a run of an assistant on a thread. When req.Stream is set,
// use CreateStream instead.
func (r *Runs) Create(ctx context.Context, threadID string, req CreateRunRequest, opts ...RequestOption) (*Run, error) {
	if req.Stream != nil && *req.Stream {
		return nil, invalidArgumentf("when stream is true, use Runs.CreateStream")
	}

	if err := r.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[CreateRunRequest, Run](ctx, r.client, "/threads/"+threadID+"/runs", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateStream starts a run and streams its lifecycle events. Payloads vary
// per event name (thread.run.*, thread.message.*, thread.run.step.*), so
// events are yielded raw together with their name.
func (r *Runs) CreateStream(ctx context.Context, threadID string, req CreateRunRequest, opts ...RequestOption) (iter.Seq2[*StreamEvent, error], error) {
	if req.Stream != nil && !*req.Stream {
		return nil, invalidArgumentf("when stream is false, use Runs.Create")
	}

	if err := r.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	return PostStreamRaw[CreateRunRequest](ctx, r.client, "/threads/"+threadID+"/runs", req, opts...)
}

// CreateThreadAndRun creates a thread and immediately runs it.
func (r *Runs) CreateThreadAndRun(ctx context.Context, req CreateThreadAndRunRequest, opts ...RequestOption) (*Run, error) {
	if req.Stream != nil && *req.Stream {
		return nil, invalidArgumentf("when stream is true, use Runs.CreateThreadAndRunStream")
	}

	if err := r.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[CreateThreadAndRunRequest, Run](ctx, r.client, "/threads/runs", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateThreadAndRunStream is the streaming variant of CreateThreadAndRun.
func (r *Runs) CreateThreadAndRunStream(ctx context.Context, req CreateThreadAndRunRequest, opts ...RequestOption) (iter.Seq2[*StreamEvent, error], error) {
	if req.Stream != nil && !*req.Stream {
		return nil, invalidArgumentf("when stream is false, use Runs.CreateThreadAndRun")
	}

	if err := r.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	return PostStreamRaw[CreateThreadAndRunRequest](ctx, r.client, "/threads/runs", req, opts...)
}

// List returns the runs of a thread.
func (r *Runs) List(ctx context.Context, threadID string, query ListQuery, opts ...RequestOption) (*List[Run], error) {
	opts = append([]RequestOption{withAssistantsBeta(), query.requestOption()}, opts...)

	resp, err := Get[List[Run]](ctx, r.client, "/threads/"+threadID+"/runs", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a run by ID.
func (r *Runs) Retrieve(ctx context.Context, threadID, runID string, opts ...RequestOption) (*Run, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Get[Run](ctx, r.client, "/threads/"+threadID+"/runs/"+runID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify updates a run's metadata.
func (r *Runs) Modify(ctx context.Context, threadID, runID string, req ModifyRunRequest, opts ...RequestOption) (*Run, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[ModifyRunRequest, Run](ctx, r.client, "/threads/"+threadID+"/runs/"+runID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel cancels a run that is in progress.
func (r *Runs) Cancel(ctx context.Context, threadID, runID string, opts ...RequestOption) (*Run, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[struct{}, Run](ctx, r.client, "/threads/"+threadID+"/runs/"+runID+"/cancel", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitToolOutputs hands function results back to a run waiting in
// requires_action. When req.Stream is set, use SubmitToolOutputsStream.
func (r *Runs) SubmitToolOutputs(ctx context.Context, threadID, runID string, req SubmitToolOutputsRequest, opts ...RequestOption) (*Run, error) {
	if req.Stream != nil && *req.Stream {
		return nil, invalidArgumentf("when stream is true, use Runs.SubmitToolOutputsStream")
	}

	if err := r.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Post[SubmitToolOutputsRequest, Run](ctx, r.client, "/threads/"+threadID+"/runs/"+runID+"/submit_tool_outputs", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitToolOutputsStream is the streaming variant of SubmitToolOutputs.
func (r *Runs) SubmitToolOutputsStream(ctx context.Context, threadID, runID string, req SubmitToolOutputsRequest, opts ...RequestOption) (iter.Seq2[*StreamEvent, error], error) {
	if req.Stream != nil && !*req.Stream {
		return nil, invalidArgumentf("when stream is false, use Runs.SubmitToolOutputs")
	}

	if err := r.client.validateRequest(req); err != nil {
		return nil, err
	}

	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	return PostStreamRaw[SubmitToolOutputsRequest](ctx, r.client, "/threads/"+threadID+"/runs/"+runID+"/submit_tool_outputs", req, opts...)
}

// ListSteps returns the steps of a run.
func (r *Runs) ListSteps(ctx context.Context, threadID, runID string, query ListQuery, opts ...RequestOption) (*List[RunStep], error) {
	opts = append([]RequestOption{withAssistantsBeta(), query.requestOption()}, opts...)

	resp, err := Get[List[RunStep]](ctx, r.client, "/threads/"+threadID+"/runs/"+runID+"/steps", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveStep returns one run step.
func (r *Runs) RetrieveStep(ctx context.Context, threadID, runID, stepID string, opts ...RequestOption) (*RunStep, error) {
	opts = append([]RequestOption{withAssistantsBeta()}, opts...)

	resp, err := Get[RunStep](ctx, r.client, "/threads/"+threadID+"/runs/"+runID+"/steps/"+stepID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
