package openai

import "context"

// Batches runs large asynchronous groups of API requests at reduced cost.
type Batches struct {
	client *Client
}

// Batches returns the batch processing client.
func (c *Client) Batches() *Batches {
	return &Batches{client: c}
}

// CreateBatchRequest is the request for Batches.Create.
type CreateBatchRequest struct {
	InputFileID      string `json:"input_file_id" validate:"required"`
	Endpoint         string `json:"endpoint" validate:"required"`
	CompletionWindow string `json:"completion_window" validate:"required"`

	Metadata Metadata `json:"metadata,omitempty"`
}

// Batch is a batch job and its lifecycle state.
type Batch struct {
	ID               string       `json:"id"`
	Object           string       `json:"object"`
	Endpoint         string       `json:"endpoint"`
	Errors           *BatchErrors `json:"errors,omitempty"`
	InputFileID      string       `json:"input_file_id"`
	CompletionWindow string       `json:"completion_window"`
	Status           string       `json:"status"`
	OutputFileID     string       `json:"output_file_id,omitempty"`
	ErrorFileID      string       `json:"error_file_id,omitempty"`
	CreatedAt        int64        `json:"created_at"`
	InProgressAt     int64        `json:"in_progress_at,omitempty"`
	ExpiresAt        int64        `json:"expires_at,omitempty"`
	FinalizingAt     int64        `json:"finalizing_at,omitempty"`
	CompletedAt      int64        `json:"completed_at,omitempty"`
	FailedAt         int64        `json:"failed_at,omitempty"`
	ExpiredAt        int64        `json:"expired_at,omitempty"`
	CancellingAt     int64        `json:"cancelling_at,omitempty"`
	CancelledAt      int64        `json:"cancelled_at,omitempty"`
	RequestCounts    *struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Failed    int `json:"failed"`
	} `json:"request_counts,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// BatchErrors lists per-line validation failures of a batch input file.
type BatchErrors struct {
	Object string `json:"object"`
	Data   []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Param   string `json:"param,omitempty"`
		Line    *int   `json:"line,omitempty"`
	} `json:"data"`
}

// Create starts a batch from an uploaded JSONL input file.
func (b *Batches) Create(ctx context.Context, req CreateBatchRequest, opts ...RequestOption) (*Batch, error) {
	if err := b.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateBatchRequest, Batch](ctx, b.client, "/batches", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's batches.
func (b *Batches) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[Batch], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[Batch]](ctx, b.client, "/batches", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a batch by ID.
func (b *Batches) Retrieve(ctx context.Context, batchID string, opts ...RequestOption) (*Batch, error) {
	resp, err := Get[Batch](ctx, b.client, "/batches/"+batchID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel cancels an in-progress batch. The batch moves to cancelling and
// partial results appear in the output file once cancelled.
func (b *Batches) Cancel(ctx context.Context, batchID string, opts ...RequestOption) (*Batch, error) {
	resp, err := Post[struct{}, Batch](ctx, b.client, "/batches/"+batchID+"/cancel", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
