package openai

import (
	"context"
	"encoding/json"
)

// FineTuning manages fine-tuning jobs.
type FineTuning struct {
	client *Client
}

// FineTuning returns the fine-tuning client.
func (c *Client) FineTuning() *FineTuning {
	return &FineTuning{client: c}
}

// Hyperparameters configures training. Each field accepts a number or the
// string "auto", hence json.RawMessage.
type Hyperparameters struct {
	BatchSize              json.RawMessage `json:"batch_size,omitempty"`
	LearningRateMultiplier json.RawMessage `json:"learning_rate_multiplier,omitempty"`
	NEpochs                json.RawMessage `json:"n_epochs,omitempty"`
	Beta                   json.RawMessage `json:"beta,omitempty"`
}

// FineTuneMethod selects and configures the training method.
type FineTuneMethod struct {
	Type       string `json:"type"`
	Supervised *struct {
		Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	} `json:"supervised,omitempty"`
	DPO *struct {
		Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	} `json:"dpo,omitempty"`
	Reinforcement json.RawMessage `json:"reinforcement,omitempty"`
}

// FineTuningIntegration attaches a third-party integration to a job.
type FineTuningIntegration struct {
	Type  string `json:"type"`
	Wandb *struct {
		Project string   `json:"project"`
		Name    string   `json:"name,omitempty"`
		Entity  string   `json:"entity,omitempty"`
		Tags    []string `json:"tags,omitempty"`
	} `json:"wandb,omitempty"`
}

// CreateFineTuningJobRequest is the request for FineTuning.Create.
type CreateFineTuningJobRequest struct {
	Model        string `json:"model" validate:"required"`
	TrainingFile string `json:"training_file" validate:"required"`

	Hyperparameters *Hyperparameters        `json:"hyperparameters,omitempty"`
	Integrations    []FineTuningIntegration `json:"integrations,omitempty"`
	Metadata        Metadata                `json:"metadata,omitempty"`
	Method          *FineTuneMethod         `json:"method,omitempty"`
	Seed            *int                    `json:"seed,omitempty"`
	Suffix          string                  `json:"suffix,omitempty"`
	ValidationFile  string                  `json:"validation_file,omitempty"`
}

// FineTuningJob is a fine-tuning job and its lifecycle state.
type FineTuningJob struct {
	ID              string                  `json:"id"`
	Object          string                  `json:"object"`
	CreatedAt       int64                   `json:"created_at"`
	Error           *APIError               `json:"error,omitempty"`
	FineTunedModel  string                  `json:"fine_tuned_model,omitempty"`
	FinishedAt      int64                   `json:"finished_at,omitempty"`
	Hyperparameters *Hyperparameters        `json:"hyperparameters,omitempty"`
	Model           string                  `json:"model"`
	OrganizationID  string                  `json:"organization_id"`
	ResultFiles     []string                `json:"result_files"`
	Status          string                  `json:"status"`
	TrainedTokens   int64                   `json:"trained_tokens,omitempty"`
	TrainingFile    string                  `json:"training_file"`
	ValidationFile  string                  `json:"validation_file,omitempty"`
	Integrations    []FineTuningIntegration `json:"integrations,omitempty"`
	Seed            int                     `json:"seed,omitempty"`
	EstimatedFinish int64                   `json:"estimated_finish,omitempty"`
	Metadata        Metadata                `json:"metadata,omitempty"`
	Method          *FineTuneMethod         `json:"method,omitempty"`
}

// FineTuningJobEvent is one status update emitted during training.
type FineTuningJobEvent struct {
	ID        string          `json:"id"`
	Object    string          `json:"object"`
	CreatedAt int64           `json:"created_at"`
	Level     string          `json:"level"`
	Message   string          `json:"message"`
	Type      string          `json:"type,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// FineTuningCheckpoint is a model snapshot taken during training.
type FineTuningCheckpoint struct {
	ID                       string `json:"id"`
	Object                   string `json:"object"`
	CreatedAt                int64  `json:"created_at"`
	FineTunedModelCheckpoint string `json:"fine_tuned_model_checkpoint"`
	FineTuningJobID          string `json:"fine_tuning_job_id"`
	StepNumber               int    `json:"step_number"`
	Metrics                  struct {
		Step                   float64 `json:"step,omitempty"`
		TrainLoss              float64 `json:"train_loss,omitempty"`
		TrainMeanTokenAccuracy float64 `json:"train_mean_token_accuracy,omitempty"`
		ValidLoss              float64 `json:"valid_loss,omitempty"`
		ValidMeanTokenAccuracy float64 `json:"valid_mean_token_accuracy,omitempty"`
		FullValidLoss          float64 `json:"full_valid_loss,omitempty"`
		FullValidMeanTokenAccuracy float64 `json:"full_valid_mean_token_accuracy,omitempty"`
	} `json:"metrics"`
}

// Create starts a fine-tuning job.
func (f *FineTuning) Create(ctx context.Context, req CreateFineTuningJobRequest, opts ...RequestOption) (*FineTuningJob, error) {
	if err := f.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateFineTuningJobRequest, FineTuningJob](ctx, f.client, "/fine_tuning/jobs", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's fine-tuning jobs.
func (f *FineTuning) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[FineTuningJob], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[FineTuningJob]](ctx, f.client, "/fine_tuning/jobs", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a fine-tuning job by ID.
func (f *FineTuning) Retrieve(ctx context.Context, jobID string, opts ...RequestOption) (*FineTuningJob, error) {
	resp, err := Get[FineTuningJob](ctx, f.client, "/fine_tuning/jobs/"+jobID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel immediately cancels a running fine-tuning job.
func (f *FineTuning) Cancel(ctx context.Context, jobID string, opts ...RequestOption) (*FineTuningJob, error) {
	resp, err := Post[struct{}, FineTuningJob](ctx, f.client, "/fine_tuning/jobs/"+jobID+"/cancel", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pause pauses a running fine-tuning job.
func (f *FineTuning) Pause(ctx context.Context, jobID string, opts ...RequestOption) (*FineTuningJob, error) {
	resp, err := Post[struct{}, FineTuningJob](ctx, f.client, "/fine_tuning/jobs/"+jobID+"/pause", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resume continues a paused fine-tuning job.
func (f *FineTuning) Resume(ctx context.Context, jobID string, opts ...RequestOption) (*FineTuningJob, error) {
	resp, err := Post[struct{}, FineTuningJob](ctx, f.client, "/fine_tuning/jobs/"+jobID+"/resume", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListEvents returns status updates for a fine-tuning job.
func (f *FineTuning) ListEvents(ctx context.Context, jobID string, query ListQuery, opts ...RequestOption) (*List[FineTuningJobEvent], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[FineTuningJobEvent]](ctx, f.client, "/fine_tuning/jobs/"+jobID+"/events", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCheckpoints returns the checkpoints of a fine-tuning job.
func (f *FineTuning) ListCheckpoints(ctx context.Context, jobID string, query ListQuery, opts ...RequestOption) (*List[FineTuningCheckpoint], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[FineTuningCheckpoint]](ctx, f.client, "/fine_tuning/jobs/"+jobID+"/checkpoints", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
