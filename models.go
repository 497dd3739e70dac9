package openai

import "context"

// Models lists and inspects the models available to the caller.
type Models struct {
	client *Client
}

// Models returns the model catalog client.
func (c *Client) Models() *Models {
	return &Models{client: c}
}

// Model describes one available model.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// List returns the models currently available.
func (m *Models) List(ctx context.Context, opts ...RequestOption) (*List[Model], error) {
	resp, err := Get[List[Model]](ctx, m.client, "/models", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a model by ID.
func (m *Models) Retrieve(ctx context.Context, modelID string, opts ...RequestOption) (*Model, error) {
	resp, err := Get[Model](ctx, m.client, "/models/"+modelID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a fine-tuned model the caller owns.
func (m *Models) Delete(ctx context.Context, modelID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, m.client, "/models/"+modelID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
