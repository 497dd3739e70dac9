package openai

import "context"

// Moderations classifies content against the usage policies.
type Moderations struct {
	client *Client
}

// Moderations returns the moderation client.
func (c *Client) Moderations() *Moderations {
	return &Moderations{client: c}
}

// CreateModerationRequest is the request for Moderations.Create. Input is
// a string, a list of strings, or a list of multi-modal input parts.
type CreateModerationRequest struct {
	Input any    `json:"input" validate:"required"`
	Model string `json:"model,omitempty"`
}

// ModerationInputPart is one multi-modal moderation input: a text part or
// an image URL part.
type ModerationInputPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *ImageURLPart `json:"image_url,omitempty"`
}

// ModerationResponse is the classification result.
type ModerationResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Results []ModerationResult `json:"results"`
}

// ModerationResult holds per-input flags, category hits and scores.
type ModerationResult struct {
	Flagged                   bool                `json:"flagged"`
	Categories                map[string]bool     `json:"categories"`
	CategoryScores            map[string]float64  `json:"category_scores"`
	CategoryAppliedInputTypes map[string][]string `json:"category_applied_input_types,omitempty"`
}

// Create classifies whether the input violates the usage policies.
func (m *Moderations) Create(ctx context.Context, req CreateModerationRequest, opts ...RequestOption) (*ModerationResponse, error) {
	if err := m.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateModerationRequest, ModerationResponse](ctx, m.client, "/moderations", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
