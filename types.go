package openai

import (
	"net/url"
	"strconv"
)

// Usage reports token consumption for a completed call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens"`

	PromptTokensDetails     *PromptTokensDetails     `json:"prompt_tokens_details,omitempty"`
	CompletionTokensDetails *CompletionTokensDetails `json:"completion_tokens_details,omitempty"`
}

// PromptTokensDetails breaks down prompt token usage.
type PromptTokensDetails struct {
	AudioTokens  int `json:"audio_tokens,omitempty"`
	CachedTokens int `json:"cached_tokens,omitempty"`
}

// CompletionTokensDetails breaks down completion token usage.
type CompletionTokensDetails struct {
	AudioTokens              int `json:"audio_tokens,omitempty"`
	ReasoningTokens          int `json:"reasoning_tokens,omitempty"`
	AcceptedPredictionTokens int `json:"accepted_prediction_tokens,omitempty"`
	RejectedPredictionTokens int `json:"rejected_prediction_tokens,omitempty"`
}

// List is the cursor-paginated envelope returned by list operations.
type List[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id,omitempty"`
	LastID  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more"`
}

// DeletionStatus confirms a delete operation.
type DeletionStatus struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Metadata is the 16-pair key/value attachment many resources accept.
type Metadata map[string]string

// SortOrder controls list ordering by creation timestamp.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ListQuery carries the cursor pagination parameters shared by list
// operations. Zero values are omitted from the query string.
type ListQuery struct {
	// After is a cursor: the object ID to start the page after.
	After string
	// Before is a cursor: the object ID to end the page before.
	Before string
	// Limit is the page size, between 1 and 100.
	Limit int
	// Order sorts by created_at.
	Order SortOrder
}

func (q *ListQuery) values() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.After != "" {
		values.Set("after", q.After)
	}
	if q.Before != "" {
		values.Set("before", q.Before)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Order != "" {
		values.Set("order", string(q.Order))
	}

	return values
}

// requestOption converts the pagination parameters into a per-call option.
func (q *ListQuery) requestOption() RequestOption {
	return WithQuery(q.values())
}

// Ptr returns a pointer to v, for filling optional request fields inline.
func Ptr[T any](v T) *T {
	return &v
}
