package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// AuditLogs reads the organization's audit trail. Requires an admin API
// key.
type AuditLogs struct {
	client *Client
}

// AuditLogs returns the audit log client.
func (c *Client) AuditLogs() *AuditLogs {
	return &AuditLogs{client: c}
}

// AuditLogActor is who performed a logged action.
type AuditLogActor struct {
	Type    string `json:"type"`
	Session *struct {
		User *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user,omitempty"`
		IPAddress string `json:"ip_address,omitempty"`
		UserAgent string `json:"user_agent,omitempty"`
	} `json:"session,omitempty"`
	APIKey *struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		User *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user,omitempty"`
		ServiceAccount *struct {
			ID string `json:"id"`
		} `json:"service_account,omitempty"`
	} `json:"api_key,omitempty"`
}

// AuditLog is one logged administrative event. The event payload lives
// under a key named after the event type and varies per type, so it is
// kept raw alongside the common envelope fields.
type AuditLog struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	EffectiveAt int64         `json:"effective_at"`
	Actor       AuditLogActor `json:"actor"`
	Project     *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project,omitempty"`

	payload map[string]json.RawMessage
}

// Payload returns the type-specific event payload, or nil when the event
// carried none.
func (l *AuditLog) Payload() json.RawMessage {
	return l.payload[l.Type]
}

// UnmarshalJSON captures the per-type payload key next to the envelope
// fields.
func (l *AuditLog) UnmarshalJSON(data []byte) error {
	type envelope AuditLog
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*l = AuditLog(e)

	return json.Unmarshal(data, &l.payload)
}

// ListAuditLogsQuery filters AuditLogs.List.
type ListAuditLogsQuery struct {
	After  string
	Before string
	Limit  *int

	ActorEmails  []string
	ActorIDs     []string
	EffectiveAtGT  *int64
	EffectiveAtGTE *int64
	EffectiveAtLT  *int64
	EffectiveAtLTE *int64
	EventTypes   []string
	ProjectIDs   []string
	ResourceIDs  []string
}

func (q ListAuditLogsQuery) requestOption() RequestOption {
	values := url.Values{}
	if q.After != "" {
		values.Set("after", q.After)
	}
	if q.Before != "" {
		values.Set("before", q.Before)
	}
	if q.Limit != nil {
		values.Set("limit", fmt.Sprint(*q.Limit))
	}
	for _, email := range q.ActorEmails {
		values.Add("actor_emails[]", email)
	}
	for _, id := range q.ActorIDs {
		values.Add("actor_ids[]", id)
	}
	for _, typ := range q.EventTypes {
		values.Add("event_types[]", typ)
	}
	for _, id := range q.ProjectIDs {
		values.Add("project_ids[]", id)
	}
	for _, id := range q.ResourceIDs {
		values.Add("resource_ids[]", id)
	}
	if q.EffectiveAtGT != nil {
		values.Set("effective_at[gt]", fmt.Sprint(*q.EffectiveAtGT))
	}
	if q.EffectiveAtGTE != nil {
		values.Set("effective_at[gte]", fmt.Sprint(*q.EffectiveAtGTE))
	}
	if q.EffectiveAtLT != nil {
		values.Set("effective_at[lt]", fmt.Sprint(*q.EffectiveAtLT))
	}
	if q.EffectiveAtLTE != nil {
		values.Set("effective_at[lte]", fmt.Sprint(*q.EffectiveAtLTE))
	}
	return WithQuery(values)
}

// List returns audit log events matching the query, newest first.
func (a *AuditLogs) List(ctx context.Context, query ListAuditLogsQuery, opts ...RequestOption) (*List[AuditLog], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[AuditLog]](ctx, a.client, "/organization/audit_logs", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
