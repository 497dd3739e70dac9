package openai

import "context"

// Projects manages the organization's projects and their members, service
// accounts, API keys and rate limits. Requires an admin API key.
type Projects struct {
	client *Client
}

// Projects returns the project administration client.
func (c *Client) Projects() *Projects {
	return &Projects{client: c}
}

// Project groups usage and access control within an organization.
type Project struct {
	ID         string `json:"id"`
	Object     string `json:"object"`
	Name       string `json:"name"`
	CreatedAt  int64  `json:"created_at"`
	ArchivedAt int64  `json:"archived_at,omitempty"`
	Status     string `json:"status"`
}

// CreateProjectRequest is the request for Projects.Create.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// ModifyProjectRequest is the request for Projects.Modify.
type ModifyProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProjectUser is a member of a project.
type ProjectUser struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	AddedAt int64  `json:"added_at"`
}

// CreateProjectUserRequest adds an organization member to a project. Role
// is "owner" or "member".
type CreateProjectUserRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// ModifyProjectUserRequest changes a project member's role.
type ModifyProjectUserRequest struct {
	Role string `json:"role" validate:"required"`
}

// ProjectServiceAccount is a non-human project identity. APIKey is only
// present in the Create response.
type ProjectServiceAccount struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
	APIKey    *struct {
		Object    string `json:"object"`
		Value     string `json:"value"`
		Name      string `json:"name,omitempty"`
		CreatedAt int64  `json:"created_at"`
		ID        string `json:"id"`
	} `json:"api_key,omitempty"`
}

// CreateProjectServiceAccountRequest is the request for
// Projects.CreateServiceAccount.
type CreateProjectServiceAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProjectAPIKey is an API key scoped to a project.
type ProjectAPIKey struct {
	ID            string       `json:"id"`
	Object        string       `json:"object"`
	Name          string       `json:"name,omitempty"`
	RedactedValue string       `json:"redacted_value"`
	CreatedAt     int64        `json:"created_at"`
	LastUsedAt    int64        `json:"last_used_at,omitempty"`
	Owner         *APIKeyOwner `json:"owner,omitempty"`
}

// ProjectRateLimit is one per-model rate limit inside a project.
type ProjectRateLimit struct {
	ID                          string `json:"id"`
	Object                      string `json:"object"`
	Model                       string `json:"model"`
	MaxRequestsPer1Minute       int    `json:"max_requests_per_1_minute"`
	MaxTokensPer1Minute         int    `json:"max_tokens_per_1_minute"`
	MaxImagesPer1Minute         int    `json:"max_images_per_1_minute,omitempty"`
	MaxAudioMegabytesPer1Minute int    `json:"max_audio_megabytes_per_1_minute,omitempty"`
	MaxRequestsPer1Day          int    `json:"max_requests_per_1_day,omitempty"`
	Batch1DayMaxInputTokens     int    `json:"batch_1_day_max_input_tokens,omitempty"`
}

// ModifyProjectRateLimitRequest adjusts a project rate limit. Unset fields
// are left unchanged.
type ModifyProjectRateLimitRequest struct {
	MaxRequestsPer1Minute       *int `json:"max_requests_per_1_minute,omitempty"`
	MaxTokensPer1Minute         *int `json:"max_tokens_per_1_minute,omitempty"`
	MaxImagesPer1Minute         *int `json:"max_images_per_1_minute,omitempty"`
	MaxAudioMegabytesPer1Minute *int `json:"max_audio_megabytes_per_1_minute,omitempty"`
	MaxRequestsPer1Day          *int `json:"max_requests_per_1_day,omitempty"`
	Batch1DayMaxInputTokens     *int `json:"batch_1_day_max_input_tokens,omitempty"`
}

// Create creates a project.
func (p *Projects) Create(ctx context.Context, req CreateProjectRequest, opts ...RequestOption) (*Project, error) {
	if err := p.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateProjectRequest, Project](ctx, p.client, "/organization/projects", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's projects. Archived projects are excluded
// unless includeArchived is set.
func (p *Projects) List(ctx context.Context, query ListQuery, includeArchived bool, opts ...RequestOption) (*List[Project], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)
	if includeArchived {
		opts = append(opts, WithQueryParam("include_archived", "true"))
	}

	resp, err := Get[List[Project]](ctx, p.client, "/organization/projects", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a project by ID.
func (p *Projects) Retrieve(ctx context.Context, projectID string, opts ...RequestOption) (*Project, error) {
	resp, err := Get[Project](ctx, p.client, "/organization/projects/"+projectID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify renames a project.
func (p *Projects) Modify(ctx context.Context, projectID string, req ModifyProjectRequest, opts ...RequestOption) (*Project, error) {
	if err := p.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[ModifyProjectRequest, Project](ctx, p.client, "/organization/projects/"+projectID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Archive archives a project. Archived projects cannot be used or
// unarchived.
func (p *Projects) Archive(ctx context.Context, projectID string, opts ...RequestOption) (*Project, error) {
	resp, err := Post[struct{}, Project](ctx, p.client, "/organization/projects/"+projectID+"/archive", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateUser adds an organization member to the project.
func (p *Projects) CreateUser(ctx context.Context, projectID string, req CreateProjectUserRequest, opts ...RequestOption) (*ProjectUser, error) {
	if err := p.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateProjectUserRequest, ProjectUser](ctx, p.client, "/organization/projects/"+projectID+"/users", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers returns the project's members.
func (p *Projects) ListUsers(ctx context.Context, projectID string, query ListQuery, opts ...RequestOption) (*List[ProjectUser], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[ProjectUser]](ctx, p.client, "/organization/projects/"+projectID+"/users", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveUser returns one project member.
func (p *Projects) RetrieveUser(ctx context.Context, projectID, userID string, opts ...RequestOption) (*ProjectUser, error) {
	resp, err := Get[ProjectUser](ctx, p.client, "/organization/projects/"+projectID+"/users/"+userID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModifyUser changes a project member's role.
func (p *Projects) ModifyUser(ctx context.Context, projectID, userID string, req ModifyProjectUserRequest, opts ...RequestOption) (*ProjectUser, error) {
	if err := p.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[ModifyProjectUserRequest, ProjectUser](ctx, p.client, "/organization/projects/"+projectID+"/users/"+userID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUser removes a member from the project.
func (p *Projects) DeleteUser(ctx context.Context, projectID, userID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, p.client, "/organization/projects/"+projectID+"/users/"+userID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateServiceAccount creates a service account in the project. The full
// API key value is returned only once, in this response.
func (p *Projects) CreateServiceAccount(ctx context.Context, projectID string, req CreateProjectServiceAccountRequest, opts ...RequestOption) (*ProjectServiceAccount, error) {
	if err := p.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateProjectServiceAccountRequest, ProjectServiceAccount](ctx, p.client, "/organization/projects/"+projectID+"/service_accounts", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListServiceAccounts returns the project's service accounts.
func (p *Projects) ListServiceAccounts(ctx context.Context, projectID string, query ListQuery, opts ...RequestOption) (*List[ProjectServiceAccount], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[ProjectServiceAccount]](ctx, p.client, "/organization/projects/"+projectID+"/service_accounts", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveServiceAccount returns one service account.
func (p *Projects) RetrieveServiceAccount(ctx context.Context, projectID, accountID string, opts ...RequestOption) (*ProjectServiceAccount, error) {
	resp, err := Get[ProjectServiceAccount](ctx, p.client, "/organization/projects/"+projectID+"/service_accounts/"+accountID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteServiceAccount removes a service account and revokes its key.
func (p *Projects) DeleteServiceAccount(ctx context.Context, projectID, accountID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, p.client, "/organization/projects/"+projectID+"/service_accounts/"+accountID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAPIKeys returns the project's API keys.
func (p *Projects) ListAPIKeys(ctx context.Context, projectID string, query ListQuery, opts ...RequestOption) (*List[ProjectAPIKey], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[ProjectAPIKey]](ctx, p.client, "/organization/projects/"+projectID+"/api_keys", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveAPIKey returns one project API key.
func (p *Projects) RetrieveAPIKey(ctx context.Context, projectID, keyID string, opts ...RequestOption) (*ProjectAPIKey, error) {
	resp, err := Get[ProjectAPIKey](ctx, p.client, "/organization/projects/"+projectID+"/api_keys/"+keyID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteAPIKey revokes a project API key.
func (p *Projects) DeleteAPIKey(ctx context.Context, projectID, keyID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, p.client, "/organization/projects/"+projectID+"/api_keys/"+keyID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRateLimits returns the project's per-model rate limits.
func (p *Projects) ListRateLimits(ctx context.Context, projectID string, query ListQuery, opts ...RequestOption) (*List[ProjectRateLimit], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[ProjectRateLimit]](ctx, p.client, "/organization/projects/"+projectID+"/rate_limits", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ModifyRateLimit adjusts one of the project's rate limits.
func (p *Projects) ModifyRateLimit(ctx context.Context, projectID, limitID string, req ModifyProjectRateLimitRequest, opts ...RequestOption) (*ProjectRateLimit, error) {
	resp, err := Post[ModifyProjectRateLimitRequest, ProjectRateLimit](ctx, p.client, "/organization/projects/"+projectID+"/rate_limits/"+limitID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
