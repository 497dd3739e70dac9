package openai

import "context"

// The administration clients below require an admin API key and operate on
// the organization rather than on a project.

// AdminAPIKeys manages organization admin API keys.
type AdminAPIKeys struct {
	client *Client
}

// AdminAPIKeys returns the admin API key client.
func (c *Client) AdminAPIKeys() *AdminAPIKeys {
	return &AdminAPIKeys{client: c}
}

// APIKeyOwner identifies who an API key belongs to.
type APIKeyOwner struct {
	Type      string `json:"type,omitempty"`
	Object    string `json:"object,omitempty"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Role      string `json:"role,omitempty"`
}

// AdminAPIKey is an organization admin API key. Value is only present in
// the Create response.
type AdminAPIKey struct {
	ID            string       `json:"id"`
	Object        string       `json:"object"`
	Name          string       `json:"name"`
	RedactedValue string       `json:"redacted_value"`
	Value         string       `json:"value,omitempty"`
	CreatedAt     int64        `json:"created_at"`
	LastUsedAt    int64        `json:"last_used_at,omitempty"`
	Owner         *APIKeyOwner `json:"owner,omitempty"`
}

// CreateAdminAPIKeyRequest is the request for AdminAPIKeys.Create.
type CreateAdminAPIKeyRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create mints a new admin API key. The full key value is returned only
// once, in this response.
func (a *AdminAPIKeys) Create(ctx context.Context, req CreateAdminAPIKeyRequest, opts ...RequestOption) (*AdminAPIKey, error) {
	if err := a.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateAdminAPIKeyRequest, AdminAPIKey](ctx, a.client, "/organization/admin_api_keys", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's admin API keys.
func (a *AdminAPIKeys) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[AdminAPIKey], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[AdminAPIKey]](ctx, a.client, "/organization/admin_api_keys", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns an admin API key by ID.
func (a *AdminAPIKeys) Retrieve(ctx context.Context, keyID string, opts ...RequestOption) (*AdminAPIKey, error) {
	resp, err := Get[AdminAPIKey](ctx, a.client, "/organization/admin_api_keys/"+keyID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete revokes an admin API key.
func (a *AdminAPIKeys) Delete(ctx context.Context, keyID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, a.client, "/organization/admin_api_keys/"+keyID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Invites manages pending invitations to the organization.
type Invites struct {
	client *Client
}

// Invites returns the invite client.
func (c *Client) Invites() *Invites {
	return &Invites{client: c}
}

// InviteProjectGrant assigns a project role as part of an invite.
type InviteProjectGrant struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Invite is a pending or resolved organization invitation.
type Invite struct {
	ID         string               `json:"id"`
	Object     string               `json:"object"`
	Email      string               `json:"email"`
	Role       string               `json:"role"`
	Status     string               `json:"status"`
	InvitedAt  int64                `json:"invited_at"`
	ExpiresAt  int64                `json:"expires_at"`
	AcceptedAt int64                `json:"accepted_at,omitempty"`
	Projects   []InviteProjectGrant `json:"projects,omitempty"`
}

// CreateInviteRequest is the request for Invites.Create. Role is "owner"
// or "reader".
type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`

	Projects []InviteProjectGrant `json:"projects,omitempty"`
}

// Create sends an invitation email.
func (i *Invites) Create(ctx context.Context, req CreateInviteRequest, opts ...RequestOption) (*Invite, error) {
	if err := i.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateInviteRequest, Invite](ctx, i.client, "/organization/invites", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's invites.
func (i *Invites) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[Invite], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[Invite]](ctx, i.client, "/organization/invites", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns an invite by ID.
func (i *Invites) Retrieve(ctx context.Context, inviteID string, opts ...RequestOption) (*Invite, error) {
	resp, err := Get[Invite](ctx, i.client, "/organization/invites/"+inviteID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete revokes a pending invite.
func (i *Invites) Delete(ctx context.Context, inviteID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, i.client, "/organization/invites/"+inviteID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Users manages the organization's members.
type Users struct {
	client *Client
}

// Users returns the organization user client.
func (c *Client) Users() *Users {
	return &Users{client: c}
}

// OrganizationUser is one member of the organization.
type OrganizationUser struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	AddedAt int64  `json:"added_at"`
}

// ModifyUserRequest changes a member's organization role.
type ModifyUserRequest struct {
	Role string `json:"role" validate:"required"`
}

// List returns the organization's members.
func (u *Users) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[OrganizationUser], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[OrganizationUser]](ctx, u.client, "/organization/users", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a member by user ID.
func (u *Users) Retrieve(ctx context.Context, userID string, opts ...RequestOption) (*OrganizationUser, error) {
	resp, err := Get[OrganizationUser](ctx, u.client, "/organization/users/"+userID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify changes a member's organization role.
func (u *Users) Modify(ctx context.Context, userID string, req ModifyUserRequest, opts ...RequestOption) (*OrganizationUser, error) {
	if err := u.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[ModifyUserRequest, OrganizationUser](ctx, u.client, "/organization/users/"+userID, req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a member from the organization.
func (u *Users) Delete(ctx context.Context, userID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, u.client, "/organization/users/"+userID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
