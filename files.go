package openai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/florianilch/openai-client-go/internal/form"
)

// Files manages documents uploaded for use across the API (fine-tuning,
// batches, assistants).
type Files struct {
	client *Client
}

// Files returns the file management client.
func (c *Client) Files() *Files {
	return &Files{client: c}
}

// FileObject is an uploaded file.
type FileObject struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// CreateFileRequest is the multipart request for Files.Create.
type CreateFileRequest struct {
	File    InputFile `validate:"required"`
	Purpose string    `validate:"required"`

	// ExpiresAfterSeconds sets an expiry anchored to the upload time.
	ExpiresAfterSeconds *int
}

// EncodeForm implements FormEncoder.
func (r CreateFileRequest) EncodeForm(w *form.Writer) error {
	if err := r.File.encode(w, "file"); err != nil {
		return err
	}
	if err := w.Field("purpose", r.Purpose); err != nil {
		return err
	}

	if r.ExpiresAfterSeconds != nil {
		if err := w.Field("expires_after[anchor]", "created_at"); err != nil {
			return err
		}
		if err := w.Field("expires_after[seconds]", fmt.Sprint(*r.ExpiresAfterSeconds)); err != nil {
			return err
		}
	}

	return nil
}

// ListFilesQuery filters Files.List.
type ListFilesQuery struct {
	After   string
	Limit   *int
	Order   SortOrder
	Purpose string
}

func (q ListFilesQuery) requestOption() RequestOption {
	values := url.Values{}
	if q.After != "" {
		values.Set("after", q.After)
	}
	if q.Limit != nil {
		values.Set("limit", fmt.Sprint(*q.Limit))
	}
	if q.Order != "" {
		values.Set("order", string(q.Order))
	}
	if q.Purpose != "" {
		values.Set("purpose", q.Purpose)
	}
	return WithQuery(values)
}

// Create uploads a file.
func (f *Files) Create(ctx context.Context, req CreateFileRequest, opts ...RequestOption) (*FileObject, error) {
	if err := f.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := PostForm[FileObject](ctx, f.client, "/files", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns files belonging to the organization.
func (f *Files) List(ctx context.Context, query ListFilesQuery, opts ...RequestOption) (*List[FileObject], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[FileObject]](ctx, f.client, "/files", opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a file's metadata.
func (f *Files) Retrieve(ctx context.Context, fileID string, opts ...RequestOption) (*FileObject, error) {
	resp, err := Get[FileObject](ctx, f.client, "/files/"+fileID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a file.
func (f *Files) Delete(ctx context.Context, fileID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, f.client, "/files/"+fileID, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Content downloads a file's raw contents.
func (f *Files) Content(ctx context.Context, fileID string, opts ...RequestOption) ([]byte, error) {
	body, _, err := f.client.getRaw(ctx, "/files/"+fileID+"/content", opts...)
	return body, err
}
