package openai

import (
	"context"

	"github.com/florianilch/openai-client-go/internal/form"
)

// Uploads assembles large files from separately uploaded parts.
type Uploads struct {
	client *Client
}

// Uploads returns the multipart upload client.
func (c *Client) Uploads() *Uploads {
	return &Uploads{client: c}
}

// CreateUploadRequest is the request for Uploads.Create.
type CreateUploadRequest struct {
	Filename string `json:"filename" validate:"required"`
	Purpose  string `json:"purpose" validate:"required"`
	Bytes    int64  `json:"bytes" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
}

// Upload is an in-progress or completed upload.
type Upload struct {
	ID        string      `json:"id"`
	Object    string      `json:"object"`
	Bytes     int64       `json:"bytes"`
	CreatedAt int64       `json:"created_at"`
	Filename  string      `json:"filename"`
	Purpose   string      `json:"purpose"`
	Status    string      `json:"status"`
	ExpiresAt int64       `json:"expires_at"`
	File      *FileObject `json:"file,omitempty"`
}

// UploadPart is one uploaded chunk of an upload.
type UploadPart struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	UploadID  string `json:"upload_id"`
}

// AddUploadPartRequest is the multipart request for Uploads.AddPart.
type AddUploadPartRequest struct {
	Data InputFile `validate:"required"`
}

// EncodeForm implements FormEncoder.
func (r AddUploadPartRequest) EncodeForm(w *form.Writer) error {
	return r.Data.encode(w, "data")
}

// CompleteUploadRequest is the request for Uploads.Complete. PartIDs are
// given in the order the parts should be concatenated.
type CompleteUploadRequest struct {
	PartIDs []string `json:"part_ids" validate:"required,min=1"`
	MD5     string   `json:"md5,omitempty"`
}

// Create starts an upload to which parts can be added. Parts may be
// uploaded in parallel; the whole upload must complete within an hour.
func (u *Uploads) Create(ctx context.Context, req CreateUploadRequest, opts ...RequestOption) (*Upload, error) {
	if err := u.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateUploadRequest, Upload](ctx, u.client, "/uploads", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddPart uploads one chunk, at most 64 MB, to an upload.
func (u *Uploads) AddPart(ctx context.Context, uploadID string, req AddUploadPartRequest, opts ...RequestOption) (*UploadPart, error) {
	if err := u.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := PostForm[UploadPart](ctx, u.client, "/uploads/"+uploadID+"/parts", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Complete concatenates the named parts into the final file.
func (u *Uploads) Complete(ctx context.Context, uploadID string, req CompleteUploadRequest, opts ...RequestOption) (*Upload, error) {
	if err := u.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CompleteUploadRequest, Upload](ctx, u.client, "/uploads/"+uploadID+"/complete", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel cancels an upload; no parts can be added afterwards.
func (u *Uploads) Cancel(ctx context.Context, uploadID string, opts ...RequestOption) (*Upload, error) {
	resp, err := Post[struct{}, Upload](ctx, u.client, "/uploads/"+uploadID+"/cancel", struct{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
