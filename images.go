package openai

import (
	"context"
	"iter"
	"strconv"

	"github.com/florianilch/openai-client-go/internal/form"
)

// Images generates and edits images from text prompts.
type Images struct {
	client *Client
}

// Images returns the image generation client.
func (c *Client) Images() *Images {
	return &Images{client: c}
}

// CreateImageRequest is the request for Images.Generate.
type CreateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`

	Background        string `json:"background,omitempty"`
	Model             string `json:"model,omitempty"`
	Moderation        string `json:"moderation,omitempty"`
	N                 *int   `json:"n,omitempty"`
	OutputCompression *int   `json:"output_compression,omitempty"`
	OutputFormat      string `json:"output_format,omitempty"`
	PartialImages     *int   `json:"partial_images,omitempty"`
	Quality           string `json:"quality,omitempty"`
	ResponseFormat    string `json:"response_format,omitempty"`
	Size              string `json:"size,omitempty"`
	Stream            *bool  `json:"stream,omitempty"`
	Style             string `json:"style,omitempty"`
	User              string `json:"user,omitempty"`
}

// CreateImageEditRequest is the multipart request for Images.Edit. Only
// gpt-image-1 and dall-e-2 support edits.
type CreateImageEditRequest struct {
	Images []InputFile `validate:"required,min=1"`
	Prompt string      `validate:"required"`

	Mask           InputFile
	Background     string
	Model          string
	N              *int
	Quality        string
	ResponseFormat string
	Size           string
	User           string
}

// EncodeForm implements FormEncoder.
func (r CreateImageEditRequest) EncodeForm(w *form.Writer) error {
	// A single image is sent as "image", multiple as "image[]".
	imageField := "image"
	if len(r.Images) > 1 {
		imageField = "image[]"
	}
	for _, image := range r.Images {
		if err := image.encode(w, imageField); err != nil {
			return err
		}
	}

	if err := w.Field("prompt", r.Prompt); err != nil {
		return err
	}

	if r.Mask.valid() {
		if err := r.Mask.encode(w, "mask"); err != nil {
			return err
		}
	}

	if r.N != nil {
		if err := w.Field("n", strconv.Itoa(*r.N)); err != nil {
			return err
		}
	}

	for name, value := range map[string]string{
		"background":      r.Background,
		"model":           r.Model,
		"quality":         r.Quality,
		"response_format": r.ResponseFormat,
		"size":            r.Size,
		"user":            r.User,
	} {
		if err := w.OptionalField(name, value); err != nil {
			return err
		}
	}

	return nil
}

// CreateImageVariationRequest is the multipart request for
// Images.CreateVariation. Only dall-e-2 supports variations.
type CreateImageVariationRequest struct {
	Image InputFile `validate:"required"`

	Model          string
	N              *int
	ResponseFormat string
	Size           string
	User           string
}

// EncodeForm implements FormEncoder.
func (r CreateImageVariationRequest) EncodeForm(w *form.Writer) error {
	if err := r.Image.encode(w, "image"); err != nil {
		return err
	}

	if r.N != nil {
		if err := w.Field("n", strconv.Itoa(*r.N)); err != nil {
			return err
		}
	}

	for name, value := range map[string]string{
		"model":           r.Model,
		"response_format": r.ResponseFormat,
		"size":            r.Size,
		"user":            r.User,
	} {
		if err := w.OptionalField(name, value); err != nil {
			return err
		}
	}

	return nil
}

// ImagesResponse carries the generated or edited images.
type ImagesResponse struct {
	Created      int64        `json:"created"`
	Data         []Image      `json:"data"`
	Background   string       `json:"background,omitempty"`
	OutputFormat string       `json:"output_format,omitempty"`
	Quality      string       `json:"quality,omitempty"`
	Size         string       `json:"size,omitempty"`
	Usage        *ImagesUsage `json:"usage,omitempty"`
}

// Image is a single result, as a URL or base64 payload depending on the
// requested response format.
type Image struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// ImagesUsage reports token consumption for gpt-image-1 calls.
type ImagesUsage struct {
	InputTokens        int `json:"input_tokens"`
	OutputTokens       int `json:"output_tokens"`
	TotalTokens        int `json:"total_tokens"`
	InputTokensDetails *struct {
		ImageTokens int `json:"image_tokens"`
		TextTokens  int `json:"text_tokens"`
	} `json:"input_tokens_details,omitempty"`
}

// ImageGenEvent is one streamed image generation event: partial images
// followed by the completed image.
type ImageGenEvent struct {
	Type              string       `json:"type"`
	B64JSON           string       `json:"b64_json"`
	Background        string       `json:"background,omitempty"`
	CreatedAt         int64        `json:"created_at"`
	OutputFormat      string       `json:"output_format,omitempty"`
	PartialImageIndex int          `json:"partial_image_index,omitempty"`
	Quality           string       `json:"quality,omitempty"`
	Size              string       `json:"size,omitempty"`
	Usage             *ImagesUsage `json:"usage,omitempty"`
}

// Generate creates images given a prompt. When req.Stream is set, use
// GenerateStream instead.
func (i *Images) Generate(ctx context.Context, req CreateImageRequest, opts ...RequestOption) (*ImagesResponse, error) {
	if req.Stream != nil && *req.Stream {
		return nil, invalidArgumentf("when stream is true, use Images.GenerateStream")
	}

	if err := i.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateImageRequest, ImagesResponse](ctx, i.client, "/images/generations", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateStream creates an image and streams partial image events as the
// generation progresses (gpt-image-1 only).
func (i *Images) GenerateStream(ctx context.Context, req CreateImageRequest, opts ...RequestOption) (iter.Seq2[*ImageGenEvent, error], error) {
	if req.Stream != nil && !*req.Stream {
		return nil, invalidArgumentf("when stream is false, use Images.Generate")
	}

	if err := i.client.validateRequest(req); err != nil {
		return nil, err
	}

	return PostStream[CreateImageRequest, ImageGenEvent](ctx, i.client, "/images/generations", req, opts...)
}

// Edit creates an edited or extended image given source images and a
// prompt.
func (i *Images) Edit(ctx context.Context, req CreateImageEditRequest, opts ...RequestOption) (*ImagesResponse, error) {
	if err := i.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := PostForm[ImagesResponse](ctx, i.client, "/images/edits", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateVariation creates a variation of the given image.
func (i *Images) CreateVariation(ctx context.Context, req CreateImageVariationRequest, opts ...RequestOption) (*ImagesResponse, error) {
	if err := i.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := PostForm[ImagesResponse](ctx, i.client, "/images/variations", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
