package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagesGenerateRejectsStreamFlag(t *testing.T) {
	c := NewClient(WithConfig(NewConfig(WithAPIKey("sk-test"))))

	_, err := c.Images().Generate(t.Context(), CreateImageRequest{
		Prompt: "a cat",
		Stream: Ptr(true),
	})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	assert.Contains(t, invalidErr.Reason, "GenerateStream")
}

func TestImagesEditEncodesMultipart(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"created":1,"data":[{"url":"https://img.example/out.png"}]}`,
	}}}
	c := newTestClient(tr)

	resp, err := c.Images().Edit(t.Context(), CreateImageEditRequest{
		Images: []InputFile{FileFromBytes("source.png", []byte("png-data"))},
		Prompt: "add a hat",
		Mask:   FileFromBytes("mask.png", []byte("mask-data")),
		N:      Ptr(2),
		Size:   "1024x1024",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "https://img.example/out.png", resp.Data[0].URL)

	fields, files := parseMultipart(t, tr.requests[0], tr.bodies[0])
	assert.Equal(t, []string{"add a hat"}, fields["prompt"])
	assert.Equal(t, []string{"2"}, fields["n"])
	assert.Equal(t, []string{"1024x1024"}, fields["size"])
	assert.Equal(t, "source.png:png-data", files["image"])
	assert.Equal(t, "mask.png:mask-data", files["mask"])
}

func TestImagesEditMultipleImagesUseArrayField(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"created":1,"data":[]}`,
	}}}
	c := newTestClient(tr)

	_, err := c.Images().Edit(t.Context(), CreateImageEditRequest{
		Images: []InputFile{
			FileFromBytes("a.png", []byte("a")),
			FileFromBytes("b.png", []byte("b")),
		},
		Prompt: "merge these",
	})
	require.NoError(t, err)

	_, files := parseMultipart(t, tr.requests[0], tr.bodies[0])
	// parseMultipart keeps the last part per field name; both go under the
	// array field.
	assert.Contains(t, files, "image[]")
	assert.NotContains(t, files, "image")
}

func TestImagesCreateVariationRequiresImage(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := newTestClient(tr)

	_, err := c.Images().CreateVariation(t.Context(), CreateImageVariationRequest{})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	assert.Empty(t, tr.requests)
}
