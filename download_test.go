package openai

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagesResponseSaveBase64(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("fake png bytes")

	resp := &ImagesResponse{Data: []Image{
		{B64JSON: base64.StdEncoding.EncodeToString(payload)},
	}}

	paths, err := resp.Save(t.Context(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	assert.Equal(t, ".png", filepath.Ext(paths[0]))
	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestImagesResponseSaveDownloadsURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("image-" + filepath.Base(r.URL.Path)))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	resp := &ImagesResponse{Data: []Image{
		{URL: server.URL + "/a.png"},
		{URL: server.URL + "/b.png"},
	}}

	paths, err := resp.Save(t.Context(), dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	// Results keep the order of the response regardless of download order.
	first, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "image-a.png", string(first))

	second, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "image-b.png", string(second))
}

func TestImagesResponseSaveRejectsEmptyImage(t *testing.T) {
	resp := &ImagesResponse{Data: []Image{{}}}

	_, err := resp.Save(t.Context(), t.TempDir())

	var invalidErr *InvalidArgumentError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestImagesResponseSaveInvalidBase64(t *testing.T) {
	resp := &ImagesResponse{Data: []Image{{B64JSON: "not base64!!!"}}}

	_, err := resp.Save(t.Context(), t.TempDir())

	var desErr *DeserializationError
	assert.ErrorAs(t, err, &desErr)
}
