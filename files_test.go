package openai

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseMultipart decodes a recorded multipart request body into field and
// file values.
func parseMultipart(t *testing.T, req *http.Request, body string) (fields map[string][]string, files map[string]string) {
	t.Helper()

	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.NotEmpty(t, params["boundary"])

	fields = map[string][]string{}
	files = map[string]string{}

	reader := multipart.NewReader(strings.NewReader(body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return fields, files
		}
		require.NoError(t, err)

		data, err := io.ReadAll(part)
		require.NoError(t, err)

		if part.FileName() != "" {
			files[part.FormName()] = part.FileName() + ":" + string(data)
		} else {
			fields[part.FormName()] = append(fields[part.FormName()], string(data))
		}
	}
}

func TestFilesCreateEncodesMultipart(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"id":"file-abc","object":"file","bytes":12,"created_at":1,"filename":"train.jsonl","purpose":"fine-tune"}`,
	}}}
	c := newTestClient(tr)

	file, err := c.Files().Create(t.Context(), CreateFileRequest{
		File:    FileFromBytes("train.jsonl", []byte(`{"ok":true}`)),
		Purpose: "fine-tune",
	})
	require.NoError(t, err)
	assert.Equal(t, "file-abc", file.ID)

	fields, files := parseMultipart(t, tr.requests[0], tr.bodies[0])
	assert.Equal(t, []string{"fine-tune"}, fields["purpose"])
	assert.Equal(t, `train.jsonl:{"ok":true}`, files["file"])
}

func TestFilesCreateRequiresSource(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := newTestClient(tr)

	_, err := c.Files().Create(t.Context(), CreateFileRequest{
		File:    InputFile{},
		Purpose: "fine-tune",
	})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	assert.Empty(t, tr.requests)
}

func TestFilesCreateSurfacesOpenFailure(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := newTestClient(tr)

	_, err := c.Files().Create(t.Context(), CreateFileRequest{
		File:    FileFromPath("/nonexistent/train.jsonl"),
		Purpose: "fine-tune",
	})

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "read", fileErr.Op)
}

func TestFilesListQuery(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"object":"list","data":[],"has_more":false}`,
	}}}
	c := newTestClient(tr)

	_, err := c.Files().List(t.Context(), ListFilesQuery{
		Purpose: "batch",
		Limit:   Ptr(25),
		Order:   SortOrderDesc,
	})
	require.NoError(t, err)

	query := tr.requests[0].URL.Query()
	assert.Equal(t, "batch", query.Get("purpose"))
	assert.Equal(t, "25", query.Get("limit"))
	assert.Equal(t, "desc", query.Get("order"))
}

func TestFilesContentReturnsRawBody(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status:      200,
		contentType: "application/octet-stream",
		body:        "raw bytes here",
	}}}
	c := newTestClient(tr)

	data, err := c.Files().Content(t.Context(), "file-abc")
	require.NoError(t, err)
	assert.Equal(t, "raw bytes here", string(data))
	assert.Equal(t, "/v1/files/file-abc/content", tr.requests[0].URL.Path)
}
