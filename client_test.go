package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures requests and replies with canned responses,
// one per call, repeating the last one.
type recordingTransport struct {
	responses []cannedResponse
	requests  []*http.Request
	bodies    []string
}

type cannedResponse struct {
	status      int
	contentType string
	body        string
}

func (tr *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tr.requests = append(tr.requests, req)

	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}
	tr.bodies = append(tr.bodies, body)

	next := tr.responses[0]
	if len(tr.responses) > 1 {
		tr.responses = tr.responses[1:]
	}

	contentType := next.contentType
	if contentType == "" {
		contentType = "application/json"
	}

	return &http.Response{
		StatusCode: next.status,
		Body:       io.NopCloser(strings.NewReader(next.body)),
		Header:     http.Header{"Content-Type": []string{contentType}},
		Request:    req,
	}, nil
}

func newTestClient(tr *recordingTransport, opts ...Option) *Client {
	base := []Option{
		WithConfig(NewConfig(WithAPIKey("sk-test"), WithOrganization("org-1"), WithBaseURL(DefaultBaseURL))),
		WithHTTPClient(&http.Client{Transport: tr}),
	}
	return NewClient(append(base, opts...)...)
}

func TestClientAttachesConfiguredHeaders(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := newTestClient(tr)

	_, err := Get[struct{}](t.Context(), c, "/models")
	require.NoError(t, err)

	req := tr.requests[0]
	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
	assert.Equal(t, "org-1", req.Header.Get(OrganizationHeader))
	assert.Equal(t, "https://api.openai.com/v1/models", req.URL.String())
}

func TestClientPerCallOptionsOverrideDefaults(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := newTestClient(tr)

	_, err := Get[struct{}](t.Context(), c, "/models",
		WithRequestHeader(OrganizationHeader, "org-2"),
		WithQueryParam("limit", "5"),
	)
	require.NoError(t, err)

	req := tr.requests[0]
	assert.Equal(t, "org-2", req.Header.Get(OrganizationHeader))
	assert.Equal(t, "5", req.URL.Query().Get("limit"))
}

func TestClientMergesConfigQuery(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := NewClient(
		WithConfig(NewAzureConfig("https://res.openai.azure.com",
			WithAzureAPIKey("k"), WithAzureAPIVersion("2024-10-21"), WithAzureDeployment("dep"))),
		WithHTTPClient(&http.Client{Transport: tr}),
	)

	_, err := Get[struct{}](t.Context(), c, "/models")
	require.NoError(t, err)

	req := tr.requests[0]
	assert.Equal(t, "2024-10-21", req.URL.Query().Get("api-version"))
	assert.Equal(t, "k", req.Header.Get("api-key"))
}

func TestPostSerializesRequest(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{"echo":true}`}}}
	c := newTestClient(tr)

	type customRequest struct {
		Model string `json:"model"`
		Seed  int    `json:"seed"`
	}
	type customResponse struct {
		Echo bool `json:"echo"`
	}

	resp, err := Post[customRequest, customResponse](t.Context(), c, "/custom", customRequest{Model: "m", Seed: 7})
	require.NoError(t, err)
	assert.True(t, resp.Echo)

	assert.Equal(t, "application/json", tr.requests[0].Header.Get("Content-Type"))
	assert.JSONEq(t, `{"model":"m","seed":7}`, tr.bodies[0])
}

func TestClientMapsErrorEnvelope(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 404,
		body:   `{"error":{"message":"The model does not exist","type":"invalid_request_error","param":"model","code":"model_not_found"}}`,
	}}}
	c := newTestClient(tr)

	_, err := Get[struct{}](t.Context(), c, "/models/nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, ErrorTypeInvalidRequest, apiErr.Type)
	assert.Equal(t, "model", apiErr.Param)
}

func TestClientMapsNonEnvelopeFailure(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status:      502,
		contentType: "text/html",
		body:        "<html>bad gateway</html>",
	}}}
	c := newTestClient(tr)

	_, err := Get[struct{}](t.Context(), c, "/models")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 502, reqErr.StatusCode)
}

func TestClientReportsDeserializationFailure(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{"object": [unterminated`}}}
	c := newTestClient(tr)

	_, err := Get[List[Model]](t.Context(), c, "/models")

	var desErr *DeserializationError
	require.ErrorAs(t, err, &desErr)
	assert.Contains(t, desErr.Content, "unterminated")
}

func TestValidateRequestRejectsMissingFields(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{status: 200, body: `{}`}}}
	c := newTestClient(tr)

	_, err := c.Chat().Create(t.Context(), CreateChatCompletionRequest{
		Messages: []ChatCompletionMessage{UserMessage("hi")},
	})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	// Nothing reached the wire.
	assert.Empty(t, tr.requests)
}

func TestDeleteDecodesStatus(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"id":"file-1","object":"file","deleted":true}`,
	}}}
	c := newTestClient(tr)

	status, err := c.Files().Delete(t.Context(), "file-1")
	require.NoError(t, err)
	assert.True(t, status.Deleted)
	assert.Equal(t, http.MethodDelete, tr.requests[0].Method)
}

func TestBringYourOwnTypes(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"id":"cmpl-1","custom_field":"kept"}`,
	}}}
	c := newTestClient(tr)

	// Callers can substitute their own request and response shapes for any
	// endpoint, including fields this library does not model.
	req := map[string]any{"model": "exotic", "vendor_extension": map[string]any{"knob": 3}}
	resp, err := Post[map[string]any, json.RawMessage](t.Context(), c, "/chat/completions", req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"model":"exotic","vendor_extension":{"knob":3}}`, tr.bodies[0])
	assert.Contains(t, string(resp), "custom_field")
}
