package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/sjson"

	"github.com/florianilch/openai-client-go/internal/form"
	"github.com/florianilch/openai-client-go/internal/sse"
)

// Client is the low-level API client shared by all resource clients. It is
// immutable after construction and safe for concurrent use; streams each
// get their own retry policy from the configured factory.
type Client struct {
	config     Config
	httpClient *http.Client
	newPolicy  func() StreamRetryPolicy
	validate   *validator.Validate
}

// Option customizes a Client during construction.
type Option func(*Client)

// WithConfig replaces the default environment-derived ClientConfig, e.g.
// with an AzureConfig or a custom Config implementation.
func WithConfig(config Config) Option {
	return func(c *Client) {
		c.config = config
	}
}

// WithHTTPClient replaces the HTTP client used for all calls. Supply one
// with a custom transport to add instrumentation, proxies or timeouts;
// the library does not reimplement timeouts itself.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithStreamRetryPolicy replaces the reconnection policy factory used by
// streaming calls. The factory is invoked once per stream.
func WithStreamRetryPolicy(factory func() StreamRetryPolicy) Option {
	return func(c *Client) {
		c.newPolicy = factory
	}
}

// NewClient returns a Client configured from the environment and the given
// options.
//
// The default HTTP client carries no timeout so long-lived SSE streams are
// not cut short; configure deadlines per call via context or supply a
// client via WithHTTPClient.
func NewClient(options ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		newPolicy:  func() StreamRetryPolicy { return DefaultStreamingBackoff() },
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, option := range options {
		option(c)
	}

	if c.config == nil {
		c.config = NewConfig()
	}

	return c
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// validateRequest runs client-side validation on a request DTO. Types
// without validation tags (including caller-supplied byot types) pass.
func (c *Client) validateRequest(req any) error {
	err := c.validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Not a struct: nothing to validate.
		return nil
	}

	return invalidArgumentf("%v", err)
}

// newRequest assembles an HTTP request with merged config and per-call
// headers and query parameters.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, opts *requestOptions) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.URL(path), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, values := range c.config.Headers() {
		req.Header[key] = values
	}
	for key, values := range opts.headers {
		req.Header[key] = values
	}

	query := req.URL.Query()
	for key, values := range c.config.Query() {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	for key, values := range opts.query {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	req.URL.RawQuery = query.Encode()

	return req, nil
}

// execute performs a single request/response round trip and maps HTTP
// failures onto the error taxonomy. No retries are attempted here.
func (c *Client) execute(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return body, nil
	}

	if apiErr, ok := ParseAPIError(body, resp.StatusCode); ok {
		return nil, apiErr
	}
	return nil, &RequestError{StatusCode: resp.StatusCode, Body: body}
}

// decode unmarshals a success body into the declared return type.
func decode[R any](ctx context.Context, body []byte) (R, error) {
	var out R
	if err := json.Unmarshal(body, &out); err != nil {
		slog.ErrorContext(ctx, "failed deserialization of api response", "content", string(body))
		return out, &DeserializationError{Err: err, Content: string(body)}
	}
	return out, nil
}

// The exported verbs below are generic over caller-chosen request and
// response types. The built-in resource methods are thin calls into the
// same bodies with the library's own DTOs; substituting your own types
// requires only that requests marshal and responses unmarshal as JSON.

// Get performs a GET against path and decodes the response into R.
func Get[R any](ctx context.Context, c *Client, path string, opts ...RequestOption) (R, error) {
	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodGet, path, nil, options)
	if err != nil {
		var zero R
		return zero, err
	}

	body, err := c.execute(req)
	if err != nil {
		var zero R
		return zero, err
	}

	return decode[R](ctx, body)
}

// Post serializes request as JSON, performs a POST against path and decodes
// the response into R.
func Post[Req, R any](ctx context.Context, c *Client, path string, request Req, opts ...RequestOption) (R, error) {
	var zero R

	payload, err := json.Marshal(request)
	if err != nil {
		return zero, invalidArgumentf("marshaling request: %v", err)
	}

	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), options)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.execute(req)
	if err != nil {
		return zero, err
	}

	return decode[R](ctx, body)
}

// Delete performs a DELETE against path and decodes the response into R.
func Delete[R any](ctx context.Context, c *Client, path string, opts ...RequestOption) (R, error) {
	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, options)
	if err != nil {
		var zero R
		return zero, err
	}

	body, err := c.execute(req)
	if err != nil {
		var zero R
		return zero, err
	}

	return decode[R](ctx, body)
}

// FormEncoder is the capability bound for multipart requests: a type that
// can write itself as multipart/form-data fields and file parts.
type FormEncoder interface {
	EncodeForm(w *form.Writer) error
}

// PostForm encodes request as multipart/form-data, performs a POST against
// path and decodes the response into R.
func PostForm[R any](ctx context.Context, c *Client, path string, request FormEncoder, opts ...RequestOption) (R, error) {
	var zero R

	var buf bytes.Buffer
	fw := form.NewWriter(&buf)
	if err := request.EncodeForm(fw); err != nil {
		var fileErr *FileError
		if errors.As(err, &fileErr) {
			return zero, err
		}
		return zero, invalidArgumentf("encoding form: %v", err)
	}
	if err := fw.Close(); err != nil {
		return zero, invalidArgumentf("closing form: %v", err)
	}

	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf, options)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", fw.FormDataContentType())

	body, err := c.execute(req)
	if err != nil {
		return zero, err
	}

	return decode[R](ctx, body)
}

// getRaw performs a GET and returns the raw body plus its content type, for
// binary download endpoints.
func (c *Client) getRaw(ctx context.Context, path string, opts ...RequestOption) ([]byte, string, error) {
	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodGet, path, nil, options)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if apiErr, ok := ParseAPIError(body, resp.StatusCode); ok {
			return nil, "", apiErr
		}
		return nil, "", &RequestError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// postRaw serializes request as JSON, performs a POST and returns the raw
// body plus its content type, for binary generation endpoints.
func (c *Client) postRaw(ctx context.Context, path string, request any, opts ...RequestOption) ([]byte, string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, "", invalidArgumentf("marshaling request: %v", err)
	}

	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), options)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if apiErr, ok := ParseAPIError(body, resp.StatusCode); ok {
			return nil, "", apiErr
		}
		return nil, "", &RequestError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// postFormRaw encodes request as multipart/form-data, performs a POST and
// returns the raw body plus its content type, for endpoints whose response
// format is caller-selected (e.g. srt or vtt transcripts).
func (c *Client) postFormRaw(ctx context.Context, path string, request FormEncoder, opts ...RequestOption) ([]byte, string, error) {
	var buf bytes.Buffer
	fw := form.NewWriter(&buf)
	if err := request.EncodeForm(fw); err != nil {
		var fileErr *FileError
		if errors.As(err, &fileErr) {
			return nil, "", err
		}
		return nil, "", invalidArgumentf("encoding form: %v", err)
	}
	if err := fw.Close(); err != nil {
		return nil, "", invalidArgumentf("closing form: %v", err)
	}

	options := newRequestOptions(opts)

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf, options)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", fw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if apiErr, ok := ParseAPIError(body, resp.StatusCode); ok {
			return nil, "", apiErr
		}
		return nil, "", &RequestError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// PostStream serializes request as JSON with "stream" forced to true,
// performs a POST against path and returns the lazy sequence of decoded
// chunks. The sequence is infinite until the server ends the stream with
// the [DONE] marker, the consumer stops iterating, or a terminal error is
// yielded; recoverable connection failures reconnect under the client's
// stream retry policy.
//
// The stream flag is injected into the serialized body rather than set on a
// struct field so the same body serves caller-supplied request types.
func PostStream[Req, Chunk any](ctx context.Context, c *Client, path string, request Req, opts ...RequestOption) (iter.Seq2[*Chunk, error], error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, invalidArgumentf("marshaling request: %v", err)
	}

	payload, err = sjson.SetBytes(payload, "stream", true)
	if err != nil {
		return nil, invalidArgumentf("setting stream flag: %v", err)
	}

	options := newRequestOptions(opts)

	// The request is rebuilt per connection attempt so the body can be
	// replayed on reconnect.
	newRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), options)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	source := sse.NewEventSource(c.httpClient, c.newPolicy(), newRequest)

	return decodeStream[Chunk](ctx, source), nil
}

// StreamEvent is one raw server-sent event from an endpoint whose payload
// type varies per event name, such as assistant run streams.
type StreamEvent struct {
	Type string
	Data json.RawMessage
}

// PostStreamRaw is PostStream for endpoints that multiplex several payload
// types over one stream. Events are yielded undecoded together with their
// event name; error frames and the [DONE] marker are still handled here.
func PostStreamRaw[Req any](ctx context.Context, c *Client, path string, request Req, opts ...RequestOption) (iter.Seq2[*StreamEvent, error], error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, invalidArgumentf("marshaling request: %v", err)
	}

	payload, err = sjson.SetBytes(payload, "stream", true)
	if err != nil {
		return nil, invalidArgumentf("setting stream flag: %v", err)
	}

	options := newRequestOptions(opts)

	newRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), options)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	source := sse.NewEventSource(c.httpClient, c.newPolicy(), newRequest)

	return func(yield func(*StreamEvent, error) bool) {
		for event, err := range source.Events(ctx) {
			if err != nil {
				yield(nil, streamError(err))
				return
			}

			if event.Data == doneMarker {
				return
			}

			if event.Type == "error" {
				if apiErr, ok := ParseAPIError([]byte(event.Data), 0); ok {
					yield(nil, apiErr)
					return
				}
				yield(nil, fmt.Errorf("stream failed: %s", event.Data))
				return
			}

			if !yield(&StreamEvent{Type: event.Type, Data: json.RawMessage(event.Data)}, nil) {
				return
			}
		}
	}, nil
}

// doneMarker terminates an OpenAI SSE stream.
const doneMarker = "[DONE]"

// decodeStream converts raw SSE frames into typed chunks. Error frames
// (event: error carrying an error envelope) and terminal transport errors
// are mapped onto the error taxonomy.
func decodeStream[Chunk any](ctx context.Context, source *sse.EventSource) iter.Seq2[*Chunk, error] {
	return func(yield func(*Chunk, error) bool) {
		for event, err := range source.Events(ctx) {
			if err != nil {
				yield(nil, streamError(err))
				return
			}

			if event.Data == doneMarker {
				return
			}

			if event.Type == "error" {
				if apiErr, ok := ParseAPIError([]byte(event.Data), 0); ok {
					yield(nil, apiErr)
					return
				}
				yield(nil, fmt.Errorf("stream failed: %s", event.Data))
				return
			}

			var chunk Chunk
			if err := json.Unmarshal([]byte(event.Data), &chunk); err != nil {
				slog.ErrorContext(ctx, "failed deserialization of stream event", "content", event.Data)
				yield(nil, &DeserializationError{Err: err, Content: event.Data})
				return
			}

			if !yield(&chunk, nil) {
				return
			}
		}
	}
}

// streamError maps a terminal event source error onto the error taxonomy,
// recovering the vendor error envelope when the failed connection carried
// one.
func streamError(err error) error {
	var statusErr *sse.StatusError
	if errors.As(err, &statusErr) {
		if apiErr, ok := ParseAPIError(statusErr.Body, statusErr.StatusCode); ok {
			return apiErr
		}
		return &RequestError{StatusCode: statusErr.StatusCode, Body: statusErr.Body}
	}

	return fmt.Errorf("stream failed: %w", err)
}
