package sse

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTransport returns one canned response per connection attempt.
type scriptedTransport struct {
	responses []scriptedResponse
	requests  []*http.Request
}

type scriptedResponse struct {
	status      int
	contentType string
	body        string
}

func (tr *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tr.requests = append(tr.requests, req)

	if len(tr.responses) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	next := tr.responses[0]
	tr.responses = tr.responses[1:]

	contentType := next.contentType
	if contentType == "" {
		contentType = "text/event-stream"
	}

	return &http.Response{
		StatusCode: next.status,
		Body:       io.NopCloser(strings.NewReader(next.body)),
		Header:     http.Header{"Content-Type": []string{contentType}},
		Request:    req,
	}, nil
}

// immediateRetry retries everything up to a fixed number of attempts with no
// delay.
type immediateRetry struct {
	maxRetries     int
	reconnectTimes []time.Duration
}

func (p *immediateRetry) Retry(err error, retries int, lastDelay time.Duration) (time.Duration, bool) {
	return 0, retries < p.maxRetries
}

func (p *immediateRetry) SetReconnectionTime(d time.Duration) {
	p.reconnectTimes = append(p.reconnectTimes, d)
}

// terminalRetry never reconnects.
type terminalRetry struct{}

func (terminalRetry) Retry(err error, retries int, lastDelay time.Duration) (time.Duration, bool) {
	return 0, false
}

func (terminalRetry) SetReconnectionTime(time.Duration) {}

func newTestSource(tr *scriptedTransport, policy RetryPolicy) *EventSource {
	return NewEventSource(
		&http.Client{Transport: tr},
		policy,
		func(ctx context.Context) (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodPost, "http://api.test/v1/stream", strings.NewReader("{}"))
		},
	)
}

func collect(t *testing.T, source *EventSource) ([]Event, error) {
	t.Helper()

	var events []Event
	for event, err := range source.Events(t.Context()) {
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
	return events, nil
}

func TestEventSourceDeliversFrames(t *testing.T) {
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, body: "data: one\n\ndata: two\n\n"},
	}}
	source := newTestSource(tr, terminalRetry{})

	var events []Event
	for event, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		events = append(events, event)
		if len(events) == 2 {
			break
		}
	}

	require.Len(t, events, 2)
	assert.Equal(t, "one", events[0].Data)
	assert.Equal(t, "two", events[1].Data)
}

func TestEventSourceReconnectsAfterServerError(t *testing.T) {
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 503, contentType: "application/json", body: `{"error":{"message":"overloaded"}}`},
		{status: 200, body: "data: recovered\n\n"},
	}}
	source := newTestSource(tr, &immediateRetry{maxRetries: 3})

	for event, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		assert.Equal(t, "recovered", event.Data)
		break
	}

	assert.Len(t, tr.requests, 2)
}

func TestEventSourceReconnectsAfterMidStreamDrop(t *testing.T) {
	// First connection delivers one frame then ends; reconnection resumes.
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, body: "id: evt_1\ndata: first\n\n"},
		{status: 200, body: "data: second\n\n"},
	}}
	source := newTestSource(tr, &immediateRetry{maxRetries: 3})

	var events []Event
	for event, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		events = append(events, event)
		if len(events) == 2 {
			break
		}
	}

	require.Len(t, events, 2)
	assert.Equal(t, "second", events[1].Data)

	// The reconnection attempt resumes from the last seen event ID.
	require.Len(t, tr.requests, 2)
	assert.Empty(t, tr.requests[0].Header.Get("Last-Event-ID"))
	assert.Equal(t, "evt_1", tr.requests[1].Header.Get("Last-Event-ID"))
}

func TestEventSourceTerminalError(t *testing.T) {
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 401, contentType: "application/json", body: `{"error":{"message":"bad key"}}`},
	}}
	source := newTestSource(tr, terminalRetry{})

	_, err := collect(t, source)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "bad key")
}

func TestEventSourceRejectsWrongContentType(t *testing.T) {
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, contentType: "application/json", body: `{"ok":true}`},
	}}
	source := newTestSource(tr, terminalRetry{})

	_, err := collect(t, source)

	var ctErr *ContentTypeError
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, "application/json", ctErr.ContentType)
}

func TestEventSourceAdoptsServerRetryInterval(t *testing.T) {
	policy := &immediateRetry{maxRetries: 1}
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, body: "retry: 3000\ndata: x\n\n"},
	}}
	source := newTestSource(tr, policy)

	for _, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		break
	}

	assert.Equal(t, []time.Duration{3 * time.Second}, policy.reconnectTimes)
}

func TestEventSourceAdoptsRetryFromStandaloneFrame(t *testing.T) {
	policy := &immediateRetry{maxRetries: 1}
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, body: "retry: 3000\n\ndata: x\n\n"},
	}}
	source := newTestSource(tr, policy)

	for _, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		break
	}

	assert.Equal(t, []time.Duration{3 * time.Second}, policy.reconnectTimes)
}

func TestEventSourceAdoptsRetryBeforeReconnecting(t *testing.T) {
	// The retry frame is the last thing the server sends before dropping the
	// connection, so there is no later data frame to deliver it on.
	policy := &immediateRetry{maxRetries: 2}
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, body: "retry: 2000\n\n"},
		{status: 200, body: "data: after\n\n"},
	}}
	source := newTestSource(tr, policy)

	var got string
	for event, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		got = event.Data
		break
	}

	assert.Equal(t, "after", got)
	assert.Equal(t, []time.Duration{2 * time.Second}, policy.reconnectTimes)
}

func TestEventSourceStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	tr := &scriptedTransport{}
	source := newTestSource(tr, &immediateRetry{maxRetries: 100})

	var lastErr error
	for _, err := range source.Events(ctx) {
		lastErr = err
		break
	}

	assert.ErrorIs(t, lastErr, context.Canceled)
}

func TestEventSourceAcceptHeaders(t *testing.T) {
	tr := &scriptedTransport{responses: []scriptedResponse{
		{status: 200, body: "data: x\n\n"},
	}}
	source := newTestSource(tr, terminalRetry{})

	for _, err := range source.Events(t.Context()) {
		require.NoError(t, err)
		break
	}

	require.Len(t, tr.requests, 1)
	assert.Equal(t, "text/event-stream", tr.requests[0].Header.Get("Accept"))
	assert.Equal(t, "no-cache", tr.requests[0].Header.Get("Cache-Control"))
}
