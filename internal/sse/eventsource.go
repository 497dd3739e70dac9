package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"mime"
	"net/http"
	"time"
)

// RetryPolicy decides whether a dropped stream is re-established and how
// long to wait before the attempt.
//
// retries is the number of reconnection attempts already made for the
// current outage (0 on the first), lastDelay the delay used for the
// previous attempt (zero on the first).
type RetryPolicy interface {
	// Retry returns the delay before the next reconnection attempt, or
	// ok=false when err is terminal.
	Retry(err error, retries int, lastDelay time.Duration) (delay time.Duration, ok bool)

	// SetReconnectionTime adopts a server-suggested reconnection interval
	// (the SSE "retry" field) as the new initial delay.
	SetReconnectionTime(d time.Duration)
}

// StatusError reports a non-success HTTP status while establishing the
// stream connection. Body holds a bounded prefix of the response body so
// callers can inspect the vendor error envelope.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d establishing event stream", e.StatusCode)
}

// ContentTypeError reports a successful response that did not carry a
// text/event-stream body. Always terminal.
type ContentTypeError struct {
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("expected content type text/event-stream, got %q", e.ContentType)
}

// maxErrorBody bounds how much of a failed connection's body is retained
// for error envelope inspection.
const maxErrorBody = 1 << 20

// EventSource delivers SSE frames from a long-lived HTTP response,
// transparently reconnecting after recoverable failures.
type EventSource struct {
	client *http.Client
	policy RetryPolicy

	// newRequest builds a fresh request per connection attempt. The body
	// must be recreated each time, so a factory rather than a request.
	newRequest func(ctx context.Context) (*http.Request, error)
}

// NewEventSource returns an EventSource issuing connections through client.
// newRequest is invoked once per connection attempt.
func NewEventSource(client *http.Client, policy RetryPolicy, newRequest func(ctx context.Context) (*http.Request, error)) *EventSource {
	return &EventSource{
		client:     client,
		policy:     policy,
		newRequest: newRequest,
	}
}

// Events returns the lazy frame sequence. The sequence ends when the
// consumer stops iterating, the server closes the stream cleanly after the
// consumer is done, or a terminal error is yielded. The underlying
// connection is torn down when iteration stops.
func (es *EventSource) Events(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		var (
			retries   int
			lastDelay time.Duration
			lastID    string
		)

		for {
			events, err := es.connect(ctx, lastID)
			if err == nil {
				// Successful connection resets the outage bookkeeping.
				retries = 0
				lastDelay = 0

				err = es.consume(ctx, events, &lastID, yield)
				if err == nil {
					// Consumer stopped iterating
					return
				}
			}

			if ctx.Err() != nil {
				yield(Event{}, ctx.Err())
				return
			}

			delay, retryable := es.policy.Retry(err, retries, lastDelay)
			if !retryable {
				yield(Event{}, err)
				return
			}

			slog.DebugContext(ctx, "reconnecting event stream",
				"retries", retries, "delay", delay, "error", err)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				yield(Event{}, ctx.Err())
				return
			}

			retries++
			lastDelay = delay
		}
	}
}

// connect performs one connection attempt and returns the open body wrapped
// in a Scanner.
func (es *EventSource) connect(ctx context.Context, lastID string) (*bodyScanner, error) {
	req, err := es.newRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("building stream request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if lastID != "" {
		req.Header.Set("Last-Event-ID", lastID)
	}

	resp, err := es.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType != "text/event-stream" {
		_ = resp.Body.Close()
		return nil, &ContentTypeError{ContentType: contentType}
	}

	return &bodyScanner{body: resp.Body, scanner: NewScanner(resp.Body)}, nil
}

// consume yields frames until the consumer stops (returns nil) or the
// stream fails (returns the read error, triggering reconnection logic).
func (es *EventSource) consume(ctx context.Context, bs *bodyScanner, lastID *string, yield func(Event, error) bool) error {
	defer bs.Close()

	for {
		event, err := bs.scanner.Next()
		if err != nil {
			// A retry field in the final frame has no data frame to ride on;
			// apply it before the reconnection delay is computed.
			if d := bs.scanner.RetryInterval(); d > 0 {
				es.policy.SetReconnectionTime(d)
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Server closed the connection; reconnect under policy.
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		if event.ID != "" {
			*lastID = event.ID
		}
		if event.Retry > 0 {
			es.policy.SetReconnectionTime(event.Retry)
		}

		if !yield(event, nil) {
			return nil
		}
	}
}

type bodyScanner struct {
	body    io.ReadCloser
	scanner *Scanner
}

func (bs *bodyScanner) Close() {
	_ = bs.body.Close()
}
