package openai

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"

	"github.com/florianilch/openai-client-go/internal/sse"
)

// StreamRetryPolicy decides whether a dropped stream connection is
// re-established and how long to wait. Implement it to plug a custom policy
// into WithStreamRetryPolicy.
type StreamRetryPolicy = sse.RetryPolicy

// StreamingBackoff is the default StreamRetryPolicy: exponential delays
// between reconnection attempts, with retries restricted to failures that
// are plausibly transient at the transport level.
//
// Classification:
//   - HTTP 5xx while connecting: retryable.
//   - HTTP 429 while connecting: retryable, unless the error envelope in the
//     response body reports insufficient_quota; quota exhaustion reuses the
//     rate-limit status but never resolves by waiting.
//   - Connection-level drops without a status (reset, EOF mid-stream):
//     retryable.
//   - Everything else (other statuses, malformed streams, cancellation):
//     terminal.
//
// Delay progression: the first retry waits InitialInterval; each subsequent
// retry multiplies the previous delay by Multiplier, clamped at
// MaxElapsedTime when set.
//
// A StreamingBackoff is not safe for concurrent use; the client constructs a
// fresh policy per stream via the factory configured on the client.
type StreamingBackoff struct {
	initialInterval time.Duration
	multiplier      float64
	maxElapsedTime  time.Duration
}

// NewStreamingBackoff derives a streaming retry policy from an
// ExponentialBackOff's interval parameters. maxElapsedTime caps individual
// delays; zero means uncapped.
func NewStreamingBackoff(b *backoff.ExponentialBackOff, maxElapsedTime time.Duration) *StreamingBackoff {
	return &StreamingBackoff{
		initialInterval: b.InitialInterval,
		multiplier:      b.Multiplier,
		maxElapsedTime:  maxElapsedTime,
	}
}

// defaultMaxElapsedTime mirrors the historical ExponentialBackOff default.
const defaultMaxElapsedTime = 15 * time.Minute

// DefaultStreamingBackoff returns a policy with the backoff package's
// default intervals (500ms initial, 1.5x multiplier) and a 15 minute cap.
func DefaultStreamingBackoff() *StreamingBackoff {
	return NewStreamingBackoff(backoff.NewExponentialBackOff(), defaultMaxElapsedTime)
}

// Retry implements StreamRetryPolicy.
func (b *StreamingBackoff) Retry(err error, retries int, lastDelay time.Duration) (time.Duration, bool) {
	if !b.shouldRetry(err) {
		return 0, false
	}

	if retries == 0 {
		return b.initialInterval, true
	}

	delay := time.Duration(float64(lastDelay) * b.multiplier)
	if b.maxElapsedTime > 0 && delay > b.maxElapsedTime {
		delay = b.maxElapsedTime
	}
	return delay, true
}

// SetReconnectionTime implements StreamRetryPolicy. The server-suggested
// interval becomes the new initial delay; the cap is raised if needed so it
// is never smaller than the new interval.
func (b *StreamingBackoff) SetReconnectionTime(d time.Duration) {
	b.initialInterval = d
	if b.maxElapsedTime > 0 && b.maxElapsedTime < d {
		b.maxElapsedTime = d
	}
}

func (b *StreamingBackoff) shouldRetry(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *sse.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 500 {
			return true
		}
		if statusErr.StatusCode == 429 {
			return gjson.GetBytes(statusErr.Body, "error.type").String() != ErrorTypeInsufficientQuota
		}
		return false
	}

	var contentTypeErr *sse.ContentTypeError
	if errors.As(err, &contentTypeErr) {
		return false
	}

	// No status to inspect: a connection-level drop. Reconnecting is the
	// whole point of the SSE protocol, so these retry.
	return true
}
