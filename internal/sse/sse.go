// Package sse implements the client side of the Server-Sent-Events protocol:
// a frame parser for text/event-stream bodies and a reconnecting event source
// that re-establishes dropped connections under a pluggable retry policy.
package sse

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"time"
)

// Event is a single parsed SSE frame.
type Event struct {
	// ID is the value of the last "id" field seen, if any.
	ID string
	// Type is the event name from the "event" field. Empty means the
	// default "message" event.
	Type string
	// Data is the concatenation of all "data" field lines, joined by "\n".
	Data string
	// Retry is the server-suggested reconnection time from the most recent
	// "retry" field not yet reported, or zero. Servers may send the field in
	// a standalone frame, so it can precede the frame it is delivered on.
	Retry time.Duration
}

// maxLineSize bounds a single SSE line. Chat completion chunks are small,
// but base64 image generation events can reach several megabytes.
const maxLineSize = 16 * 1024 * 1024

// Scanner incrementally parses SSE frames from a stream body.
type Scanner struct {
	scanner *bufio.Scanner

	lastID string
	retry  time.Duration
}

// NewScanner returns a Scanner reading frames from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Scanner{scanner: sc}
}

// Next returns the next complete frame. It returns io.EOF when the stream
// ends cleanly at a frame boundary, and the underlying read error otherwise.
// Frames without any "data" field (e.g. comment-only keep-alives) are
// skipped.
func (s *Scanner) Next() (Event, error) {
	event := Event{ID: s.lastID}
	var data []string

	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		// Tolerate CRLF line endings
		line = bytes.TrimSuffix(line, []byte("\r"))

		if len(line) == 0 {
			// Blank line dispatches the accumulated frame
			if len(data) == 0 {
				// Comment-only or empty frame, keep reading
				event = Event{ID: s.lastID}
				continue
			}
			event.Data = string(bytes.Join(stringsToBytes(data), []byte("\n")))
			event.Retry = s.retry
			s.retry = 0
			return event, nil
		}

		if line[0] == ':' {
			continue
		}

		field, value, _ := bytes.Cut(line, []byte(":"))
		// A single leading space in the value is part of the delimiter
		value = bytes.TrimPrefix(value, []byte(" "))

		switch string(field) {
		case "data":
			data = append(data, string(value))
		case "event":
			event.Type = string(value)
		case "id":
			// Per spec, IDs containing NUL are ignored
			if !bytes.ContainsRune(value, 0) {
				s.lastID = string(value)
				event.ID = s.lastID
			}
		case "retry":
			// Applied at field-parse time so a retry arriving in a frame
			// with no data (which is never dispatched) is not lost.
			if ms, err := strconv.ParseInt(string(value), 10, 64); err == nil && ms >= 0 {
				s.retry = time.Duration(ms) * time.Millisecond
			}
		default:
			// Unknown fields are ignored
		}
	}

	if err := s.scanner.Err(); err != nil {
		return Event{}, err
	}

	if len(data) > 0 {
		// Stream ended without the final dispatching blank line; the frame
		// is incomplete and must not be surfaced.
		return Event{}, io.ErrUnexpectedEOF
	}

	return Event{}, io.EOF
}

// LastEventID returns the most recent "id" field value, used for the
// Last-Event-ID header on reconnection.
func (s *Scanner) LastEventID() string {
	return s.lastID
}

// RetryInterval returns a parsed "retry" value that has not been delivered
// on a dispatched event, or zero. It covers streams that end after a
// standalone retry frame with no data frame following it.
func (s *Scanner) RetryInterval() time.Duration {
	return s.retry
}

func stringsToBytes(in []string) [][]byte {
	out := make([][]byte, len(in))
	for i, s := range in {
		out[i] = []byte(s)
	}
	return out
}
