package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Error type values the OpenAI API is known to return in the error
// envelope's "type" field.
const (
	ErrorTypeInvalidRequest    = "invalid_request_error"
	ErrorTypeAuthentication    = "authentication_error"
	ErrorTypePermission        = "permission_denied"
	ErrorTypeRateLimit         = "rate_limit_error"
	ErrorTypeInsufficientQuota = "insufficient_quota"
	ErrorTypeServer            = "server_error"
	ErrorTypeAPI               = "api_error"
)

// APIError is the structured error the API returns inside the
// {"error": {...}} envelope on failed calls.
//
// Param and Code are loosely typed: the vendor documents them as nullable
// and does not guarantee their shape (codes appear both as strings and as
// numbers in the wild), so they decode into untyped JSON values.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Param   any    `json:"param,omitempty"`
	Code    any    `json:"code,omitempty"`

	// StatusCode is the HTTP status the envelope arrived with. Not part of
	// the envelope itself.
	StatusCode int `json:"-"`
}

// Error formats as "{type}: {message} (param: {param}) (code: {code})",
// omitting missing fields.
func (e *APIError) Error() string {
	var parts []string

	if e.Type != "" {
		parts = append(parts, e.Type+":")
	}

	parts = append(parts, e.Message)

	if e.Param != nil {
		parts = append(parts, fmt.Sprintf("(param: %v)", e.Param))
	}
	if e.Code != nil {
		parts = append(parts, fmt.Sprintf("(code: %v)", e.Code))
	}

	return strings.Join(parts, " ")
}

// ErrorEnvelope wraps the error object nested under the "error" JSON key.
type ErrorEnvelope struct {
	Error *APIError `json:"error"`
}

// ParseAPIError extracts a structured APIError from a failed response body.
// ok is false when the body does not carry a well-formed envelope, in which
// case callers fall back to RequestError.
func ParseAPIError(body []byte, statusCode int) (*APIError, bool) {
	// Cheap structural check before committing to a full unmarshal; failure
	// bodies from proxies and load balancers are frequently not JSON at all.
	if !gjson.GetBytes(body, "error.message").Exists() {
		return nil, false
	}

	var envelope ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return nil, false
	}

	envelope.Error.StatusCode = statusCode
	return envelope.Error, true
}

// RequestError reports an HTTP failure whose body could not be parsed as a
// vendor error envelope.
type RequestError struct {
	StatusCode int
	Body       []byte
}

func (e *RequestError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, body)
}

// DeserializationError reports a response body that did not match the
// expected schema. Content carries the offending payload for diagnosis.
type DeserializationError struct {
	Err     error
	Content string
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to deserialize api response: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// InvalidArgumentError reports client-side validation failure before any
// request is made.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid args: " + e.Reason
}

func invalidArgumentf(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// FileError reports a local filesystem failure in the save/download and
// upload helpers.
type FileError struct {
	Op   string // "read", "create" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
