package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{
			name: "full",
			err:  APIError{Message: "Invalid model", Type: "invalid_request_error", Param: "model", Code: "model_not_found"},
			want: "invalid_request_error: Invalid model (param: model) (code: model_not_found)",
		},
		{
			name: "message only",
			err:  APIError{Message: "something broke"},
			want: "something broke",
		},
		{
			name: "no param",
			err:  APIError{Message: "quota exceeded", Type: "insufficient_quota", Code: "insufficient_quota"},
			want: "insufficient_quota: quota exceeded (code: insufficient_quota)",
		},
		{
			name: "numeric code",
			err:  APIError{Message: "rate limited", Type: "rate_limit_error", Code: float64(429)},
			want: "rate_limit_error: rate limited (code: 429)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParseAPIError(t *testing.T) {
	body := []byte(`{
		"error": {
			"message": "You exceeded your current quota, please check your plan and billing details.",
			"type": "insufficient_quota",
			"param": null,
			"code": "insufficient_quota"
		}
	}`)

	apiErr, ok := ParseAPIError(body, 429)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeInsufficientQuota, apiErr.Type)
	assert.Equal(t, "insufficient_quota", apiErr.Code)
	assert.Nil(t, apiErr.Param)
	assert.Equal(t, 429, apiErr.StatusCode)
}

func TestParseAPIErrorRejectsNonEnvelopes(t *testing.T) {
	for _, body := range []string{
		"",
		"<html>502 Bad Gateway</html>",
		`{"message":"not nested"}`,
		`{"error":"plain string"}`,
	} {
		_, ok := ParseAPIError([]byte(body), 502)
		assert.False(t, ok, "body %q", body)
	}
}

func TestRequestErrorFormatting(t *testing.T) {
	err := &RequestError{StatusCode: 502, Body: []byte("bad gateway\n")}
	assert.Equal(t, "request failed with status 502: bad gateway", err.Error())

	empty := &RequestError{StatusCode: 500}
	assert.Equal(t, "request failed with status 500", empty.Error())
}

func TestDeserializationErrorUnwraps(t *testing.T) {
	inner := assert.AnError
	err := &DeserializationError{Err: inner, Content: "{"}
	assert.ErrorIs(t, err, inner)
}
