package openai

import (
	"net/http"
	"net/url"
)

// RequestOption customizes a single API call: extra headers (e.g. beta
// feature opt-ins) and extra query parameters.
type RequestOption func(*requestOptions)

type requestOptions struct {
	headers http.Header
	query   url.Values
}

func newRequestOptions(opts []RequestOption) *requestOptions {
	options := &requestOptions{
		headers: http.Header{},
		query:   url.Values{},
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithRequestHeader sets a header on this call only, merged over the
// config's default headers.
func WithRequestHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// WithQueryParam adds a query parameter to this call.
func WithQueryParam(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.query.Add(key, value)
	}
}

// WithQuery adds all values to this call's query string.
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) {
		for key, vals := range values {
			for _, v := range vals {
				o.query.Add(key, v)
			}
		}
	}
}

// WithBetaFeature opts the call into a beta API surface via the OpenAI-Beta
// header, e.g. "assistants=v2".
func WithBetaFeature(value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(BetaHeader, value)
	}
}

// withAssistantsBeta is attached by every Assistants API surface client.
func withAssistantsBeta() RequestOption {
	return WithBetaFeature("assistants=v2")
}
