package openai

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// DefaultBaseURL is the OpenAI v1 API base url.
const DefaultBaseURL = "https://api.openai.com/v1"

// Header names for optional scoping of API keys.
const (
	OrganizationHeader = "OpenAI-Organization"
	ProjectHeader      = "OpenAI-Project"
	BetaHeader         = "OpenAI-Beta"
)

// Config supplies everything the client needs to address and authenticate a
// call: default headers, URL construction from a path, and default query
// parameters. ClientConfig covers the OpenAI platform, AzureConfig the Azure
// OpenAI Service; implement it for other compatible deployments.
type Config interface {
	// Headers returns the default headers attached to every request.
	Headers() http.Header
	// URL resolves an operation path (e.g. "/chat/completions") to a full URL.
	URL(path string) string
	// Query returns default query parameters attached to every request.
	Query() url.Values
}

// ClientConfig is the Config for the OpenAI platform API.
//
// The zero value is not usable; construct via NewConfig, which reads
// OPENAI_API_KEY, OPENAI_ORG_ID, OPENAI_PROJECT_ID and OPENAI_BASE_URL from
// the environment as defaults before applying options.
type ClientConfig struct {
	baseURL   string
	apiKey    string
	orgID     string
	projectID string
	headers   http.Header
}

var _ Config = (*ClientConfig)(nil)

// ConfigOption mutates a ClientConfig during construction.
type ConfigOption func(*ClientConfig)

// WithAPIKey overrides the API key from the OPENAI_API_KEY environment variable.
func WithAPIKey(apiKey string) ConfigOption {
	return func(c *ClientConfig) {
		c.apiKey = apiKey
	}
}

// WithBaseURL overrides the default API base url.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *ClientConfig) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithOrganization sets the organization attached via the
// OpenAI-Organization header.
func WithOrganization(orgID string) ConfigOption {
	return func(c *ClientConfig) {
		c.orgID = orgID
	}
}

// WithProject sets the project attached via the OpenAI-Project header.
func WithProject(projectID string) ConfigOption {
	return func(c *ClientConfig) {
		c.projectID = projectID
	}
}

// WithHeader adds a default header sent on every request, e.g. beta feature
// opt-in flags.
func WithHeader(key, value string) ConfigOption {
	return func(c *ClientConfig) {
		c.headers.Set(key, value)
	}
}

// NewConfig builds a ClientConfig from environment defaults and the given
// options, in that order.
func NewConfig(options ...ConfigOption) *ClientConfig {
	cfg := &ClientConfig{
		baseURL: DefaultBaseURL,
		headers: http.Header{},
	}

	cfg.loadEnv()

	for _, option := range options {
		option(cfg)
	}

	return cfg
}

// loadEnv reads defaults from OPENAI_* environment variables. Missing
// variables leave the corresponding fields untouched.
func (c *ClientConfig) loadEnv() {
	k := koanf.New(".")

	// Errors reading the environment leave the config on constructor defaults.
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "OPENAI_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "OPENAI_")), value
		},
	}), nil); err != nil {
		return
	}

	if v := k.String("api_key"); v != "" {
		c.apiKey = v
	}
	if v := k.String("org_id"); v != "" {
		c.orgID = v
	}
	if v := k.String("project_id"); v != "" {
		c.projectID = v
	}
	if v := k.String("base_url"); v != "" {
		c.baseURL = strings.TrimRight(v, "/")
	}
}

// APIKey returns the configured API key.
func (c *ClientConfig) APIKey() string {
	return c.apiKey
}

// BaseURL returns the configured API base url.
func (c *ClientConfig) BaseURL() string {
	return c.baseURL
}

// Headers implements Config.
func (c *ClientConfig) Headers() http.Header {
	headers := c.headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}

	headers.Set("Authorization", "Bearer "+c.apiKey)

	if c.orgID != "" {
		headers.Set(OrganizationHeader, c.orgID)
	}
	if c.projectID != "" {
		headers.Set(ProjectHeader, c.projectID)
	}

	return headers
}

// URL implements Config.
func (c *ClientConfig) URL(path string) string {
	return c.baseURL + path
}

// Query implements Config.
func (c *ClientConfig) Query() url.Values {
	return nil
}

// AzureConfig is the Config for the Azure OpenAI Service, which addresses
// deployments under a resource-specific base url and authenticates with an
// api-key header instead of a bearer token.
type AzureConfig struct {
	baseURL      string
	apiKey       string
	apiVersion   string
	deploymentID string
}

var _ Config = (*AzureConfig)(nil)

// AzureConfigOption mutates an AzureConfig during construction.
type AzureConfigOption func(*AzureConfig)

// WithAzureAPIKey sets the api-key header value.
func WithAzureAPIKey(apiKey string) AzureConfigOption {
	return func(c *AzureConfig) {
		c.apiKey = apiKey
	}
}

// WithAzureAPIVersion sets the api-version query parameter.
func WithAzureAPIVersion(apiVersion string) AzureConfigOption {
	return func(c *AzureConfig) {
		c.apiVersion = apiVersion
	}
}

// WithAzureDeployment sets the deployment the client addresses.
func WithAzureDeployment(deploymentID string) AzureConfigOption {
	return func(c *AzureConfig) {
		c.deploymentID = deploymentID
	}
}

// NewAzureConfig builds an AzureConfig for the resource at baseURL, in the
// form "https://your-resource-name.openai.azure.com".
func NewAzureConfig(baseURL string, options ...AzureConfigOption) *AzureConfig {
	cfg := &AzureConfig{
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	for _, option := range options {
		option(cfg)
	}

	return cfg
}

// Headers implements Config.
func (c *AzureConfig) Headers() http.Header {
	headers := http.Header{}
	headers.Set("api-key", c.apiKey)
	return headers
}

// URL implements Config.
func (c *AzureConfig) URL(path string) string {
	return c.baseURL + "/openai/deployments/" + c.deploymentID + path
}

// Query implements Config.
func (c *AzureConfig) Query() url.Values {
	return url.Values{"api-version": []string{c.apiVersion}}
}
