package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_ORG_ID", "org-env")
	t.Setenv("OPENAI_PROJECT_ID", "proj-env")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.internal/v1/")

	cfg := NewConfig()

	assert.Equal(t, "sk-env", cfg.APIKey())
	assert.Equal(t, "https://proxy.internal/v1", cfg.BaseURL())

	headers := cfg.Headers()
	assert.Equal(t, "Bearer sk-env", headers.Get("Authorization"))
	assert.Equal(t, "org-env", headers.Get(OrganizationHeader))
	assert.Equal(t, "proj-env", headers.Get(ProjectHeader))
}

func TestNewConfigOptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := NewConfig(
		WithAPIKey("sk-explicit"),
		WithBaseURL("https://alt.example.com/v1"),
		WithHeader("X-Custom", "yes"),
	)

	assert.Equal(t, "sk-explicit", cfg.APIKey())
	assert.Equal(t, "https://alt.example.com/v1/chat/completions", cfg.URL("/chat/completions"))
	assert.Equal(t, "yes", cfg.Headers().Get("X-Custom"))
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_ORG_ID", "")
	t.Setenv("OPENAI_PROJECT_ID", "")

	cfg := NewConfig()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL())
	assert.Nil(t, cfg.Query())
	assert.Empty(t, cfg.Headers().Get(OrganizationHeader))
}

func TestAzureConfig(t *testing.T) {
	cfg := NewAzureConfig("https://my-resource.openai.azure.com/",
		WithAzureAPIKey("azure-key"),
		WithAzureAPIVersion("2024-10-21"),
		WithAzureDeployment("gpt-4o-prod"),
	)

	assert.Equal(t,
		"https://my-resource.openai.azure.com/openai/deployments/gpt-4o-prod/chat/completions",
		cfg.URL("/chat/completions"))

	headers := cfg.Headers()
	assert.Equal(t, "azure-key", headers.Get("api-key"))
	assert.Empty(t, headers.Get("Authorization"))

	assert.Equal(t, "2024-10-21", cfg.Query().Get("api-version"))
}
