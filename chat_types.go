package openai

import (
	"encoding/json"
	"fmt"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Finish reasons reported in choices.
const (
	FinishReasonStop          = "stop"
	FinishReasonLength        = "length"
	FinishReasonToolCalls     = "tool_calls"
	FinishReasonContentFilter = "content_filter"
)

// CreateChatCompletionRequest is the request for Chat.Create and
// Chat.CreateStream.
type CreateChatCompletionRequest struct {
	Model    string                  `json:"model" validate:"required"`
	Messages []ChatCompletionMessage `json:"messages" validate:"required,min=1"`

	Audio               *ChatAudioConfig     `json:"audio,omitempty"`
	FrequencyPenalty    *float64             `json:"frequency_penalty,omitempty"`
	LogitBias           map[string]int       `json:"logit_bias,omitempty"`
	Logprobs            *bool                `json:"logprobs,omitempty"`
	MaxCompletionTokens *int                 `json:"max_completion_tokens,omitempty"`
	Metadata            Metadata             `json:"metadata,omitempty"`
	Modalities          []string             `json:"modalities,omitempty"`
	N                   *int                 `json:"n,omitempty"`
	ParallelToolCalls   *bool                `json:"parallel_tool_calls,omitempty"`
	Prediction          *PredictionContent   `json:"prediction,omitempty"`
	PresencePenalty     *float64             `json:"presence_penalty,omitempty"`
	ReasoningEffort     string               `json:"reasoning_effort,omitempty"`
	ResponseFormat      *ResponseFormat      `json:"response_format,omitempty"`
	Seed                *int64               `json:"seed,omitempty"`
	ServiceTier         string               `json:"service_tier,omitempty"`
	Stop                []string             `json:"stop,omitempty"`
	Store               *bool                `json:"store,omitempty"`
	Stream              *bool                `json:"stream,omitempty"`
	StreamOptions       *StreamOptions       `json:"stream_options,omitempty"`
	Temperature         *float64             `json:"temperature,omitempty"`
	ToolChoice          any                  `json:"tool_choice,omitempty"`
	Tools               []ChatCompletionTool `json:"tools,omitempty"`
	TopLogprobs         *int                 `json:"top_logprobs,omitempty"`
	TopP                *float64             `json:"top_p,omitempty"`
	User                string               `json:"user,omitempty"`
	WebSearchOptions    *WebSearchOptions    `json:"web_search_options,omitempty"`
}

// StreamOptions tunes streaming responses.
type StreamOptions struct {
	// IncludeUsage makes the final chunk before [DONE] carry usage for the
	// whole request.
	IncludeUsage bool `json:"include_usage,omitempty"`
}

// ChatAudioConfig requests audio output.
type ChatAudioConfig struct {
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// PredictionContent supplies predicted output for latency optimization.
type PredictionContent struct {
	Type    string             `json:"type"`
	Content ChatMessageContent `json:"content"`
}

// WebSearchOptions enables the built-in web search tool.
type WebSearchOptions struct {
	SearchContextSize string             `json:"search_context_size,omitempty"`
	UserLocation      *ApproximateRegion `json:"user_location,omitempty"`
}

// ApproximateRegion localizes web search results.
type ApproximateRegion struct {
	Type        string `json:"type"`
	Approximate struct {
		City     string `json:"city,omitempty"`
		Country  string `json:"country,omitempty"`
		Region   string `json:"region,omitempty"`
		Timezone string `json:"timezone,omitempty"`
	} `json:"approximate"`
}

// ChatCompletionMessage is one conversation turn in a request. The shape
// varies by role; use the constructors (SystemMessage, UserMessage,
// AssistantMessage, ToolMessage) for the common forms.
type ChatCompletionMessage struct {
	Role    string             `json:"role"`
	Content ChatMessageContent `json:"content"`

	// Name disambiguates participants sharing a role.
	Name string `json:"name,omitempty"`

	// Assistant-only fields.
	Refusal   string     `json:"refusal,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Audio     *AudioRef  `json:"audio,omitempty"`

	// ToolCallID links a tool message to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// AudioRef references a previous assistant audio output.
type AudioRef struct {
	ID string `json:"id"`
}

// SystemMessage builds a system-role message.
func SystemMessage(text string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleSystem, Content: TextContent(text)}
}

// DeveloperMessage builds a developer-role message (replaces system on
// o-series models).
func DeveloperMessage(text string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleDeveloper, Content: TextContent(text)}
}

// UserMessage builds a user-role text message.
func UserMessage(text string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleUser, Content: TextContent(text)}
}

// UserMessageParts builds a user-role message from multiple content parts
// (text, images, audio, files).
func UserMessageParts(parts ...ContentPart) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleUser, Content: ChatMessageContent{Parts: parts}}
}

// AssistantMessage builds an assistant-role text message, for replaying
// prior turns.
func AssistantMessage(text string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleAssistant, Content: TextContent(text)}
}

// ToolMessage builds a tool-role message answering the given tool call.
func ToolMessage(toolCallID, content string) ChatCompletionMessage {
	return ChatCompletionMessage{Role: RoleTool, Content: TextContent(content), ToolCallID: toolCallID}
}

// ChatMessageContent is either a plain string or a list of typed content
// parts on the wire. Exactly one of Text/Parts is set; a plain string
// serializes as a JSON string, parts as an array.
type ChatMessageContent struct {
	Text  string
	Parts []ContentPart
}

// TextContent wraps a plain string as message content.
func TextContent(text string) ChatMessageContent {
	return ChatMessageContent{Text: text}
}

// MarshalJSON implements json.Marshaler.
func (c ChatMessageContent) MarshalJSON() ([]byte, error) {
	if len(c.Parts) > 0 {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ChatMessageContent) UnmarshalJSON(data []byte) error {
	*c = ChatMessageContent{}

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &c.Text)
	}
	if data[0] == '[' {
		return json.Unmarshal(data, &c.Parts)
	}

	return fmt.Errorf("message content must be a string or an array of parts")
}

// ContentPart is one element of a multi-part message.
type ContentPart struct {
	Type string `json:"type"`

	Text       string        `json:"text,omitempty"`
	ImageURL   *ImageURLPart `json:"image_url,omitempty"`
	InputAudio *AudioPart    `json:"input_audio,omitempty"`
	File       *FilePart     `json:"file,omitempty"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImagePart builds an image content part from a URL or data URI.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageURLPart{URL: url}}
}

// ImageURLPart references an image by URL or data URI.
type ImageURLPart struct {
	URL string `json:"url"`
	// Detail controls vision fidelity: "low", "high" or "auto".
	Detail string `json:"detail,omitempty"`
}

// AudioPart carries base64 audio input.
type AudioPart struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

// FilePart references an uploaded file or carries inline file data.
type FilePart struct {
	FileID   string `json:"file_id,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
}

// ChatCompletionTool declares a function the model may call.
type ChatCompletionTool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// FunctionTool wraps a function definition as a tool declaration.
func FunctionTool(fn FunctionDefinition) ChatCompletionTool {
	return ChatCompletionTool{Type: "function", Function: fn}
}

// FunctionDefinition describes a callable function with a JSON Schema for
// its arguments.
type FunctionDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
	Strict      *bool           `json:"strict,omitempty"`
}

// ToolCall is the model's request to invoke a declared tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the function and carries its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ResponseFormat selects the output format: "text", "json_object" or
// "json_schema" with an attached schema.
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema constrains structured output.
type JSONSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Schema      json.RawMessage `json:"schema,omitempty"`
	Strict      *bool           `json:"strict,omitempty"`
}

// ChatCompletion is the response for a non-streaming chat call.
type ChatCompletion struct {
	ID                string                 `json:"id"`
	Object            string                 `json:"object"`
	Created           int64                  `json:"created"`
	Model             string                 `json:"model"`
	Choices           []ChatCompletionChoice `json:"choices"`
	Usage             *Usage                 `json:"usage,omitempty"`
	ServiceTier       string                 `json:"service_tier,omitempty"`
	SystemFingerprint string                 `json:"system_fingerprint,omitempty"`
}

// ChatCompletionChoice is one generated alternative.
type ChatCompletionChoice struct {
	Index        int                    `json:"index"`
	Message      ChatResponseMessage    `json:"message"`
	FinishReason string                 `json:"finish_reason"`
	Logprobs     *ChatCompletionLogprob `json:"logprobs,omitempty"`
}

// ChatResponseMessage is the assistant message in a response.
type ChatResponseMessage struct {
	Role        string           `json:"role"`
	Content     string           `json:"content"`
	Refusal     string           `json:"refusal,omitempty"`
	ToolCalls   []ToolCall       `json:"tool_calls,omitempty"`
	Annotations []URLAnnotation  `json:"annotations,omitempty"`
	Audio       *ChatAudioOutput `json:"audio,omitempty"`
}

// URLAnnotation cites a web source in generated content.
type URLAnnotation struct {
	Type        string `json:"type"`
	URLCitation struct {
		URL        string `json:"url"`
		Title      string `json:"title"`
		StartIndex int    `json:"start_index"`
		EndIndex   int    `json:"end_index"`
	} `json:"url_citation"`
}

// ChatAudioOutput carries generated audio and its transcript.
type ChatAudioOutput struct {
	ID         string `json:"id"`
	Data       string `json:"data"`
	ExpiresAt  int64  `json:"expires_at"`
	Transcript string `json:"transcript"`
}

// ChatCompletionLogprob carries token log probabilities for one choice.
type ChatCompletionLogprob struct {
	Content []TokenLogprob `json:"content,omitempty"`
	Refusal []TokenLogprob `json:"refusal,omitempty"`
}

// TokenLogprob is the log probability of a single generated token.
type TokenLogprob struct {
	Token       string        `json:"token"`
	Logprob     float64       `json:"logprob"`
	Bytes       []int         `json:"bytes,omitempty"`
	TopLogprobs []TopLogprob  `json:"top_logprobs,omitempty"`
}

// TopLogprob is one of the most likely alternatives at a position.
type TopLogprob struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
	Bytes   []int   `json:"bytes,omitempty"`
}

// ChatCompletionChunk is one streamed delta of a chat completion.
type ChatCompletionChunk struct {
	ID                string            `json:"id"`
	Object            string            `json:"object"`
	Created           int64             `json:"created"`
	Model             string            `json:"model"`
	Choices           []ChatChunkChoice `json:"choices"`
	Usage             *Usage            `json:"usage,omitempty"`
	ServiceTier       string            `json:"service_tier,omitempty"`
	SystemFingerprint string            `json:"system_fingerprint,omitempty"`
}

// ChatChunkChoice is one choice's delta within a chunk.
type ChatChunkChoice struct {
	Index        int                    `json:"index"`
	Delta        ChatChunkDelta         `json:"delta"`
	FinishReason string                 `json:"finish_reason,omitempty"`
	Logprobs     *ChatCompletionLogprob `json:"logprobs,omitempty"`
}

// ChatChunkDelta carries the incremental fields of a streamed message.
type ChatChunkDelta struct {
	Role      string          `json:"role,omitempty"`
	Content   string          `json:"content,omitempty"`
	Refusal   string          `json:"refusal,omitempty"`
	ToolCalls []ToolCallDelta `json:"tool_calls,omitempty"`
}

// ToolCallDelta is an incremental fragment of a streamed tool call,
// correlated by Index across chunks.
type ToolCallDelta struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Function struct {
		Name      string `json:"name,omitempty"`
		Arguments string `json:"arguments,omitempty"`
	} `json:"function"`
}
