package openai

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func sseHandler(frames ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, frame := range frames {
			fmt.Fprintf(w, "data: %s\n\n", frame)
		}
	}
}

func newStreamTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(
		WithConfig(NewConfig(WithAPIKey("sk-test"), WithBaseURL(server.URL))),
		WithStreamRetryPolicy(func() StreamRetryPolicy {
			return testBackoff(time.Millisecond, 2.0, 10*time.Millisecond)
		}),
	)
}

func TestChatCreateRejectsStreamFlag(t *testing.T) {
	c := NewClient(WithConfig(NewConfig(WithAPIKey("sk-test"))))

	_, err := c.Chat().Create(t.Context(), CreateChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatCompletionMessage{UserMessage("hi")},
		Stream:   Ptr(true),
	})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
	assert.Contains(t, invalidErr.Reason, "CreateStream")
}

func TestChatCreateStreamRejectsStreamFalse(t *testing.T) {
	c := NewClient(WithConfig(NewConfig(WithAPIKey("sk-test"))))

	_, err := c.Chat().CreateStream(t.Context(), CreateChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatCompletionMessage{UserMessage("hi")},
		Stream:   Ptr(false),
	})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
}

func chatChunk(content string) string {
	return fmt.Sprintf(`{"id":"chatcmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":%q}}]}`, content)
}

func TestChatCreateStream(t *testing.T) {
	var requestBody []byte
	handler := func(w http.ResponseWriter, r *http.Request) {
		requestBody, _ = io.ReadAll(r.Body)
		sseHandler(chatChunk("Hel"), chatChunk("lo"), "[DONE]")(w, r)
	}
	c := newStreamTestClient(t, http.HandlerFunc(handler))

	stream, err := c.Chat().CreateStream(t.Context(), CreateChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatCompletionMessage{UserMessage("say hello")},
	})
	require.NoError(t, err)

	var text strings.Builder
	for chunk, err := range stream {
		require.NoError(t, err)
		require.Len(t, chunk.Choices, 1)
		text.WriteString(chunk.Choices[0].Delta.Content)
	}

	assert.Equal(t, "Hello", text.String())
	// The stream flag is injected into the serialized request.
	assert.True(t, gjson.GetBytes(requestBody, "stream").Bool())
}

func TestChatStreamReconnectsAfterServerError(t *testing.T) {
	var calls int
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"The server is overloaded","type":"server_error"}}`))
			return
		}
		sseHandler(chatChunk("ok"), "[DONE]")(w, r)
	}
	c := newStreamTestClient(t, http.HandlerFunc(handler))

	stream, err := c.Chat().CreateStream(t.Context(), CreateChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatCompletionMessage{UserMessage("hi")},
	})
	require.NoError(t, err)

	var contents []string
	for chunk, err := range stream {
		require.NoError(t, err)
		contents = append(contents, chunk.Choices[0].Delta.Content)
	}

	assert.Equal(t, []string{"ok"}, contents)
	assert.Equal(t, 2, calls)
}

func TestChatStreamQuotaExhaustionIsTerminal(t *testing.T) {
	var calls int
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota, please check your plan and billing details.","type":"insufficient_quota","param":null,"code":"insufficient_quota"}}`))
	}
	c := newStreamTestClient(t, http.HandlerFunc(handler))

	stream, err := c.Chat().CreateStream(t.Context(), CreateChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatCompletionMessage{UserMessage("hi")},
	})
	require.NoError(t, err)

	var streamErr error
	for _, err := range stream {
		streamErr = err
		break
	}

	var apiErr *APIError
	require.ErrorAs(t, streamErr, &apiErr)
	assert.Equal(t, ErrorTypeInsufficientQuota, apiErr.Type)
	assert.Equal(t, 1, calls, "quota exhaustion must not be retried")
}

func TestChatStreamErrorFrame(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: error\ndata: {\"error\":{\"message\":\"stream aborted\",\"type\":\"server_error\"}}\n\n")
	}
	c := newStreamTestClient(t, http.HandlerFunc(handler))

	stream, err := c.Chat().CreateStream(t.Context(), CreateChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatCompletionMessage{UserMessage("hi")},
	})
	require.NoError(t, err)

	var streamErr error
	for _, err := range stream {
		streamErr = err
		break
	}

	var apiErr *APIError
	require.ErrorAs(t, streamErr, &apiErr)
	assert.Equal(t, "stream aborted", apiErr.Message)
}

func TestChatMessageContentWire(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		data, err := json.Marshal(UserMessage("plain"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"role":"user","content":"plain"}`, string(data))

		var msg ChatCompletionMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "plain", msg.Content.Text)
	})

	t.Run("parts", func(t *testing.T) {
		msg := UserMessageParts(
			TextPart("what is this?"),
			ImagePart("https://example.com/cat.png"),
		)
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"role": "user",
			"content": [
				{"type":"text","text":"what is this?"},
				{"type":"image_url","image_url":{"url":"https://example.com/cat.png"}}
			]
		}`, string(data))

		var decoded ChatCompletionMessage
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded.Content.Parts, 2)
		assert.Equal(t, "image_url", decoded.Content.Parts[1].Type)
	})

	t.Run("rejects objects", func(t *testing.T) {
		var content ChatMessageContent
		assert.Error(t, json.Unmarshal([]byte(`{"bogus":1}`), &content))
	})
}

func TestChatCompletionDecodesToolCalls(t *testing.T) {
	body := `{
		"id": "chatcmpl-9",
		"object": "chat.completion",
		"model": "gpt-4o",
		"choices": [{
			"index": 0,
			"finish_reason": "tool_calls",
			"message": {
				"role": "assistant",
				"content": null,
				"tool_calls": [{
					"id": "call_1",
					"type": "function",
					"function": {"name": "get_weather", "arguments": "{\"city\":\"Berlin\"}"}
				}]
			}
		}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`

	var completion ChatCompletion
	require.NoError(t, json.Unmarshal([]byte(body), &completion))

	require.Len(t, completion.Choices, 1)
	choice := completion.Choices[0]
	assert.Equal(t, FinishReasonToolCalls, choice.FinishReason)
	require.Len(t, choice.Message.ToolCalls, 1)
	assert.Equal(t, "get_weather", choice.Message.ToolCalls[0].Function.Name)
	assert.Equal(t, 15, completion.Usage.TotalTokens)
}
