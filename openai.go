// Package openai is a typed client for the OpenAI REST and streaming APIs.
//
// A Client is cheap to construct and safe for concurrent use. Each API
// surface hangs off an accessor:
//
//	client := openai.NewClient()
//	completion, err := client.Chat().Create(ctx, openai.CreateChatCompletionRequest{
//		Model:    "gpt-4o",
//		Messages: []openai.ChatCompletionMessage{openai.UserMessage("hello")},
//	})
//
// Streaming calls return iter.Seq2 sequences that lazily decode server-sent
// events and transparently reconnect after transient failures:
//
//	stream, err := client.Chat().CreateStream(ctx, req)
//	for chunk, err := range stream {
//		...
//	}
//
// Endpoints the library does not model, or request fields it does not
// carry, remain reachable through the generic verbs (Get, Post, Delete,
// PostForm, PostStream) with caller-supplied request and response types.
package openai
