package openai

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingDecodesFloatArray(t *testing.T) {
	var e Embedding
	require.NoError(t, json.Unmarshal([]byte(`{"object":"embedding","index":2,"embedding":[0.25,-1.5,3]}`), &e))

	assert.Equal(t, 2, e.Index)
	assert.Equal(t, []float64{0.25, -1.5, 3}, e.Values)
}

func TestEmbeddingDecodesBase64(t *testing.T) {
	// Pack float32 values little-endian the way encoding_format=base64
	// returns them.
	want := []float32{0.5, -2.25, 1024}
	raw := make([]byte, 0, len(want)*4)
	for _, v := range want {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	var e Embedding
	require.NoError(t, json.Unmarshal([]byte(`{"object":"embedding","index":0,"embedding":"`+encoded+`"}`), &e))

	require.Len(t, e.Values, len(want))
	for i, v := range want {
		assert.InDelta(t, float64(v), e.Values[i], 1e-9, "value %d", i)
	}
}

func TestEmbeddingRejectsTruncatedBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})

	var e Embedding
	err := json.Unmarshal([]byte(`{"object":"embedding","index":0,"embedding":"`+encoded+`"}`), &e)
	assert.ErrorContains(t, err, "multiple of 4")
}

func TestEmbeddingsCreate(t *testing.T) {
	tr := &recordingTransport{responses: []cannedResponse{{
		status: 200,
		body:   `{"object":"list","model":"text-embedding-3-small","data":[{"object":"embedding","index":0,"embedding":[0.1,0.2]}],"usage":{"prompt_tokens":4,"total_tokens":4}}`,
	}}}
	c := newTestClient(tr)

	resp, err := c.Embeddings().Create(t.Context(), CreateEmbeddingRequest{
		Model: "text-embedding-3-small",
		Input: "hello world",
	})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, []float64{0.1, 0.2}, resp.Data[0].Values)
	assert.Equal(t, "/v1/embeddings", tr.requests[0].URL.Path)
}
