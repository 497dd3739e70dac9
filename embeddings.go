package openai

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

// Embeddings turns text into vector representations for search,
// clustering and classification.
type Embeddings struct {
	client *Client
}

// Embeddings returns the embeddings client.
func (c *Client) Embeddings() *Embeddings {
	return &Embeddings{client: c}
}

// CreateEmbeddingRequest is the request for Embeddings.Create. Input is a
// string, a []string, or token arrays ([]int / [][]int).
type CreateEmbeddingRequest struct {
	Model string `json:"model" validate:"required"`
	Input any    `json:"input" validate:"required"`

	// Dimensions shortens the output vectors on models supporting it.
	Dimensions *int `json:"dimensions,omitempty"`
	// EncodingFormat is "float" (default) or "base64".
	EncodingFormat string `json:"encoding_format,omitempty"`
	User           string `json:"user,omitempty"`
}

// CreateEmbeddingResponse carries one embedding per input.
type CreateEmbeddingResponse struct {
	Object string      `json:"object"`
	Model  string      `json:"model"`
	Data   []Embedding `json:"data"`
	Usage  *Usage      `json:"usage,omitempty"`
}

// Embedding is a single embedding vector. With encoding_format "base64"
// the wire value is a packed little-endian float32 string; Embedding
// decodes both representations into Values.
type Embedding struct {
	Object string    `json:"object"`
	Index  int       `json:"index"`
	Values []float64 `json:"-"`
}

type embeddingWire struct {
	Object    string          `json:"object"`
	Index     int             `json:"index"`
	Embedding json.RawMessage `json:"embedding"`
}

// UnmarshalJSON implements json.Unmarshaler, accepting both float arrays
// and base64-packed float32 vectors.
func (e *Embedding) UnmarshalJSON(data []byte) error {
	var wire embeddingWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	e.Object = wire.Object
	e.Index = wire.Index
	e.Values = nil

	if len(wire.Embedding) == 0 {
		return nil
	}

	if wire.Embedding[0] == '[' {
		return json.Unmarshal(wire.Embedding, &e.Values)
	}

	var encoded string
	if err := json.Unmarshal(wire.Embedding, &encoded); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding base64 embedding: %w", err)
	}
	if len(raw)%4 != 0 {
		return fmt.Errorf("base64 embedding length %d is not a multiple of 4", len(raw))
	}

	e.Values = make([]float64, 0, len(raw)/4)
	for i := 0; i < len(raw); i += 4 {
		bits := binary.LittleEndian.Uint32(raw[i:])
		e.Values = append(e.Values, float64(math.Float32frombits(bits)))
	}
	return nil
}

// MarshalJSON implements json.Marshaler, emitting the float array form.
func (e Embedding) MarshalJSON() ([]byte, error) {
	values := e.Values
	if values == nil {
		values = []float64{}
	}
	return json.Marshal(struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	}{Object: e.Object, Index: e.Index, Embedding: values})
}

// Create creates embedding vectors representing the input.
func (e *Embeddings) Create(ctx context.Context, req CreateEmbeddingRequest, opts ...RequestOption) (*CreateEmbeddingResponse, error) {
	if err := e.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateEmbeddingRequest, CreateEmbeddingResponse](ctx, e.client, "/embeddings", req, opts...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
