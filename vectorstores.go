package openai

import (
	"context"
	"encoding/json"
)

// VectorStores manages searchable document stores for file search.
type VectorStores struct {
	client *Client
}

// VectorStores returns the vector store client.
func (c *Client) VectorStores() *VectorStores {
	return &VectorStores{client: c}
}

// ChunkingStrategy controls how files are split before embedding. Type is
// "auto" or "static"; Static applies only to the latter.
type ChunkingStrategy struct {
	Type   string `json:"type"`
	Static *struct {
		MaxChunkSizeTokens int `json:"max_chunk_size_tokens"`
		ChunkOverlapTokens int `json:"chunk_overlap_tokens"`
	} `json:"static,omitempty"`
}

// ExpirationPolicy expires a vector store some days after its last use.
type ExpirationPolicy struct {
	Anchor string `json:"anchor"`
	Days   int    `json:"days"`
}

// CreateVectorStoreRequest is the request for VectorStores.Create.
type CreateVectorStoreRequest struct {
	ChunkingStrategy *ChunkingStrategy `json:"chunking_strategy,omitempty"`
	ExpiresAfter     *ExpirationPolicy `json:"expires_after,omitempty"`
	FileIDs          []string          `json:"file_ids,omitempty"`
	Metadata         Metadata          `json:"metadata,omitempty"`
	Name             string            `json:"name,omitempty"`
}

// ModifyVectorStoreRequest is the request for VectorStores.Modify.
type ModifyVectorStoreRequest struct {
	ExpiresAfter *ExpirationPolicy `json:"expires_after,omitempty"`
	Metadata     Metadata          `json:"metadata,omitempty"`
	Name         string            `json:"name,omitempty"`
}

// VectorStore is a document store and its ingestion state.
type VectorStore struct {
	ID         string `json:"id"`
	Object     string `json:"object"`
	CreatedAt  int64  `json:"created_at"`
	Name       string `json:"name"`
	UsageBytes int64  `json:"usage_bytes"`
	FileCounts struct {
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
		Failed     int `json:"failed"`
		Cancelled  int `json:"cancelled"`
		Total      int `json:"total"`
	} `json:"file_counts"`
	Status       string            `json:"status"`
	ExpiresAfter *ExpirationPolicy `json:"expires_after,omitempty"`
	ExpiresAt    int64             `json:"expires_at,omitempty"`
	LastActiveAt int64             `json:"last_active_at,omitempty"`
	Metadata     Metadata          `json:"metadata,omitempty"`
}

// CreateVectorStoreFileRequest attaches an uploaded file to a store.
type CreateVectorStoreFileRequest struct {
	FileID string `json:"file_id" validate:"required"`

	Attributes       map[string]any    `json:"attributes,omitempty"`
	ChunkingStrategy *ChunkingStrategy `json:"chunking_strategy,omitempty"`
}

// VectorStoreFile is a file attachment and its ingestion state.
type VectorStoreFile struct {
	ID               string            `json:"id"`
	Object           string            `json:"object"`
	UsageBytes       int64             `json:"usage_bytes"`
	CreatedAt        int64             `json:"created_at"`
	VectorStoreID    string            `json:"vector_store_id"`
	Status           string            `json:"status"`
	LastError        *APIError         `json:"last_error,omitempty"`
	ChunkingStrategy *ChunkingStrategy `json:"chunking_strategy,omitempty"`
	Attributes       map[string]any    `json:"attributes,omitempty"`
}

// CreateVectorStoreFileBatchRequest attaches several files at once.
type CreateVectorStoreFileBatchRequest struct {
	FileIDs []string `json:"file_ids" validate:"required,min=1"`

	Attributes       map[string]any    `json:"attributes,omitempty"`
	ChunkingStrategy *ChunkingStrategy `json:"chunking_strategy,omitempty"`
}

// VectorStoreFileBatch is a bulk attachment job.
type VectorStoreFileBatch struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	CreatedAt     int64  `json:"created_at"`
	VectorStoreID string `json:"vector_store_id"`
	Status        string `json:"status"`
	FileCounts    struct {
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
		Failed     int `json:"failed"`
		Cancelled  int `json:"cancelled"`
		Total      int `json:"total"`
	} `json:"file_counts"`
}

// SearchVectorStoreRequest is the request for VectorStores.Search. Query
// is a string or a list of strings.
type SearchVectorStoreRequest struct {
	Query any `json:"query" validate:"required"`

	Filters        json.RawMessage `json:"filters,omitempty"`
	MaxNumResults  *int            `json:"max_num_results,omitempty"`
	RankingOptions *struct {
		Ranker         string   `json:"ranker,omitempty"`
		ScoreThreshold *float64 `json:"score_threshold,omitempty"`
	} `json:"ranking_options,omitempty"`
	RewriteQuery *bool `json:"rewrite_query,omitempty"`
}

// VectorStoreSearchResults is the response for VectorStores.Search.
type VectorStoreSearchResults struct {
	Object      string                   `json:"object"`
	SearchQuery json.RawMessage          `json:"search_query"`
	Data        []VectorStoreSearchHit   `json:"data"`
	HasMore     bool                     `json:"has_more"`
	NextPage    string                   `json:"next_page,omitempty"`
}

// VectorStoreSearchHit is one scored chunk.
type VectorStoreSearchHit struct {
	FileID     string         `json:"file_id"`
	Filename   string         `json:"filename"`
	Score      float64        `json:"score"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func vectorStoreOpts(opts []RequestOption) []RequestOption {
	return append([]RequestOption{withAssistantsBeta()}, opts...)
}

// Create creates a vector store.
func (v *VectorStores) Create(ctx context.Context, req CreateVectorStoreRequest, opts ...RequestOption) (*VectorStore, error) {
	if err := v.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateVectorStoreRequest, VectorStore](ctx, v.client, "/vector_stores", req, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the organization's vector stores.
func (v *VectorStores) List(ctx context.Context, query ListQuery, opts ...RequestOption) (*List[VectorStore], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[VectorStore]](ctx, v.client, "/vector_stores", vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Retrieve returns a vector store by ID.
func (v *VectorStores) Retrieve(ctx context.Context, storeID string, opts ...RequestOption) (*VectorStore, error) {
	resp, err := Get[VectorStore](ctx, v.client, "/vector_stores/"+storeID, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modify updates a vector store's name, metadata or expiry.
func (v *VectorStores) Modify(ctx context.Context, storeID string, req ModifyVectorStoreRequest, opts ...RequestOption) (*VectorStore, error) {
	resp, err := Post[ModifyVectorStoreRequest, VectorStore](ctx, v.client, "/vector_stores/"+storeID, req, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a vector store.
func (v *VectorStores) Delete(ctx context.Context, storeID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, v.client, "/vector_stores/"+storeID, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search runs a semantic query over a vector store's chunks.
func (v *VectorStores) Search(ctx context.Context, storeID string, req SearchVectorStoreRequest, opts ...RequestOption) (*VectorStoreSearchResults, error) {
	if err := v.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[SearchVectorStoreRequest, VectorStoreSearchResults](ctx, v.client, "/vector_stores/"+storeID+"/search", req, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateFile attaches an uploaded file to the vector store.
func (v *VectorStores) CreateFile(ctx context.Context, storeID string, req CreateVectorStoreFileRequest, opts ...RequestOption) (*VectorStoreFile, error) {
	if err := v.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateVectorStoreFileRequest, VectorStoreFile](ctx, v.client, "/vector_stores/"+storeID+"/files", req, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListFiles returns a vector store's file attachments.
func (v *VectorStores) ListFiles(ctx context.Context, storeID string, query ListQuery, opts ...RequestOption) (*List[VectorStoreFile], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[VectorStoreFile]](ctx, v.client, "/vector_stores/"+storeID+"/files", vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveFile returns one file attachment.
func (v *VectorStores) RetrieveFile(ctx context.Context, storeID, fileID string, opts ...RequestOption) (*VectorStoreFile, error) {
	resp, err := Get[VectorStoreFile](ctx, v.client, "/vector_stores/"+storeID+"/files/"+fileID, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteFile detaches a file from the vector store. The underlying file
// itself is not deleted.
func (v *VectorStores) DeleteFile(ctx context.Context, storeID, fileID string, opts ...RequestOption) (*DeletionStatus, error) {
	resp, err := Delete[DeletionStatus](ctx, v.client, "/vector_stores/"+storeID+"/files/"+fileID, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateFileBatch attaches several files in one job.
func (v *VectorStores) CreateFileBatch(ctx context.Context, storeID string, req CreateVectorStoreFileBatchRequest, opts ...RequestOption) (*VectorStoreFileBatch, error) {
	if err := v.client.validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := Post[CreateVectorStoreFileBatchRequest, VectorStoreFileBatch](ctx, v.client, "/vector_stores/"+storeID+"/file_batches", req, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveFileBatch returns a file batch by ID.
func (v *VectorStores) RetrieveFileBatch(ctx context.Context, storeID, batchID string, opts ...RequestOption) (*VectorStoreFileBatch, error) {
	resp, err := Get[VectorStoreFileBatch](ctx, v.client, "/vector_stores/"+storeID+"/file_batches/"+batchID, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelFileBatch cancels an in-progress file batch as soon as possible.
func (v *VectorStores) CancelFileBatch(ctx context.Context, storeID, batchID string, opts ...RequestOption) (*VectorStoreFileBatch, error) {
	resp, err := Post[struct{}, VectorStoreFileBatch](ctx, v.client, "/vector_stores/"+storeID+"/file_batches/"+batchID+"/cancel", struct{}{}, vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListFilesInBatch returns the file attachments created by a batch.
func (v *VectorStores) ListFilesInBatch(ctx context.Context, storeID, batchID string, query ListQuery, opts ...RequestOption) (*List[VectorStoreFile], error) {
	opts = append([]RequestOption{query.requestOption()}, opts...)

	resp, err := Get[List[VectorStoreFile]](ctx, v.client, "/vector_stores/"+storeID+"/file_batches/"+batchID+"/files", vectorStoreOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
