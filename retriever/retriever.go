package retriever

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/micronauticals/txnquery/common/logger"
	"github.com/micronauticals/txnquery/embedding"
	"github.com/micronauticals/txnquery/schema"
	"github.com/micronauticals/txnquery/vectordb"
)

// Index embeds transaction records and answers similarity queries over
// them. Records travel through the store as JSON payloads so a search
// result needs no secondary lookup.
type Index struct {
	Embed embedding.Provider
	Store vectordb.VectorStoreProvider
	TopK  int
}

// Build replaces the index contents with the given record set. Each
// record is embedded from its flattened text form. All embeddings are
// staged before the live index is touched, so an embedding failure
// leaves the previous contents intact and searchable.
func (ix *Index) Build(ctx context.Context, records []schema.Record) error {
	docs := make([]vectordb.Document, 0, len(records))
	for _, r := range records {
		vec, err := ix.Embed.GetEmbedding(ctx, r.Text())
		if err != nil {
			return fmt.Errorf("retriever: embed record %s: %w", r.ID, err)
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("retriever: encode record %s: %w", r.ID, err)
		}
		docs = append(docs, vectordb.Document{
			ID:      r.ID,
			Vector:  vec,
			Payload: string(payload),
		})
	}

	if err := ix.Store.Reset(ctx); err != nil {
		return fmt.Errorf("retriever: reset index: %w", err)
	}
	if err := ix.Store.AddDocs(ctx, docs); err != nil {
		return fmt.Errorf("retriever: add docs: %w", err)
	}
	logger.Infof("retriever: indexed %d records", len(docs))
	return nil
}

// Search embeds the query and returns the topK most similar records,
// best first. A topK of zero falls back to the index default.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]schema.Record, error) {
	if topK <= 0 {
		topK = ix.TopK
	}
	if topK <= 0 {
		topK = 10
	}

	vec, err := ix.Embed.GetEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retriever: embed query: %w", err)
	}

	results, err := ix.Store.SearchDocs(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("retriever: search: %w", err)
	}

	records := make([]schema.Record, 0, len(results))
	for _, res := range results {
		var r schema.Record
		if err := json.Unmarshal([]byte(res.Payload), &r); err != nil {
			logger.Warnf("retriever: skipping undecodable payload for %s: %v", res.ID, err)
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
