package vectordb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/micronauticals/txnquery/common/logger"
	"github.com/micronauticals/txnquery/config"
)

const (
	fieldID      = "id"
	fieldPayload = "payload"
	fieldVector  = "vector"

	connectTimeout = 10 * time.Second
)

// MilvusStore backs the similarity index with a Milvus collection:
// varchar primary key, varchar payload, float vector with AUTOINDEX
// over cosine distance.
type MilvusStore struct {
	client     client.Client
	collection string
	dim        int
}

// NewMilvusStore connects to Milvus and ensures the collection exists.
func NewMilvusStore(cfg *config.VectorDBConfig, dim int) (*MilvusStore, error) {
	if dim <= 0 {
		return nil, errors.New("milvus: embedding dimensions are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	c, err := client.NewClient(ctx, client.Config{
		Address:  fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("milvus: connect failed: %w", err)
	}

	s := &MilvusStore{client: c, collection: cfg.Collection, dim: dim}
	if err := s.ensureCollection(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return s, nil
}

func (s *MilvusStore) ensureCollection(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("milvus: check collection: %w", err)
	}
	if exists {
		return s.client.LoadCollection(ctx, s.collection, false)
	}

	schema := entity.NewSchema().WithName(s.collection).
		WithField(entity.NewField().WithName(fieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64).WithIsPrimaryKey(true)).
		WithField(entity.NewField().WithName(fieldPayload).WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)).
		WithField(entity.NewField().WithName(fieldVector).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(s.dim)))

	if err := s.client.CreateCollection(ctx, schema, 1); err != nil {
		return fmt.Errorf("milvus: create collection: %w", err)
	}

	index, err := entity.NewIndexAUTOINDEX(entity.COSINE)
	if err != nil {
		return fmt.Errorf("milvus: build index definition: %w", err)
	}
	if err := s.client.CreateIndex(ctx, s.collection, fieldVector, index, false); err != nil {
		return fmt.Errorf("milvus: create index: %w", err)
	}
	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return fmt.Errorf("milvus: load collection: %w", err)
	}
	logger.Infof("milvus: created collection %s (dim=%d)", s.collection, s.dim)
	return nil
}

// AddDocs inserts documents and flushes so they are searchable.
func (s *MilvusStore) AddDocs(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	payloads := make([]string, len(docs))
	vectors := make([][]float32, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		payloads[i] = d.Payload
		vectors[i] = d.Vector
	}

	_, err := s.client.Insert(ctx, s.collection, "",
		entity.NewColumnVarChar(fieldID, ids),
		entity.NewColumnVarChar(fieldPayload, payloads),
		entity.NewColumnFloatVector(fieldVector, s.dim, vectors),
	)
	if err != nil {
		return fmt.Errorf("milvus: insert: %w", err)
	}
	if err := s.client.Flush(ctx, s.collection, false); err != nil {
		return fmt.Errorf("milvus: flush: %w", err)
	}
	return nil
}

// SearchDocs runs a cosine similarity search.
func (s *MilvusStore) SearchDocs(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	sp, err := entity.NewIndexAUTOINDEXSearchParam(1)
	if err != nil {
		return nil, fmt.Errorf("milvus: search params: %w", err)
	}

	res, err := s.client.Search(ctx, s.collection, nil, "",
		[]string{fieldID, fieldPayload}, []entity.Vector{entity.FloatVector(vector)},
		fieldVector, entity.COSINE, topK, sp)
	if err != nil {
		return nil, fmt.Errorf("milvus: search: %w", err)
	}

	var out []SearchResult
	for _, rs := range res {
		idCol := varcharColumn(rs.Fields, fieldID)
		payloadCol := varcharColumn(rs.Fields, fieldPayload)
		for i := 0; i < rs.ResultCount; i++ {
			doc := Document{}
			if idCol != nil {
				doc.ID, _ = idCol.ValueByIdx(i)
			}
			if payloadCol != nil {
				doc.Payload, _ = payloadCol.ValueByIdx(i)
			}
			out = append(out, SearchResult{Document: doc, Score: float64(rs.Scores[i])})
		}
	}
	return out, nil
}

// Reset drops and recreates the collection.
func (s *MilvusStore) Reset(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("milvus: check collection: %w", err)
	}
	if exists {
		if err := s.client.DropCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("milvus: drop collection: %w", err)
		}
	}
	return s.ensureCollection(ctx)
}

// Close releases the client connection.
func (s *MilvusStore) Close() error {
	return s.client.Close()
}

func varcharColumn(cols []entity.Column, name string) *entity.ColumnVarChar {
	for _, col := range cols {
		if col.Name() == name {
			if vc, ok := col.(*entity.ColumnVarChar); ok {
				return vc
			}
		}
	}
	return nil
}
