package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"

	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// Record is a stored entity that can describe itself to the query layer.
type Record interface {
	model.Candidate | model.JobPosting | model.Application
}

// Result is a record returned by a query along with its relevance.
type Result[T Record] struct {
	Record    *T
	Relevance float64
}

// Repository stores one record type in one collection.
type Repository[T Record] struct {
	backend    Backend
	collection string
	idOf       func(*T) string
	docOf      func(*T) model.Document
	vectorOf   func(*T) *[]float64 // nil for records without an embedding
}

func newRepository[T Record](backend Backend, collection string, idOf func(*T) string, docOf func(*T) model.Document, vectorOf func(*T) *[]float64) *Repository[T] {
	return &Repository[T]{backend: backend, collection: collection, idOf: idOf, docOf: docOf, vectorOf: vectorOf}
}

// Get loads one record. Unknown ids return a *errors.DocumentNotFoundError.
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := r.backend.Get(ctx, r.collection, id)
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}

// Put inserts or replaces a record.
func (r *Repository[T]) Put(ctx context.Context, record *T) error {
	id := r.idOf(record)
	if id == "" {
		return fmt.Errorf("cannot store %s record without id", r.collection)
	}
	data, err := r.encode(record)
	if err != nil {
		return err
	}
	return r.backend.Put(ctx, r.collection, id, data)
}

// Delete removes a record. Unknown ids return a *errors.DocumentNotFoundError.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.backend.Delete(ctx, r.collection, id)
}

// List returns every record in id order.
func (r *Repository[T]) List(ctx context.Context) ([]*T, error) {
	var records []*T
	err := r.backend.Scan(ctx, r.collection, func(id string, data []byte) error {
		record, err := r.decode(data)
		if err != nil {
			return fmt.Errorf("decoding %s/%s: %w", r.collection, id, err)
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Query evaluates q over the collection.
func (r *Repository[T]) Query(ctx context.Context, q *retrieval.Query) ([]Result[T], error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*T, len(records))
	docs := make([]model.Document, 0, len(records))
	for _, record := range records {
		byID[r.idOf(record)] = record
		docs = append(docs, r.docOf(record))
	}

	hits, err := retrieval.Execute(docs, q)
	if err != nil {
		return nil, err
	}

	results := make([]Result[T], 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result[T]{Record: byID[hit.ID], Relevance: hit.Score})
	}
	return results, nil
}

// Records strips relevance from query results.
func Records[T Record](results []Result[T]) []*T {
	out := make([]*T, len(results))
	for i, r := range results {
		out[i] = r.Record
	}
	return out
}

// envelope is the stored form of a record. The body is JSON so optional
// numbers keep the difference between nil and zero, which gob flattens away;
// the embedding travels beside it since it is hidden from JSON.
type envelope struct {
	Body      []byte
	Embedding []float64
}

func (r *Repository[T]) encode(record *T) ([]byte, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", r.collection, err)
	}
	env := envelope{Body: body}
	if r.vectorOf != nil {
		env.Embedding = *r.vectorOf(record)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("failed to gob encode %s record: %w", r.collection, err)
	}
	return buf.Bytes(), nil
}

func (r *Repository[T]) decode(data []byte) (*T, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to gob decode %s record: %w", r.collection, err)
	}

	var record T
	if err := json.Unmarshal(env.Body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode %s record: %w", r.collection, err)
	}
	if r.vectorOf != nil && len(env.Embedding) > 0 {
		*r.vectorOf(&record) = env.Embedding
	}
	return &record, nil
}

// Stores groups the repositories of one backend.
type Stores struct {
	Candidates   *Repository[model.Candidate]
	Jobs         *Repository[model.JobPosting]
	Applications *Repository[model.Application]
	backend      Backend
}

// NewStores creates the repositories over backend.
func NewStores(backend Backend) *Stores {
	return &Stores{
		Candidates: newRepository(backend, CollectionCandidates,
			func(c *model.Candidate) string { return c.ID },
			func(c *model.Candidate) model.Document { return c.Document() },
			func(c *model.Candidate) *[]float64 { return &c.Embedding }),
		Jobs: newRepository(backend, CollectionJobs,
			func(j *model.JobPosting) string { return j.ID },
			func(j *model.JobPosting) model.Document { return j.Document() },
			func(j *model.JobPosting) *[]float64 { return &j.Embedding }),
		Applications: newRepository(backend, CollectionApplications,
			func(a *model.Application) string { return a.ID },
			func(a *model.Application) model.Document { return a.Document() },
			nil),
		backend: backend,
	}
}

// Close closes the underlying backend.
func (s *Stores) Close() error {
	return s.backend.Close()
}
