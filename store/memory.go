package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/persistence"
)

// MemoryBackend keeps every collection in process memory. When a snapshot
// path is set, it is loaded on open and written on Close.
type MemoryBackend struct {
	Mu           sync.RWMutex
	Collections  map[string]map[string][]byte
	snapshotPath string
}

// NewMemoryBackend creates an empty, non-persistent backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{Collections: make(map[string]map[string][]byte)}
}

// OpenMemoryBackend loads the snapshot at path if present and saves back to it on Close.
func OpenMemoryBackend(path string) (*MemoryBackend, error) {
	mb := NewMemoryBackend()
	mb.snapshotPath = path
	if err := persistence.LoadGob(path, mb); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return mb, nil
}

func (mb *MemoryBackend) Get(_ context.Context, collection, id string) ([]byte, error) {
	mb.Mu.RLock()
	defer mb.Mu.RUnlock()

	data, ok := mb.Collections[collection][id]
	if !ok {
		return nil, apperrors.NewDocumentNotFoundError(id, collection)
	}
	return bytes.Clone(data), nil
}

func (mb *MemoryBackend) Put(_ context.Context, collection, id string, data []byte) error {
	mb.Mu.Lock()
	defer mb.Mu.Unlock()

	docs, ok := mb.Collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		mb.Collections[collection] = docs
	}
	docs[id] = bytes.Clone(data)
	return nil
}

func (mb *MemoryBackend) Delete(_ context.Context, collection, id string) error {
	mb.Mu.Lock()
	defer mb.Mu.Unlock()

	if _, ok := mb.Collections[collection][id]; !ok {
		return apperrors.NewDocumentNotFoundError(id, collection)
	}
	delete(mb.Collections[collection], id)
	return nil
}

func (mb *MemoryBackend) Scan(ctx context.Context, collection string, fn func(id string, data []byte) error) error {
	// Copy under the lock so fn may call back into the backend.
	mb.Mu.RLock()
	docs := mb.Collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	snapshot := make(map[string][]byte, len(docs))
	for id, data := range docs {
		snapshot[id] = data
	}
	mb.Mu.RUnlock()

	sort.Strings(ids)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(id, bytes.Clone(snapshot[id])); err != nil {
			return err
		}
	}
	return nil
}

// Save writes a snapshot when a snapshot path is configured.
func (mb *MemoryBackend) Save() error {
	if mb.snapshotPath == "" {
		return nil
	}
	return persistence.SaveGob(mb.snapshotPath, mb)
}

// Close saves the snapshot, if any.
func (mb *MemoryBackend) Close() error {
	return mb.Save()
}

// gobMemoryData is a helper struct for Gob encoding/decoding MemoryBackend data.
// It excludes the mutex.
type gobMemoryData struct {
	Collections map[string]map[string][]byte
}

// GobEncode implements the gob.GobEncoder interface for MemoryBackend.
func (mb *MemoryBackend) GobEncode() ([]byte, error) {
	mb.Mu.RLock()
	defer mb.Mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobMemoryData{Collections: mb.Collections}); err != nil {
		return nil, fmt.Errorf("failed to gob encode memory store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for MemoryBackend.
func (mb *MemoryBackend) GobDecode(data []byte) error {
	decoded := gobMemoryData{}
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode memory store data: %w", err)
	}

	mb.Mu.Lock()
	defer mb.Mu.Unlock()

	mb.Collections = decoded.Collections
	if mb.Collections == nil {
		mb.Collections = make(map[string]map[string][]byte)
	}
	return nil
}
