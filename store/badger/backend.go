// Package badger stores records in an embedded BadgerDB database.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/store"
)

// Backend implements store.Backend over BadgerDB. Keys are "<collection>/<id>".
type Backend struct {
	db     *badger.DB
	logger *zap.Logger
}

var _ store.Backend = (*Backend)(nil)

// badgerLoggerAdapter adapts zap to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *zap.SugaredLogger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Errorf(msg, items...)
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warnf(msg, items...)
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Infof(msg, items...)
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debugf(msg, items...)
}

// Open opens a BadgerDB database at path, creating the directory if needed.
// With inMemory set the path is ignored and nothing touches disk.
func Open(path string, inMemory bool, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "badger"))

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: logger.Sugar()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", path, err)
	}
	return &Backend{db: db, logger: logger}, nil
}

func key(collection, id string) []byte {
	return []byte(collection + "/" + id)
}

func (b *Backend) Get(_ context.Context, collection, id string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(collection, id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, apperrors.NewDocumentNotFoundError(id, collection)
	}
	return data, err
}

func (b *Backend) Put(_ context.Context, collection, id string, data []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(collection, id), data)
	})
}

func (b *Backend) Delete(_ context.Context, collection, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		k := key(collection, id)
		if _, err := txn.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return apperrors.NewDocumentNotFoundError(id, collection)
			}
			return err
		}
		return txn.Delete(k)
	})
}

func (b *Backend) Scan(ctx context.Context, collection string, fn func(id string, data []byte) error) error {
	prefix := []byte(collection + "/")
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			id := string(item.Key()[len(prefix):])
			if err := fn(id, data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}
