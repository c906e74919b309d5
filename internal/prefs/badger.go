package prefs

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
)

const badgerPrefix = "prefs:"

// BadgerBackend stores values in an embedded Badger database.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the database directory at path.
func OpenBadger(path string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "open badger db")
	}
	return &BadgerBackend{db: db}, nil
}

// Get returns the value stored under key.
func (b *BadgerBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("settings key %q", key)
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "read settings")
	}
	return value, nil
}

// Put stores value under key.
func (b *BadgerBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerPrefix+key), value)
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "write settings")
	}
	return nil
}

// Delete removes key.
func (b *BadgerBackend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.Get(ctx, key); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerPrefix + key))
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "delete settings")
	}
	return nil
}

// Close closes the database.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
