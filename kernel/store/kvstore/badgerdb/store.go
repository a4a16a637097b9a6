package badgerdb

import (
	"errors"
	"os"

	"github.com/dgraph-io/badger"

	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore"
)

var _ kvstore.KVStore = &Store{}

type StoreConfig struct {
	Path     string
	Sync     bool
	ReadOnly bool
}

type Store struct {
	path string
	db   *badger.DB
}

func New(config *StoreConfig) (kvstore.KVStore, error) {
	if config == nil {
		return nil, errors.New("must provide config")
	}
	if config.Path == "" {
		return nil, os.ErrInvalid
	}
	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, err
	}
	opts := badger.DefaultOptions(config.Path)
	opts.SyncWrites = config.Sync
	opts.ReadOnly = config.ReadOnly
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	rv := Store{
		path: config.Path,
		db:   db,
	}
	return &rv, nil
}

func (bs *Store) Get(key []byte) (value []byte, err error) {
	err = bs.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return
}

func (bs *Store) Put(key []byte, value []byte) error {
	return bs.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, value)
	})
}

func (bs *Store) Delete(key []byte) error {
	return bs.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(key)
	})
}

func (bs *Store) PrefixIterator(prefix []byte) kvstore.KVIterator {
	tx := bs.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := tx.NewIterator(opts)
	rv := &Iterator{
		tx:     tx,
		it:     it,
		prefix: prefix,
	}
	it.Seek(prefix)
	rv.load()
	return rv
}

func (bs *Store) Close() error {
	return bs.db.Close()
}
