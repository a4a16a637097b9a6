package boltdb

import (
	"errors"
	"os"

	"github.com/boltdb/bolt"

	"github.com/relip/elasticsearch-extended-analyze/kernel/store/kvstore"
)

var _ kvstore.KVStore = &Store{}

type StoreConfig struct {
	Path     string
	Bucket   string
	NoSync   bool
	ReadOnly bool
}

type Store struct {
	path   string
	bucket []byte
	db     *bolt.DB
	noSync bool
}

func New(config *StoreConfig) (kvstore.KVStore, error) {
	if config == nil {
		return nil, errors.New("must provide config")
	}
	if config.Path == "" {
		return nil, os.ErrInvalid
	}
	bucket := config.Bucket
	if bucket == "" {
		bucket = "analyze"
	}

	bo := &bolt.Options{}
	bo.ReadOnly = config.ReadOnly

	db, err := bolt.Open(config.Path, 0600, bo)
	if err != nil {
		return nil, err
	}
	db.NoSync = config.NoSync

	if !bo.ReadOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))

			return err
		})
		if err != nil {
			return nil, err
		}
	}

	rv := Store{
		path:   config.Path,
		bucket: []byte(bucket),
		db:     db,
		noSync: config.NoSync,
	}
	return &rv, nil
}

func (bs *Store) Get(key []byte) (value []byte, err error) {
	err = bs.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		v := b.Get(key)
		if v != nil {
			value = cloneBytes(v)
		}
		return nil
	})
	return
}

func (bs *Store) Put(key []byte, value []byte) error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		return b.Put(key, value)
	})
}

func (bs *Store) Delete(key []byte) error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bs.bucket)
		return b.Delete(key)
	})
}

func (bs *Store) PrefixIterator(prefix []byte) kvstore.KVIterator {
	tx, err := bs.db.Begin(false)
	if err != nil {
		return &Iterator{err: err}
	}
	cursor := tx.Bucket(bs.bucket).Cursor()
	rv := &Iterator{
		tx:     tx,
		cursor: cursor,
		prefix: prefix,
	}
	rv.seekFirst()
	return rv
}

func (bs *Store) Close() error {
	return bs.db.Close()
}

func cloneBytes(b []byte) []byte {
	rv := make([]byte, len(b))
	copy(rv, b)
	return rv
}
