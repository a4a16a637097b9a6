package boltdb

import (
	"bytes"

	"github.com/boltdb/bolt"
)

type Iterator struct {
	tx     *bolt.Tx
	cursor *bolt.Cursor
	prefix []byte
	key    []byte
	value  []byte
	err    error
}

func (i *Iterator) seekFirst() {
	i.key, i.value = i.cursor.Seek(i.prefix)
	i.checkPrefix()
}

func (i *Iterator) checkPrefix() {
	if i.key != nil && !bytes.HasPrefix(i.key, i.prefix) {
		i.key = nil
		i.value = nil
	}
}

func (i *Iterator) Next() {
	if i.key == nil {
		return
	}
	i.key, i.value = i.cursor.Next()
	i.checkPrefix()
}

func (i *Iterator) Key() []byte {
	return i.key
}

func (i *Iterator) Value() []byte {
	return i.value
}

func (i *Iterator) Valid() bool {
	return i.err == nil && i.key != nil
}

func (i *Iterator) Close() error {
	if i.tx == nil {
		return i.err
	}
	return i.tx.Rollback()
}
