package badgerdb

import (
	"github.com/dgraph-io/badger"
)

type Iterator struct {
	tx     *badger.Txn
	it     *badger.Iterator
	prefix []byte
	key    []byte
	value  []byte
	err    error
}

func (i *Iterator) load() {
	if !i.it.ValidForPrefix(i.prefix) {
		i.key = nil
		i.value = nil
		return
	}
	item := i.it.Item()
	i.key = item.KeyCopy(nil)
	i.value, i.err = item.ValueCopy(nil)
}

func (i *Iterator) Next() {
	if i.key == nil {
		return
	}
	i.it.Next()
	i.load()
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
	i.it.Close()
	i.tx.Discard()
	return i.err
}
