// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package statestore

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/archerd/fault"
)

// key layout
var (
	versionKey  = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}
	statePrefix = byte('S')
)

const currentVersion = 0x100

// errors
var (
	ErrDatabaseVersion     = fault.InvalidError("incompatible state database version")
	ErrTransactionInUse    = fault.ProcessError("state transaction already in use")
	ErrTransactionFinished = fault.ProcessError("state transaction already finished")
)

// Store - a LevelDB state database
type Store struct {
	sync.Mutex

	log   *logger.L
	db    *leveldb.DB
	cache *valueCache
	inUse bool
}

// Entry - one stored address
type Entry struct {
	Address string
	Data    []byte
}

// Open - open or create a state database directory
func Open(name string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, fault.Persistencef("state database: %s: %s", name, err)
	}
	return setup(db, readOnly)
}

// OpenMemory - a state database that lives only in memory
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, fault.Persistencef("state database: %s", err)
	}
	return setup(db, false)
}

func setup(db *leveldb.DB, readOnly bool) (*Store, error) {
	log := logger.New("state")

	versionValue, err := db.Get(versionKey, nil)
	switch {
	case leveldb.ErrNotFound == err && readOnly:
		db.Close()
		return nil, ErrDatabaseVersion

	case leveldb.ErrNotFound == err:
		v := make([]byte, 4)
		binary.BigEndian.PutUint32(v, currentVersion)
		err = db.Put(versionKey, v, nil)
		if nil != err {
			db.Close()
			return nil, fault.Persistencef("state database version: %s", err)
		}

	case nil != err:
		db.Close()
		return nil, fault.Persistencef("state database version: %s", err)

	case 4 != len(versionValue) || currentVersion != binary.BigEndian.Uint32(versionValue):
		log.Criticalf("state database version: %x  expected: %x", versionValue, currentVersion)
		db.Close()
		return nil, ErrDatabaseVersion
	}

	return &Store{
		log:   log,
		db:    db,
		cache: newValueCache(),
	}, nil
}

// Close - release the database
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil
	}
	s.cache.clear()
	err := s.db.Close()
	s.db = nil
	return err
}

// Get - committed data at an address, nil when absent
func (s *Store) Get(address string) ([]byte, error) {
	if data, found := s.cache.get(address); found {
		return data, nil
	}

	data, err := s.db.Get(stateKey(address), nil)
	if leveldb.ErrNotFound == err {
		s.cache.set(address, nil)
		return nil, nil
	} else if nil != err {
		return nil, fault.Internalf("state get: %s: %s", address, err)
	}
	s.cache.set(address, data)
	return data, nil
}

// Entries - committed addresses starting with a prefix, in address order
func (s *Store) Entries(prefix string) ([]Entry, error) {
	iter := s.db.NewIterator(ldb_util.BytesPrefix(stateKey(prefix)), nil)
	defer iter.Release()

	entries := []Entry{}
	for iter.Next() {
		key := iter.Key()
		data := make([]byte, len(iter.Value()))
		copy(data, iter.Value())
		entries = append(entries, Entry{
			Address: string(key[1:]),
			Data:    data,
		})
	}
	if err := iter.Error(); nil != err {
		return nil, fault.Internalf("state scan: %s", err)
	}
	return entries, nil
}

func stateKey(address string) []byte {
	key := make([]byte, 1+len(address))
	key[0] = statePrefix
	copy(key[1:], address)
	return key
}
