// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package projection - relational view of archer state
//
// accounts and merchants are versioned: each row is valid for the
// block interval [start_block_num, end_block_num) and the current
// version of a key ends at OpenEnd
package projection

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/projection/migrations"
)

// OpenEnd - end block number of a current row
const OpenEnd = int64(math.MaxInt64)

// Block - a block applied to the projection
type Block struct {
	Number int64  `json:"block_num"`
	ID     string `json:"block_id"`
}

// Account - one version of an account
type Account struct {
	Name       string `json:"name"`
	Number     uint32 `json:"number"`
	Balance    int32  `json:"balance"`
	StartBlock int64  `json:"start_block_num"`
	EndBlock   int64  `json:"end_block_num"`
}

// Merchant - one version of a merchant
type Merchant struct {
	PublicKey  string `json:"public_key"`
	Name       string `json:"name"`
	Created    int64  `json:"created"`
	StartBlock int64  `json:"start_block_num"`
	EndBlock   int64  `json:"end_block_num"`
}

// Store - the projection database
type Store struct {
	db *sql.DB
}

// errors
var (
	ErrRecordNotFound = fault.NotFoundError("record not found")
	ErrMissingPath    = fault.InvalidError("database path is required")
)

// Open - open or create a database and bring its schema up to date
func Open(path string) (*Store, error) {
	if "" == strings.TrimSpace(path) {
		return nil, ErrMissingPath
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if nil != err {
		return nil, fault.Persistencef("open: %s", err)
	}

	// single writer; one batch transaction at a time
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := db.PingContext(ctx); nil != err {
		db.Close()
		return nil, fault.Persistencef("ping: %s", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); nil != err {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close - release the database
func (s *Store) Close() error {
	if nil == s || nil == s.db {
		return nil
	}
	return s.db.Close()
}

// KnownCount - number of block ids sent to the validator on subscribe
const KnownCount = 15

// Blocks - up to limit most recent blocks, newest first
func (s *Store) Blocks(ctx context.Context, limit int) ([]Block, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT block_num, block_id FROM blocks ORDER BY block_num DESC LIMIT ?`, limit)
	if nil != err {
		return nil, fault.Persistencef("blocks: %s", err)
	}
	defer rows.Close()

	blocks := []Block{}
	for rows.Next() {
		b := Block{}
		if err := rows.Scan(&b.Number, &b.ID); nil != err {
			return nil, fault.Persistencef("blocks: %s", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// LastKnownBlockIDs - ids of the KnownCount most recent blocks, newest first
func (s *Store) LastKnownBlockIDs(ctx context.Context) ([]string, error) {
	blocks, err := s.Blocks(ctx, KnownCount)
	if nil != err {
		return nil, err
	}
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids, nil
}

const accountColumns = `name, number, balance, start_block_num, end_block_num`

// AccountAt - the version of an account valid at a block
func (s *Store) AccountAt(ctx context.Context, name string, number uint32, blockNum int64) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts
WHERE name = ? AND number = ? AND start_block_num <= ? AND ? < end_block_num`, name, number, blockNum, blockNum)
	return scanAccount(row)
}

// CurrentAccount - the open version of an account
func (s *Store) CurrentAccount(ctx context.Context, name string, number uint32) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts
WHERE name = ? AND number = ? AND end_block_num = ?`, name, number, OpenEnd)
	return scanAccount(row)
}

// Balance - current balance of an account
func (s *Store) Balance(ctx context.Context, name string, number uint32) (int32, error) {
	a, err := s.CurrentAccount(ctx, name, number)
	if nil != err {
		return 0, err
	}
	return a.Balance, nil
}

// AccountHistory - all versions of an account, oldest first
func (s *Store) AccountHistory(ctx context.Context, name string, number uint32) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts
WHERE name = ? AND number = ? ORDER BY start_block_num`, name, number)
	if nil != err {
		return nil, fault.Persistencef("accounts: %s", err)
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if nil != err {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

const merchantColumns = `public_key, name, created, start_block_num, end_block_num`

// MerchantAt - the version of a merchant valid at a block
func (s *Store) MerchantAt(ctx context.Context, publicKey string, blockNum int64) (*Merchant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+merchantColumns+` FROM merchants
WHERE public_key = ? AND start_block_num <= ? AND ? < end_block_num`, publicKey, blockNum, blockNum)
	return scanMerchant(row)
}

// CurrentMerchant - the open version of a merchant
func (s *Store) CurrentMerchant(ctx context.Context, publicKey string) (*Merchant, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+merchantColumns+` FROM merchants
WHERE public_key = ? AND end_block_num = ?`, publicKey, OpenEnd)
	return scanMerchant(row)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*Account, error) {
	a := &Account{}
	err := row.Scan(&a.Name, &a.Number, &a.Balance, &a.StartBlock, &a.EndBlock)
	if sql.ErrNoRows == err {
		return nil, ErrRecordNotFound
	} else if nil != err {
		return nil, fault.Persistencef("account: %s", err)
	}
	return a, nil
}

func scanMerchant(row scanner) (*Merchant, error) {
	m := &Merchant{}
	err := row.Scan(&m.PublicKey, &m.Name, &m.Created, &m.StartBlock, &m.EndBlock)
	if sql.ErrNoRows == err {
		return nil, ErrRecordNotFound
	} else if nil != err {
		return nil, fault.Persistencef("merchant: %s", err)
	}
	return m, nil
}
