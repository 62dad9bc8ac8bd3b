// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package projection

import (
	"context"
	"database/sql"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/staterecord"
)

// Tx - one batch of projection changes
type Tx struct {
	ctx context.Context
	tx  *sql.Tx
}

// Begin - start a transaction
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if nil != err {
		return nil, fault.Persistencef("begin: %s", err)
	}
	return &Tx{ctx: ctx, tx: tx}, nil
}

// Commit - make the batch durable
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); nil != err {
		return fault.Persistencef("commit: %s", err)
	}
	return nil
}

// Rollback - discard the batch
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if nil != err && sql.ErrTxDone != err {
		return fault.Persistencef("rollback: %s", err)
	}
	return nil
}

func (t *Tx) exec(query string, arguments ...interface{}) (sql.Result, error) {
	result, err := t.tx.ExecContext(t.ctx, query, arguments...)
	if nil != err {
		return nil, fault.Persistencef("%s", err)
	}
	return result, nil
}

// FetchBlock - the block recorded at a number, nil if none
func (t *Tx) FetchBlock(blockNum int64) (*Block, error) {
	b := &Block{}
	err := t.tx.QueryRowContext(t.ctx, `SELECT block_num, block_id FROM blocks WHERE block_num = ?`, blockNum).Scan(&b.Number, &b.ID)
	if sql.ErrNoRows == err {
		return nil, nil
	} else if nil != err {
		return nil, fault.Persistencef("block: %d: %s", blockNum, err)
	}
	return b, nil
}

// InsertBlock - record a block
func (t *Tx) InsertBlock(blockNum int64, blockID string) error {
	_, err := t.exec(`INSERT INTO blocks (block_num, block_id) VALUES (?, ?)`, blockNum, blockID)
	return err
}

// DropFork - remove everything recorded at or after a block number
//
// blocks from blockNum are deleted, versions that started from
// blockNum are deleted and versions closed from blockNum are reopened
func (t *Tx) DropFork(blockNum int64) error {
	statements := []string{
		`DELETE FROM blocks WHERE block_num >= ?`,
		`DELETE FROM accounts WHERE start_block_num >= ?`,
		`DELETE FROM merchants WHERE start_block_num >= ?`,
	}
	for _, statement := range statements {
		if _, err := t.exec(statement, blockNum); nil != err {
			return err
		}
	}

	reopen := []string{
		`UPDATE accounts SET end_block_num = ? WHERE end_block_num >= ? AND end_block_num <> ?`,
		`UPDATE merchants SET end_block_num = ? WHERE end_block_num >= ? AND end_block_num <> ?`,
	}
	for _, statement := range reopen {
		if _, err := t.exec(statement, OpenEnd, blockNum, OpenEnd); nil != err {
			return err
		}
	}
	return nil
}

// PutAccount - make an account entry the current version from a block
func (t *Tx) PutAccount(a staterecord.Account, blockNum int64) error {
	_, err := t.exec(`UPDATE accounts SET end_block_num = ?
WHERE name = ? AND number = ? AND end_block_num = ? AND start_block_num < ?`,
		blockNum, a.Name, a.Number, OpenEnd, blockNum)
	if nil != err {
		return err
	}
	_, err = t.exec(`INSERT INTO accounts (name, number, balance, start_block_num, end_block_num)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (name, number, start_block_num) DO UPDATE SET balance = excluded.balance, end_block_num = excluded.end_block_num`,
		a.Name, a.Number, a.Balance, blockNum, OpenEnd)
	return err
}

// RetireAccounts - close current versions for a name whose number is not kept
func (t *Tx) RetireAccounts(name string, keep []uint32, blockNum int64) error {
	rows, err := t.tx.QueryContext(t.ctx, `SELECT number FROM accounts WHERE name = ? AND end_block_num = ?`, name, OpenEnd)
	if nil != err {
		return fault.Persistencef("accounts: %s", err)
	}
	open := []uint32{}
	for rows.Next() {
		var n uint32
		if err := rows.Scan(&n); nil != err {
			rows.Close()
			return fault.Persistencef("accounts: %s", err)
		}
		open = append(open, n)
	}
	rows.Close()
	if err := rows.Err(); nil != err {
		return fault.Persistencef("accounts: %s", err)
	}

	kept := make(map[uint32]struct{}, len(keep))
	for _, n := range keep {
		kept[n] = struct{}{}
	}

	for _, n := range open {
		if _, ok := kept[n]; ok {
			continue
		}
		// a version that only existed within this block disappears
		_, err := t.exec(`DELETE FROM accounts WHERE name = ? AND number = ? AND end_block_num = ? AND start_block_num = ?`,
			name, n, OpenEnd, blockNum)
		if nil != err {
			return err
		}
		_, err = t.exec(`UPDATE accounts SET end_block_num = ? WHERE name = ? AND number = ? AND end_block_num = ?`,
			blockNum, name, n, OpenEnd)
		if nil != err {
			return err
		}
	}
	return nil
}

// PutMerchant - make a merchant entry the current version from a block
func (t *Tx) PutMerchant(m staterecord.Merchant, blockNum int64) error {
	_, err := t.exec(`UPDATE merchants SET end_block_num = ?
WHERE public_key = ? AND end_block_num = ? AND start_block_num < ?`,
		blockNum, m.PublicKey, OpenEnd, blockNum)
	if nil != err {
		return err
	}
	_, err = t.exec(`INSERT INTO merchants (public_key, name, created, start_block_num, end_block_num)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (public_key, start_block_num) DO UPDATE SET name = excluded.name, created = excluded.created, end_block_num = excluded.end_block_num`,
		m.PublicKey, m.Name, m.Timestamp, blockNum, OpenEnd)
	return err
}
