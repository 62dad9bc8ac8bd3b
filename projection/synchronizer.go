// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package projection

import (
	"context"
	"strconv"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/counter"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/staterecord"
)

// Synchronizer - applies event batches to the projection
type Synchronizer struct {
	store *Store
	log   *logger.L

	applied    counter.Counter
	changes    counter.Counter
	duplicates counter.Counter
	forks      counter.Counter
	failures   counter.Counter
}

// Statistics - synchronizer counters
type Statistics struct {
	Applied    uint64 `json:"applied"`
	Changes    uint64 `json:"changes"`
	Duplicates uint64 `json:"duplicates"`
	Forks      uint64 `json:"forks"`
	Failures   uint64 `json:"failures"`
}

// NewSynchronizer - create a synchronizer writing to a store
func NewSynchronizer(store *Store, log *logger.L) *Synchronizer {
	return &Synchronizer{
		store: store,
		log:   log,
	}
}

// Statistics - snapshot of the counters
func (s *Synchronizer) Statistics() Statistics {
	return Statistics{
		Applied:    s.applied.Uint64(),
		Changes:    s.changes.Uint64(),
		Duplicates: s.duplicates.Uint64(),
		Forks:      s.forks.Uint64(),
		Failures:   s.failures.Uint64(),
	}
}

// HandleEvents - apply one event batch
//
// only a batch without a usable block commit is an error, any
// persistence failure rolls the batch back, is logged and the batch
// is dropped
func (s *Synchronizer) HandleEvents(events []message.Event) error {
	blockNum, blockID, err := blockCommit(events)
	if nil != err {
		s.log.Criticalf("batch of %d events: %s", len(events), err)
		return err
	}

	err = s.apply(context.Background(), events, blockNum, blockID)
	if nil != err {
		s.failures.Increment()
		s.log.Errorf("block: %d  id: %s  dropped: %s", blockNum, blockID, err)
	}
	return nil
}

func (s *Synchronizer) apply(ctx context.Context, events []message.Event, blockNum int64, blockID string) error {
	tx, err := s.store.Begin(ctx)
	if nil != err {
		return err
	}
	defer tx.Rollback()

	duplicate, err := s.ResolveIfForked(tx, blockNum, blockID)
	if nil != err {
		return err
	}
	if duplicate {
		s.duplicates.Increment()
		s.log.Debugf("block: %d  id: %s  already applied", blockNum, blockID)
		return nil
	}

	err = tx.InsertBlock(blockNum, blockID)
	if nil != err {
		return err
	}

	changes := 0
	for i := range events {
		if message.StateDeltaEventType != events[i].EventType {
			continue
		}
		stateChanges, err := message.UnpackStateChanges(events[i].Data)
		if nil != err {
			return fault.Persistencef("state delta: %s", err)
		}
		for _, change := range stateChanges {
			applied, err := s.applyChange(tx, change, blockNum)
			if nil != err {
				return err
			}
			if applied {
				changes += 1
			}
		}
	}

	err = tx.Commit()
	if nil != err {
		return err
	}

	s.applied.Increment()
	s.changes.Add(uint64(changes))
	s.log.Infof("block: %d  id: %s  changes: %d", blockNum, blockID, changes)
	return nil
}

// ResolveIfForked - check a block against the recorded chain
//
// returns true when exactly this block is already recorded; a
// different block at the same number is a fork and everything from
// that number on is dropped so the new block can be applied
func (s *Synchronizer) ResolveIfForked(tx *Tx, blockNum int64, blockID string) (bool, error) {
	existing, err := tx.FetchBlock(blockNum)
	if nil != err {
		return false, err
	}
	if nil == existing {
		return false, nil
	}
	if existing.ID == blockID {
		return true, nil
	}

	s.forks.Increment()
	s.log.Warnf("fork at block: %d  old id: %s  new id: %s", blockNum, existing.ID, blockID)

	err = tx.DropFork(blockNum)
	if nil != err {
		return false, err
	}
	return false, nil
}

func (s *Synchronizer) applyChange(tx *Tx, change message.StateChange, blockNum int64) (bool, error) {
	if !address.InNamespace(change.Address) {
		return false, nil
	}
	if message.ChangeSet != change.Type {
		s.log.Warnf("address: %s  change type: %d  skipped", change.Address, change.Type)
		return false, nil
	}

	switch address.KindOf(change.Address) {

	case address.Account:
		container, err := staterecord.UnpackAccounts(change.Value)
		if nil != err {
			return false, fault.Persistencef("address: %s  accounts: %s", change.Address, err)
		}
		byName := make(map[string][]uint32)
		for _, a := range container.Entries {
			err := tx.PutAccount(a, blockNum)
			if nil != err {
				return false, err
			}
			byName[a.Name] = append(byName[a.Name], a.Number)
		}
		for name, numbers := range byName {
			err := tx.RetireAccounts(name, numbers, blockNum)
			if nil != err {
				return false, err
			}
		}

	case address.Merchant:
		container, err := staterecord.UnpackMerchants(change.Value)
		if nil != err {
			return false, fault.Persistencef("address: %s  merchants: %s", change.Address, err)
		}
		for _, m := range container.Entries {
			err := tx.PutMerchant(m, blockNum)
			if nil != err {
				return false, err
			}
		}

	default:
		s.log.Warnf("address: %s  unknown kind  skipped", change.Address)
		return false, nil
	}

	return true, nil
}

// extract the block number and id from the block commit event
func blockCommit(events []message.Event) (int64, string, error) {
	for i := range events {
		if message.BlockCommitEventType != events[i].EventType {
			continue
		}
		n, ok := events[i].Attribute(message.BlockNumAttribute)
		if !ok {
			return 0, "", fault.ErrInvalidBlockNumber
		}
		blockNum, err := strconv.ParseInt(n, 10, 64)
		if nil != err || blockNum < 0 {
			return 0, "", fault.ErrInvalidBlockNumber
		}
		blockID, ok := events[i].Attribute(message.BlockIDAttribute)
		if !ok || "" == blockID {
			return 0, "", fault.ErrMissingBlockID
		}
		return blockNum, blockID, nil
	}
	return 0, "", fault.ErrMissingBlockCommit
}
