// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package projection_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/projection"
	"github.com/bitmark-inc/archerd/staterecord"
)

const (
	testingDirName = "testing"
	merchantKey    = "03a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"
)

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func openStore(t *testing.T) *projection.Store {
	store, err := projection.Open(filepath.Join(t.TempDir(), "projection.sqlite3"))
	require.Nil(t, err, "open")
	t.Cleanup(func() { store.Close() })
	return store
}

func newSynchronizer(t *testing.T) (*projection.Store, *projection.Synchronizer) {
	store := openStore(t)
	return store, projection.NewSynchronizer(store, logger.New("sync"))
}

func blockCommitEvent(blockNum int64, blockID string) message.Event {
	return message.Event{
		EventType: message.BlockCommitEventType,
		Attributes: []message.Attribute{
			{Key: message.BlockIDAttribute, Value: blockID},
			{Key: message.BlockNumAttribute, Value: strconv.FormatInt(blockNum, 10)},
		},
	}
}

func stateDeltaEvent(changes ...message.StateChange) message.Event {
	return message.Event{
		EventType: message.StateDeltaEventType,
		Data:      message.PackStateChanges(changes),
	}
}

func batch(blockNum int64, blockID string, changes ...message.StateChange) []message.Event {
	return []message.Event{
		blockCommitEvent(blockNum, blockID),
		stateDeltaEvent(changes...),
	}
}

func accountsChange(name string, accounts ...staterecord.Account) message.StateChange {
	container := staterecord.AccountContainer{Entries: accounts}
	return message.StateChange{
		Address: address.AccountAddress(name),
		Value:   container.Pack(),
		Type:    message.ChangeSet,
	}
}

func merchantsChange(merchants ...staterecord.Merchant) message.StateChange {
	container := staterecord.MerchantContainer{Entries: merchants}
	return message.StateChange{
		Address: address.MerchantAddress(merchants[0].PublicKey),
		Value:   container.Pack(),
		Type:    message.ChangeSet,
	}
}
