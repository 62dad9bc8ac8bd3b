// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/archerd/fault"
)

var (
	ErrExistsOne      = fault.ExistsError("exists one ")
	ErrInvalidOne     = fault.InvalidError("invalid one")
	ErrNotFoundOne    = fault.NotFoundError("not found one")
	ErrProcessOne     = fault.ProcessError("process one")
	ErrDecodeOne      = fault.DecodeError("decode one")
	ErrInternalOne    = fault.InternalError("internal one")
	ErrTransactionOne = fault.InvalidTransactionError("transaction one")
	ErrPersistOne     = fault.PersistenceError("persist one")
	ErrProtocolOne    = fault.ProtocolError("protocol one")
)

// test that the classes do not overlap
func TestClasses(t *testing.T) {
	errorList := []struct {
		err         error
		exists      bool
		invalid     bool
		notFound    bool
		process     bool
		decode      bool
		internal    bool
		transaction bool
		persistence bool
		protocol    bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false, false, false},
		{ErrNotFoundOne, false, false, true, false, false, false, false, false, false},
		{ErrProcessOne, false, false, false, true, false, false, false, false, false},
		{ErrDecodeOne, false, false, false, false, true, false, false, false, false},
		{ErrInternalOne, false, false, false, false, false, true, false, false, false},
		{ErrTransactionOne, false, false, false, false, false, false, true, false, false},
		{ErrPersistOne, false, false, false, false, false, false, false, true, false},
		{ErrProtocolOne, false, false, false, false, false, false, false, false, true},
		{fault.ErrMissingSigner, false, false, false, false, false, false, true, false, false},
		{fault.InvalidTransactionf("account not found for %s", "x"), false, false, false, false, false, false, true, false, false},
		{fault.Internalf("state get: %s", "x"), false, false, false, false, false, true, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrDecode(err) != e.decode {
			t.Errorf("%d: expected 'decode' == %v for err = %v", i, e.decode, err)
		}
		if fault.IsErrInternal(err) != e.internal {
			t.Errorf("%d: expected 'internal' == %v for err = %v", i, e.internal, err)
		}
		if fault.IsErrInvalidTransaction(err) != e.transaction {
			t.Errorf("%d: expected 'invalid transaction' == %v for err = %v", i, e.transaction, err)
		}
		if fault.IsErrPersistence(err) != e.persistence {
			t.Errorf("%d: expected 'persistence' == %v for err = %v", i, e.persistence, err)
		}
		if fault.IsErrProtocol(err) != e.protocol {
			t.Errorf("%d: expected 'protocol' == %v for err = %v", i, e.protocol, err)
		}
	}
}

func TestFormattedReason(t *testing.T) {
	err := fault.InvalidTransactionf("account not found for %s", "9abef400")
	if "account not found for 9abef400" != err.Error() {
		t.Errorf("unexpected message: %q", err)
	}
}
