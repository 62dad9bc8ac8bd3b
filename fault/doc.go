// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Errors that
// carry a dynamic reason are created as values of their class so
// the IsErrX predicates still classify them.
//
// The ledger classes are:
//
//	InvalidTransactionError - deterministic rejection of a transaction
//	InternalError           - non-deterministic failure, the host may retry
//	DecodeError             - malformed bytes
//	ProtocolError           - unexpected envelope or status
//	PersistenceError        - relational store failure
package fault
