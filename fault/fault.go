// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// ledger and wire classes
type DecodeError GenericError
type InternalError GenericError
type InvalidTransactionError GenericError
type PersistenceError GenericError
type ProtocolError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrNotConnected         = ProcessError("not connected")
	ErrNotRunning           = ProcessError("not running")
)

// configuration and command errors
var (
	ErrInvalidDataDirectory = InvalidError("invalid data directory")
	ErrInvalidFileName      = InvalidError("file name must not contain a path")
	ErrInvalidTimeout       = InvalidError("timeout must not be negative")
	ErrMissingConnect       = InvalidError("validator connect address is required")
)

// state machine errors
var (
	ErrAccountExists             = InvalidTransactionError("account already exists")
	ErrAccountNumberInUse        = InvalidTransactionError("account number already in use")
	ErrAccountNumberNotPositive  = InvalidTransactionError("account number must be positive")
	ErrBalanceOverflow           = InvalidTransactionError("balance overflow")
	ErrInvalidWithdrawalAmount   = InvalidTransactionError("invalid withdrawal amount")
	ErrMerchantExists            = InvalidTransactionError("merchant already exists")
	ErrMissingAmount             = InvalidTransactionError("amount is required")
	ErrMissingName               = InvalidTransactionError("name is required")
	ErrMissingNewNumber          = InvalidTransactionError("new number is required")
	ErrMissingSigner             = InvalidTransactionError("missing signer")
	ErrMissingTimestamp          = InvalidTransactionError("timestamp is required")
	ErrUnsupportedAction         = InvalidTransactionError("unsupported action")
	ErrCorruptStateContainer     = InvalidTransactionError("state container is corrupt")
	ErrStateAuthorisationFailure = InternalError("state access not authorised")
)

// wire errors
var (
	ErrInvalidAction        = DecodeError("invalid action")
	ErrMissingAction        = DecodeError("missing required field: action")
	ErrMissingRequiredName  = DecodeError("missing required field: name")
	ErrUnsupportedWireType  = DecodeError("unsupported wire type")
	ErrWrongWireType        = DecodeError("wrong wire type for field")
	ErrMissingBlockCommit   = ProtocolError("event batch has no block commit")
	ErrInvalidBlockNumber   = ProtocolError("invalid block number attribute")
	ErrMissingBlockID       = ProtocolError("missing block id attribute")
	ErrRegistrationFailed   = ProtocolError("transaction processor registration failed")
	ErrSubscriptionFailed   = ProtocolError("event subscription failed")
	ErrUnexpectedMessage    = ProtocolError("unexpected message type")
	ErrUnsubscriptionFailed = ProtocolError("event unsubscribe failed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string             { return string(e) }
func (e InvalidError) Error() string            { return string(e) }
func (e NotFoundError) Error() string           { return string(e) }
func (e ProcessError) Error() string            { return string(e) }
func (e DecodeError) Error() string             { return string(e) }
func (e InternalError) Error() string           { return string(e) }
func (e InvalidTransactionError) Error() string { return string(e) }
func (e PersistenceError) Error() string        { return string(e) }
func (e ProtocolError) Error() string           { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool             { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool            { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool           { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool            { _, ok := e.(ProcessError); return ok }
func IsErrDecode(e error) bool             { _, ok := e.(DecodeError); return ok }
func IsErrInternal(e error) bool           { _, ok := e.(InternalError); return ok }
func IsErrInvalidTransaction(e error) bool { _, ok := e.(InvalidTransactionError); return ok }
func IsErrPersistence(e error) bool        { _, ok := e.(PersistenceError); return ok }
func IsErrProtocol(e error) bool           { _, ok := e.(ProtocolError); return ok }

// InvalidTransactionf - an invalid transaction with a formatted reason
func InvalidTransactionf(format string, arguments ...interface{}) error {
	return InvalidTransactionError(fmt.Sprintf(format, arguments...))
}

// Internalf - an internal error with a formatted reason
func Internalf(format string, arguments ...interface{}) error {
	return InternalError(fmt.Sprintf(format, arguments...))
}

// Decodef - a decode error with a formatted reason
func Decodef(format string, arguments ...interface{}) error {
	return DecodeError(fmt.Sprintf(format, arguments...))
}

// Protocolf - a protocol error with a formatted reason
func Protocolf(format string, arguments ...interface{}) error {
	return ProtocolError(fmt.Sprintf(format, arguments...))
}

// Persistencef - a persistence error with a formatted reason
func Persistencef(format string, arguments ...interface{}) error {
	return PersistenceError(fmt.Sprintf(format, arguments...))
}
