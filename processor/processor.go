// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - the archer ledger state machine
//
// Apply is deterministic: its result depends only on the transaction
// header, the payload bytes and the state read through the context.
// A rejected transaction never writes state.
package processor

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/payload"
)

// FamilyVersion - the single supported version
const FamilyVersion = "1.0"

// Header - the parts of the transaction header used by the state machine
type Header struct {
	SignerPublicKey string
	FamilyName      string
	FamilyVersion   string
	Nonce           string
}

// Context - read and write access to global state for one transaction
//
// Get returns nil data for an absent address; errors from either
// method are I/O failures, not rejections
type Context interface {
	Get(address string) ([]byte, error)
	Set(address string, data []byte) error
}

// Handler - applies archer transactions
type Handler struct {
	log *logger.L
}

// New - create a handler that logs to the given channel
func New(log *logger.L) *Handler {
	return &Handler{
		log: log,
	}
}

// FamilyName - transaction family handled
func (h *Handler) FamilyName() string {
	return address.FamilyName
}

// FamilyVersions - versions handled
func (h *Handler) FamilyVersions() []string {
	return []string{FamilyVersion}
}

// Namespaces - address prefixes read and written
func (h *Handler) Namespaces() []string {
	return []string{address.Namespace()}
}

// Apply - validate and execute one transaction
//
// rejections are fault.InvalidTransactionError, context failures are
// fault.InternalError
func (h *Handler) Apply(header *Header, payloadBytes []byte, context Context) error {
	if nil == header || "" == header.SignerPublicKey {
		return fault.ErrMissingSigner
	}

	p, err := payload.Decode(payloadBytes)
	if nil != err {
		return fault.InvalidTransactionf("invalid payload: %s", err)
	}
	err = p.Validate()
	if nil != err {
		return err
	}

	if p.Action.CarriesNumber() && 0 == p.NumberValue() {
		return fault.ErrAccountNumberNotPositive
	}

	h.log.Debugf("apply: %s name: %q signer: %s", p.Action, p.Name, header.SignerPublicKey)

	switch p.Action {
	case payload.Deposit:
		return h.updateBalance(context, p.Name, p.NumberValue(), int64(p.AmountValue()))

	case payload.Withdraw:
		return h.updateBalance(context, p.Name, p.NumberValue(), -int64(p.AmountValue()))

	case payload.UpdateNumber:
		if 0 == p.NewNumberValue() {
			return fault.ErrAccountNumberNotPositive
		}
		return h.updateNumber(context, p.Name, p.NumberValue(), p.NewNumberValue())

	case payload.AddAccount:
		return h.addAccount(context, p.Name, p.NumberValue())

	case payload.AddMerchant:
		return h.addMerchant(context, header.SignerPublicKey, p.Name, p.TimestampValue())

	default:
		return fault.ErrUnsupportedAction
	}
}
