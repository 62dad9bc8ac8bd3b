// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/archerd/fault"
)

// common errors - keep in alphabetic order
var (
	ErrAccountOrMerchant = fault.InvalidError("exactly one of account or merchant is required")
	ErrInvalidAction     = fault.InvalidError("invalid action")
	ErrInvalidHex        = fault.InvalidError("payload is not valid hex")
	ErrMissingKey        = fault.InvalidError("public key is required")
	ErrMissingName       = fault.InvalidError("name is required")
	ErrMissingPayload    = fault.InvalidError("payload is required")
	ErrNumberRange       = fault.InvalidError("number is out of range")
)
