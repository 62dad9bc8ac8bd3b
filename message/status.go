// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

// Status - response status, the meaning of each value depends on the
// response record it appears in
type Status int32

// status values shared by all responses
const (
	StatusUnset Status = 0
	StatusOK    Status = 1
)

// register, unregister and state responses
const (
	StatusError              Status = 2
	StatusAuthorizationError Status = 2
)

// process response
const (
	StatusInvalidTransaction Status = 2
	StatusInternalError      Status = 3
)

// subscribe response
const (
	StatusInvalidFilter Status = 2
	StatusUnknownBlock  Status = 3
)
