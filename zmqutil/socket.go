// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - message transport to a validator
package zmqutil

import (
	"time"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
)

// Transport - duplex single frame message transport
type Transport interface {
	Connect(address string) error
	Send(data []byte) error
	Receive() ([]byte, error)
	Close() error
}

// ensure the client satisfies the interface
var _ Transport = (*Client)(nil)
