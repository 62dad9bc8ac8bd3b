// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/archerd/fault"
)

// Client - a DEALER connection to a validator endpoint
type Client struct {
	sync.Mutex
	address  string
	identity string
	socket   *zmq.Socket
	timeout  time.Duration
}

// NewClient - create an unconnected client
//
// a zero timeout blocks receives indefinitely
func NewClient(timeout time.Duration) (*Client, error) {
	if timeout < 0 {
		return nil, fault.ErrInvalidTimeout
	}
	client := &Client{
		address:  "",
		identity: uuid.New().String(),
		socket:   nil,
		timeout:  timeout,
	}
	return client, nil
}

// create a socket and connect
func (client *Client) openSocket() error {

	socket, err := zmq.NewSocket(zmq.DEALER)
	if nil != err {
		return err
	}

	// validator routes replies by this identity
	err = socket.SetIdentity(client.identity)
	if nil != err {
		goto failure
	}

	// zero => do not set timeout
	if 0 != client.timeout {
		err = socket.SetSndtimeo(client.timeout)
		if nil != err {
			goto failure
		}
		err = socket.SetRcvtimeo(client.timeout)
		if nil != err {
			goto failure
		}
	}
	err = socket.SetLinger(0)
	if nil != err {
		goto failure
	}

	// this need zmq 4.2
	err = socket.SetHeartbeatIvl(heartbeatInterval)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		goto failure
	}
	err = socket.SetHeartbeatTimeout(heartbeatTimeout)
	if nil != err && zmq.ErrorNotImplemented42 != err {
		goto failure
	}

	err = socket.Connect(client.address)
	if nil != err {
		goto failure
	}

	client.socket = socket
	return nil

failure:
	socket.Close()
	return err
}

// destroy the socket but keep the address so a reconnect is possible
func (client *Client) closeSocket() error {

	if nil == client.socket {
		return nil
	}

	client.socket.Disconnect(client.address)

	err := client.socket.Close()
	client.socket = nil
	return err
}

// Connect - disconnect any old address and connect to a new one
func (client *Client) Connect(address string) error {
	client.Lock()
	defer client.Unlock()

	err := client.closeSocket()
	if nil != err {
		return err
	}
	client.address = address
	err = client.openSocket()
	if nil != err {
		client.address = ""
	}
	return err
}

// IsConnected - check if a socket is open
func (client *Client) IsConnected() bool {
	client.Lock()
	defer client.Unlock()
	return nil != client.socket
}

// Close - disconnect and close
func (client *Client) Close() error {
	client.Lock()
	defer client.Unlock()
	err := client.closeSocket()
	client.address = ""
	return err
}

// Send - send one single frame message
func (client *Client) Send(data []byte) error {
	client.Lock()
	socket := client.socket
	client.Unlock()

	if nil == socket {
		return fault.ErrNotConnected
	}
	_, err := socket.SendBytes(data, 0)
	return err
}

// Receive - receive one message, the last frame is the payload
func (client *Client) Receive() ([]byte, error) {
	client.Lock()
	socket := client.socket
	client.Unlock()

	if nil == socket {
		return nil, fault.ErrNotConnected
	}
	frames, err := socket.RecvMessageBytes(0)
	if nil != err {
		return nil, err
	}
	if 0 == len(frames) {
		return []byte{}, nil
	}
	return frames[len(frames)-1], nil
}

// String - connected address
func (client *Client) String() string {
	return client.address
}

// IsTimeout - error is a receive or send timeout
func IsTimeout(err error) bool {
	if nil == err {
		return false
	}
	return zmq.Errno(syscall.EAGAIN) == zmq.AsErrno(err)
}
