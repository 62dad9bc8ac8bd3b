// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txprocessor_test

import (
	"errors"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/payload"
	"github.com/bitmark-inc/archerd/processor"
	"github.com/bitmark-inc/archerd/staterecord"
	"github.com/bitmark-inc/archerd/txprocessor"
)

func processRequest(contextID string, p *payload.Payload) *message.ProcessRequest {
	return &message.ProcessRequest{
		Header: message.TransactionHeader{
			FamilyName:      address.FamilyName,
			FamilyVersion:   processor.FamilyVersion,
			SignerPublicKey: signer,
			Nonce:           "n-" + contextID,
		},
		Payload:   p.Pack(),
		ContextID: contextID,
	}
}

func newProcessor(t *testing.T) (*gomock.Controller, *validator, *txprocessor.Processor) {
	ctl := gomock.NewController(t)
	v, transport := newValidator(ctl)
	transport.EXPECT().Connect(endpoint).Return(nil).Times(1)
	transport.EXPECT().Close().Return(nil).Times(1)
	handler := processor.New(logger.New("processor"))
	return ctl, v, txprocessor.New(endpoint, transport, handler, logger.New("tp"))
}

// accept the registration that Start sends
func acceptRegistration(t *testing.T, v *validator) {
	request := v.next()
	require.Equal(t, message.TypeTpRegisterRequest, request.Type, "wrong request type")
	register, err := message.UnpackRegisterRequest(request.Content)
	require.Nil(t, err, "unpack register")
	assert.Equal(t, address.FamilyName, register.Family, "wrong family")
	assert.Equal(t, processor.FamilyVersion, register.Version, "wrong version")
	assert.Equal(t, []string{address.Namespace()}, register.Namespaces, "wrong namespaces")
	assert.Equal(t, uint32(1), register.MaxOccupancy, "wrong occupancy")
	v.push(message.TypeTpRegisterResponse, request.CorrelationID, &message.RegisterResponse{Status: message.StatusOK})
}

// stop a running processor and acknowledge the unregister request
func stopProcessor(t *testing.T, v *validator, p *txprocessor.Processor, result chan error) {
	stopped := make(chan error, 1)
	go func() {
		stopped <- p.Stop()
	}()
	waitFor(t, p, txprocessor.Stopping)
	v.timeout()

	request := v.next()
	assert.Equal(t, message.TypeTpUnregisterRequest, request.Type, "wrong request type")
	v.push(message.TypeTpUnregisterResponse, request.CorrelationID, &message.UnregisterResponse{Status: message.StatusOK})

	assert.Nil(t, <-result, "start result")
	assert.Nil(t, <-stopped, "stop result")
	assert.Equal(t, txprocessor.Closed, p.State(), "not closed")
}

func TestRegisterProcessStop(t *testing.T) {
	ctl, v, p := newProcessor(t)
	defer ctl.Finish()

	assert.Equal(t, txprocessor.Idle, p.State(), "wrong initial state")

	result := make(chan error, 1)
	go func() {
		result <- p.Start()
	}()
	acceptRegistration(t, v)

	v.push(message.TypeTpProcessRequest, "p1", processRequest("ctx1", payload.NewAddAccount("alice", 7)))

	get := v.next()
	require.Equal(t, message.TypeTpStateGetRequest, get.Type, "expected state get")
	getRequest, err := message.UnpackStateGetRequest(get.Content)
	assert.Nil(t, err, "unpack get")
	assert.Equal(t, "ctx1", getRequest.ContextID, "wrong context id")
	assert.Equal(t, []string{address.AccountAddress("alice")}, getRequest.Addresses, "wrong addresses")
	v.push(message.TypeTpStateGetResponse, get.CorrelationID, &message.StateGetResponse{
		Entries: []message.StateEntry{{Address: address.AccountAddress("alice")}},
		Status:  message.StatusOK,
	})

	set := v.next()
	require.Equal(t, message.TypeTpStateSetRequest, set.Type, "expected state set")
	setRequest, err := message.UnpackStateSetRequest(set.Content)
	assert.Nil(t, err, "unpack set")
	require.Equal(t, 1, len(setRequest.Entries), "wrong entry count")
	container, err := staterecord.UnpackAccounts(setRequest.Entries[0].Data)
	assert.Nil(t, err, "unpack container")
	assert.Equal(t, []staterecord.Account{{Name: "alice", Number: 7, Balance: 0}}, container.Entries, "wrong state written")
	v.push(message.TypeTpStateSetResponse, set.CorrelationID, &message.StateSetResponse{
		Addresses: []string{address.AccountAddress("alice")},
		Status:    message.StatusOK,
	})

	response := v.next()
	assert.Equal(t, message.TypeTpProcessResponse, response.Type, "expected process response")
	assert.Equal(t, "p1", response.CorrelationID, "wrong correlation id")
	processResponse, err := message.UnpackProcessResponse(response.Content)
	assert.Nil(t, err, "unpack response")
	assert.Equal(t, message.StatusOK, processResponse.Status, "wrong status")

	stopProcessor(t, v, p, result)
}

func TestInvalidTransactionStatus(t *testing.T) {
	ctl, v, p := newProcessor(t)
	defer ctl.Finish()

	result := make(chan error, 1)
	go func() {
		result <- p.Start()
	}()
	acceptRegistration(t, v)

	v.push(message.TypeTpProcessRequest, "p1", processRequest("ctx1", payload.NewWithdraw("bob", 1, 5)))

	get := v.next()
	require.Equal(t, message.TypeTpStateGetRequest, get.Type, "expected state get")
	v.push(message.TypeTpStateGetResponse, get.CorrelationID, &message.StateGetResponse{Status: message.StatusOK})

	response := v.next()
	require.Equal(t, message.TypeTpProcessResponse, response.Type, "expected process response")
	processResponse, err := message.UnpackProcessResponse(response.Content)
	assert.Nil(t, err, "unpack response")
	assert.Equal(t, message.StatusInvalidTransaction, processResponse.Status, "wrong status")
	assert.Contains(t, processResponse.Message, "account not found", "wrong message")

	v.fail(errors.New("connection lost"))
	assert.Equal(t, "connection lost", (<-result).Error(), "wrong start result")
	assert.Equal(t, txprocessor.Closed, p.State(), "not closed")
}

func TestStateFailureIsInternalError(t *testing.T) {
	ctl, v, p := newProcessor(t)
	defer ctl.Finish()

	result := make(chan error, 1)
	go func() {
		result <- p.Start()
	}()
	acceptRegistration(t, v)

	v.push(message.TypeTpProcessRequest, "p1", processRequest("ctx1", payload.NewDeposit("carol", 1, 5)))

	get := v.next()
	require.Equal(t, message.TypeTpStateGetRequest, get.Type, "expected state get")
	v.push(message.TypeTpStateGetResponse, get.CorrelationID, &message.StateGetResponse{Status: message.StatusAuthorizationError})

	response := v.next()
	require.Equal(t, message.TypeTpProcessResponse, response.Type, "expected process response")
	processResponse, err := message.UnpackProcessResponse(response.Content)
	assert.Nil(t, err, "unpack response")
	assert.Equal(t, message.StatusInternalError, processResponse.Status, "wrong status")

	stopProcessor(t, v, p, result)
}

func TestMessagesQueuedDuringStateRequest(t *testing.T) {
	ctl, v, p := newProcessor(t)
	defer ctl.Finish()

	result := make(chan error, 1)
	go func() {
		result <- p.Start()
	}()
	acceptRegistration(t, v)

	v.push(message.TypeTpProcessRequest, "p1", processRequest("ctx1", payload.NewDeposit("dave", 1, 5)))

	get := v.next()
	require.Equal(t, message.TypeTpStateGetRequest, get.Type, "expected state get")

	// a second request and a ping arrive before the state response
	v.push(message.TypeTpProcessRequest, "p2", processRequest("ctx2", payload.NewDeposit("erin", 1, 5)))
	v.push(message.TypePingRequest, "ping1", &message.PingResponse{})
	v.push(message.TypeTpStateGetResponse, get.CorrelationID, &message.StateGetResponse{Status: message.StatusOK})

	pong := v.next()
	assert.Equal(t, message.TypePingResponse, pong.Type, "ping not answered while waiting")
	assert.Equal(t, "ping1", pong.CorrelationID, "wrong ping correlation id")

	first := v.next()
	assert.Equal(t, message.TypeTpProcessResponse, first.Type, "expected first response")
	assert.Equal(t, "p1", first.CorrelationID, "wrong first correlation id")

	get = v.next()
	require.Equal(t, message.TypeTpStateGetRequest, get.Type, "queued request not served")
	getRequest, err := message.UnpackStateGetRequest(get.Content)
	assert.Nil(t, err, "unpack get")
	assert.Equal(t, "ctx2", getRequest.ContextID, "wrong context id")
	v.push(message.TypeTpStateGetResponse, get.CorrelationID, &message.StateGetResponse{Status: message.StatusOK})

	second := v.next()
	assert.Equal(t, "p2", second.CorrelationID, "wrong second correlation id")

	stopProcessor(t, v, p, result)
}

func TestRegistrationRejected(t *testing.T) {
	ctl, v, p := newProcessor(t)
	defer ctl.Finish()

	result := make(chan error, 1)
	go func() {
		result <- p.Start()
	}()

	request := v.next()
	v.push(message.TypeTpRegisterResponse, request.CorrelationID, &message.RegisterResponse{Status: message.StatusError})

	err := <-result
	assert.True(t, fault.IsErrProtocol(err), "wrong error class")
	assert.Equal(t, txprocessor.Closed, p.State(), "not closed")

	assert.Equal(t, fault.ErrAlreadyInitialised, p.Start(), "restart allowed")
	assert.Equal(t, fault.ErrNotRunning, p.Stop(), "stop after close")
}

func TestStopBeforeStart(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_, transport := newValidator(ctl)
	p := txprocessor.New(endpoint, transport, processor.New(logger.New("processor")), logger.New("tp"))
	assert.Equal(t, fault.ErrNotRunning, p.Stop(), "wrong error")
}
