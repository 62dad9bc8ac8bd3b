// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txprocessor

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/processor"
	"github.com/bitmark-inc/archerd/zmqutil"
)

type record interface {
	Pack() []byte
}

// register every family version
func (p *Processor) register() error {
	for _, version := range p.handler.FamilyVersions() {
		request := &message.RegisterRequest{
			Family:       p.handler.FamilyName(),
			Version:      version,
			Namespaces:   p.handler.Namespaces(),
			MaxOccupancy: maxOccupancy,
		}
		m, err := p.roundTrip(message.TypeTpRegisterRequest, request, message.TypeTpRegisterResponse)
		if nil != err {
			return err
		}
		response, err := message.UnpackRegisterResponse(m.Content)
		if nil != err {
			return err
		}
		if message.StatusOK != response.Status {
			return fault.Protocolf("%s: family: %s  version: %s  status: %d", fault.ErrRegistrationFailed, request.Family, version, response.Status)
		}
	}
	return nil
}

func (p *Processor) unregister() error {
	m, err := p.roundTrip(message.TypeTpUnregisterRequest, &message.UnregisterRequest{}, message.TypeTpUnregisterResponse)
	if nil != err {
		return err
	}
	response, err := message.UnpackUnregisterResponse(m.Content)
	if nil != err {
		return err
	}
	if message.StatusOK != response.Status {
		return fault.Protocolf("unregister status: %d", response.Status)
	}
	return nil
}

// serve requests until a stop is requested or a fatal error
func (p *Processor) serve() error {
	for !p.stopping() {
		m, err := p.next()
		if nil != err {
			if zmqutil.IsTimeout(err) {
				continue
			}
			return err
		}

		switch m.Type {
		case message.TypeTpProcessRequest:
			err = p.process(m)
			if nil != err {
				return err
			}

		case message.TypePingRequest:
			err = p.pong(m)
			if nil != err {
				return err
			}

		default:
			if p.warnings.Allow() {
				p.log.Warnf("%s: %s", fault.ErrUnexpectedMessage, m.Type)
			}
		}
	}
	return nil
}

// queued messages first, then the transport
func (p *Processor) next() (*message.Message, error) {
	if 0 != len(p.queue) {
		m := p.queue[0]
		p.queue = p.queue[1:]
		return m, nil
	}
	data, err := p.transport.Receive()
	if nil != err {
		return nil, err
	}
	return message.Unpack(data)
}

// apply one transaction and report its status
//
// only a failure to send the response is returned
func (p *Processor) process(m *message.Message) error {
	response := &message.ProcessResponse{
		Status: message.StatusOK,
	}

	request, err := message.UnpackProcessRequest(m.Content)
	if nil == err {
		header := &processor.Header{
			SignerPublicKey: request.Header.SignerPublicKey,
			FamilyName:      request.Header.FamilyName,
			FamilyVersion:   request.Header.FamilyVersion,
			Nonce:           request.Header.Nonce,
		}
		context := &validatorContext{
			processor: p,
			contextID: request.ContextID,
		}
		err = p.handler.Apply(header, request.Payload, context)
	}

	switch {
	case nil == err:
		p.processed.Increment()
	case fault.IsErrInvalidTransaction(err):
		p.invalid.Increment()
		response.Status = message.StatusInvalidTransaction
		response.Message = err.Error()
		p.log.Infof("invalid transaction: %s", err)
	default:
		p.internalErrors.Increment()
		response.Status = message.StatusInternalError
		response.Message = err.Error()
		p.log.Errorf("internal error: %s", err)
	}

	return p.send(message.TypeTpProcessResponse, m.CorrelationID, response)
}

func (p *Processor) pong(m *message.Message) error {
	p.pings.Increment()
	return p.send(message.TypePingResponse, m.CorrelationID, &message.PingResponse{})
}

// send a request and wait for the response with the same correlation id
//
// pings are answered while waiting, anything else is queued
func (p *Processor) roundTrip(t message.Type, r record, expected message.Type) (*message.Message, error) {
	correlationID := uuid.New().String()
	err := p.send(t, correlationID, r)
	if nil != err {
		return nil, err
	}

	for {
		data, err := p.transport.Receive()
		if nil != err {
			if zmqutil.IsTimeout(err) && !p.stopping() {
				continue
			}
			return nil, err
		}
		m, err := message.Unpack(data)
		if nil != err {
			return nil, err
		}

		switch {
		case correlationID == m.CorrelationID:
			if expected != m.Type {
				return nil, fault.Protocolf("%s: expected: %s  received: %s", fault.ErrUnexpectedMessage, expected, m.Type)
			}
			return m, nil

		case message.TypePingRequest == m.Type:
			err = p.pong(m)
			if nil != err {
				return nil, err
			}

		default:
			p.queue = append(p.queue, m)
		}
	}
}

func (p *Processor) send(t message.Type, correlationID string, r record) error {
	return p.transport.Send(message.New(t, correlationID, r).Pack())
}
