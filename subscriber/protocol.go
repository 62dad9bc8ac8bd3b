// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subscriber

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/zmqutil"
)

// send the subscription and check its single response
func (s *Subscriber) subscribe(lastKnownBlockIDs []string) error {
	if 0 == len(lastKnownBlockIDs) {
		lastKnownBlockIDs = []string{message.NullBlockID}
	}
	request := &message.SubscribeRequest{
		Subscriptions:     subscriptions(),
		LastKnownBlockIDs: lastKnownBlockIDs,
	}

	correlationID := uuid.New().String()
	err := s.send(message.TypeClientEventsSubscribeRequest, correlationID, request)
	if nil != err {
		return err
	}

	data, err := s.transport.Receive()
	if nil != err {
		return err
	}
	m, err := message.Unpack(data)
	if nil != err {
		return err
	}
	if message.TypeClientEventsSubscribeResponse != m.Type {
		return fault.Protocolf("%s: expected: %s  received: %s", fault.ErrUnexpectedMessage, message.TypeClientEventsSubscribeResponse, m.Type)
	}
	if correlationID != m.CorrelationID {
		s.log.Warnf("subscribe response correlation id: %q  expected: %q", m.CorrelationID, correlationID)
	}

	response, err := message.UnpackSubscribeResponse(m.Content)
	if nil != err {
		return err
	}
	if message.StatusOK != response.Status {
		return fault.Protocolf("%s: status: %d  message: %q", fault.ErrSubscriptionFailed, response.Status, response.ResponseMessage)
	}
	return nil
}

// receive until a stop is requested or a fatal error
func (s *Subscriber) listen() error {
	for !s.stopping() {
		data, err := s.transport.Receive()
		if nil != err {
			if zmqutil.IsTimeout(err) {
				continue
			}
			return err
		}

		m, err := message.Unpack(data)
		if nil != err {
			return err
		}

		switch m.Type {
		case message.TypeClientEvents:
			list, err := message.UnpackEventList(m.Content)
			if nil != err {
				return err
			}
			s.batches.Increment()
			err = s.dispatch(list.Events)
			if nil != err {
				return err
			}

		case message.TypePingRequest:
			s.pings.Increment()
			err = s.send(message.TypePingResponse, m.CorrelationID, &message.PingResponse{})
			if nil != err {
				return err
			}

		default:
			s.protocolError(m.Type)
		}
	}
	return nil
}

// call every handler with the same batch
func (s *Subscriber) dispatch(events []message.Event) error {
	s.Lock()
	handlers := append([]Handler{}, s.handlers...)
	s.Unlock()

	for _, handler := range handlers {
		err := handler(events)
		if nil != err {
			return err
		}
	}
	return nil
}

// request the end of the subscription and wait for the acknowledgement
func (s *Subscriber) unsubscribe() error {
	correlationID := uuid.New().String()
	err := s.send(message.TypeClientEventsUnsubscribeRequest, correlationID, &message.UnsubscribeRequest{})
	if nil != err {
		return err
	}

	for {
		data, err := s.transport.Receive()
		if nil != err {
			return err
		}
		m, err := message.Unpack(data)
		if nil != err {
			return err
		}

		switch m.Type {
		case message.TypeClientEventsUnsubscribeResponse:
			response, err := message.UnpackUnsubscribeResponse(m.Content)
			if nil != err {
				return err
			}
			if message.StatusOK != response.Status {
				return fault.Protocolf("%s: status: %d", fault.ErrUnsubscriptionFailed, response.Status)
			}
			return nil

		case message.TypePingRequest:
			err = s.send(message.TypePingResponse, m.CorrelationID, &message.PingResponse{})
			if nil != err {
				return err
			}

		default:
			s.log.Debugf("discard while unsubscribing: %s", m.Type)
		}
	}
}

func (s *Subscriber) send(t message.Type, correlationID string, r interface{ Pack() []byte }) error {
	return s.transport.Send(message.New(t, correlationID, r).Pack())
}

// log unexpected messages without flooding the log
func (s *Subscriber) protocolError(t message.Type) {
	n := s.protocolErrors.Increment()
	if s.warnings.Allow() {
		s.log.Warnf("%s: %s  (total: %d)", fault.ErrUnexpectedMessage, t, n)
	}
}
