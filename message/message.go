// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package message - validator envelope and the records it carries
//
// every exchange with the validator is one Message whose content is
// the encoding of the record selected by its type
package message

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/bitmark-inc/archerd/wire"
)

// Type - envelope message type
type Type int32

// message types used by this family
const (
	TypeDefault Type = 0

	TypeTpRegisterRequest    Type = 1
	TypeTpRegisterResponse   Type = 2
	TypeTpUnregisterRequest  Type = 3
	TypeTpUnregisterResponse Type = 4
	TypeTpProcessRequest     Type = 5
	TypeTpProcessResponse    Type = 6
	TypeTpStateGetRequest    Type = 7
	TypeTpStateGetResponse   Type = 8
	TypeTpStateSetRequest    Type = 9
	TypeTpStateSetResponse   Type = 10

	TypeClientEventsSubscribeRequest    Type = 500
	TypeClientEventsSubscribeResponse   Type = 501
	TypeClientEventsUnsubscribeRequest  Type = 502
	TypeClientEventsUnsubscribeResponse Type = 503
	TypeClientEvents                    Type = 504

	TypePingRequest  Type = 1000
	TypePingResponse Type = 1001
)

var typeNames = map[Type]string{
	TypeDefault:                         "DEFAULT",
	TypeTpRegisterRequest:               "TP_REGISTER_REQUEST",
	TypeTpRegisterResponse:              "TP_REGISTER_RESPONSE",
	TypeTpUnregisterRequest:             "TP_UNREGISTER_REQUEST",
	TypeTpUnregisterResponse:            "TP_UNREGISTER_RESPONSE",
	TypeTpProcessRequest:                "TP_PROCESS_REQUEST",
	TypeTpProcessResponse:               "TP_PROCESS_RESPONSE",
	TypeTpStateGetRequest:               "TP_STATE_GET_REQUEST",
	TypeTpStateGetResponse:              "TP_STATE_GET_RESPONSE",
	TypeTpStateSetRequest:               "TP_STATE_SET_REQUEST",
	TypeTpStateSetResponse:              "TP_STATE_SET_RESPONSE",
	TypeClientEventsSubscribeRequest:    "CLIENT_EVENTS_SUBSCRIBE_REQUEST",
	TypeClientEventsSubscribeResponse:   "CLIENT_EVENTS_SUBSCRIBE_RESPONSE",
	TypeClientEventsUnsubscribeRequest:  "CLIENT_EVENTS_UNSUBSCRIBE_REQUEST",
	TypeClientEventsUnsubscribeResponse: "CLIENT_EVENTS_UNSUBSCRIBE_RESPONSE",
	TypeClientEvents:                    "CLIENT_EVENTS",
	TypePingRequest:                     "PING_REQUEST",
	TypePingResponse:                    "PING_RESPONSE",
}

// String - protocol name of the type
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE_%d", int32(t))
}

// Message - the envelope
type Message struct {
	Type          Type
	CorrelationID string
	Content       []byte
}

// Pack - encode the envelope
func (m *Message) Pack() []byte {
	buffer := wire.AppendInt32(nil, 1, int32(m.Type))
	buffer = wire.AppendString(buffer, 2, m.CorrelationID)
	return wire.AppendBytes(buffer, 3, m.Content)
}

// Unpack - decode an envelope
func Unpack(buffer []byte) (*Message, error) {
	m := &Message{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			var v int32
			v, err = f.Int32()
			m.Type = Type(v)
		case 2:
			m.CorrelationID, err = f.String()
		case 3:
			m.Content, err = f.Data()
		}
		return err
	})
	if nil != err {
		return nil, err
	}
	return m, nil
}

// record - anything that can be placed in an envelope
type record interface {
	Pack() []byte
}

// New - wrap a record in an envelope
func New(t Type, correlationID string, r record) *Message {
	content := []byte{}
	if nil != r {
		content = r.Pack()
	}
	return &Message{
		Type:          t,
		CorrelationID: correlationID,
		Content:       content,
	}
}

func appendStrings(buffer []byte, number protowire.Number, values []string) []byte {
	for _, s := range values {
		buffer = wire.AppendString(buffer, number, s)
	}
	return buffer
}
