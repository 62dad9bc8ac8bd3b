// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
)

func TestEnvelope(t *testing.T) {
	m := message.New(message.TypeClientEventsSubscribeRequest, "c-1", &message.SubscribeRequest{
		LastKnownBlockIDs: []string{message.NullBlockID},
	})

	d, err := message.Unpack(m.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, message.TypeClientEventsSubscribeRequest, d.Type, "wrong type")
	assert.Equal(t, "c-1", d.CorrelationID, "wrong correlation id")
	assert.Equal(t, m.Content, d.Content, "wrong content")
}

// first bytes of an envelope must be the type tag
func TestEnvelopeBytes(t *testing.T) {
	m := message.Message{
		Type:          message.TypeClientEvents,
		CorrelationID: "x",
		Content:       []byte{1},
	}
	expected := []byte{0x08, 0xf8, 0x03, 0x12, 0x01, 'x', 0x1a, 0x01, 0x01}
	assert.Equal(t, expected, m.Pack(), "wrong envelope bytes")
}

func TestUnpackGarbage(t *testing.T) {
	_, err := message.Unpack([]byte{0x0a, 0x7f})
	assert.True(t, fault.IsErrDecode(err), "expected decode error, got: %v", err)
}

func TestSubscribeRequest(t *testing.T) {
	r := &message.SubscribeRequest{
		Subscriptions: []message.EventSubscription{
			{EventType: message.BlockCommitEventType},
			{
				EventType: message.StateDeltaEventType,
				Filters: []message.EventFilter{
					{Key: message.AddressFilterKey, MatchString: "^9abef4.*", FilterType: message.RegexAny},
				},
			},
		},
		LastKnownBlockIDs: []string{"b2", "b1"},
	}

	d, err := message.UnpackSubscribeRequest(r.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, r, d, "request differs")
}

func TestEventList(t *testing.T) {
	changes := []message.StateChange{
		{Address: "9abef400aa", Value: []byte{1, 2}, Type: message.ChangeSet},
		{Address: "9abef401bb", Value: []byte{}, Type: message.ChangeDelete},
	}
	l := &message.EventList{
		Events: []message.Event{
			{
				EventType: message.BlockCommitEventType,
				Attributes: []message.Attribute{
					{Key: message.BlockIDAttribute, Value: "abc"},
					{Key: message.BlockNumAttribute, Value: "12"},
				},
			},
			{
				EventType: message.StateDeltaEventType,
				Data:      message.PackStateChanges(changes),
			},
		},
	}

	d, err := message.UnpackEventList(l.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, 2, len(d.Events), "wrong event count")

	n, ok := d.Events[0].Attribute(message.BlockNumAttribute)
	assert.True(t, ok, "block number missing")
	assert.Equal(t, "12", n, "wrong block number")
	_, ok = d.Events[0].Attribute("missing")
	assert.False(t, ok, "unexpected attribute")

	c, err := message.UnpackStateChanges(d.Events[1].Data)
	assert.Nil(t, err, "unpack changes error")
	assert.Equal(t, changes, c, "changes differ")
}

func TestProcessRequest(t *testing.T) {
	r := &message.ProcessRequest{
		Header: message.TransactionHeader{
			FamilyName:      "archer",
			FamilyVersion:   "1.0",
			Inputs:          []string{"9abef4"},
			Outputs:         []string{"9abef4"},
			Nonce:           "n",
			SignerPublicKey: "02ab",
		},
		Payload:   []byte{0x08, 0x03},
		Signature: "sig",
		ContextID: "ctx",
	}

	d, err := message.UnpackProcessRequest(r.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, r, d, "request differs")
}

func TestStateResponses(t *testing.T) {
	g := &message.StateGetResponse{
		Entries: []message.StateEntry{{Address: "a", Data: []byte{9}}},
		Status:  message.StatusOK,
	}
	dg, err := message.UnpackStateGetResponse(g.Pack())
	assert.Nil(t, err, "get unpack error")
	assert.Equal(t, g, dg, "get response differs")

	s := &message.StateSetResponse{
		Addresses: []string{"a"},
		Status:    message.StatusAuthorizationError,
	}
	ds, err := message.UnpackStateSetResponse(s.Pack())
	assert.Nil(t, err, "set unpack error")
	assert.Equal(t, s, ds, "set response differs")
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "CLIENT_EVENTS", message.TypeClientEvents.String(), "wrong name")
	assert.Equal(t, "TYPE_77", message.Type(77).String(), "wrong unknown name")
}
