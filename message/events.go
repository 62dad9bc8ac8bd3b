// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"github.com/bitmark-inc/archerd/wire"
)

// event types and attributes published by the validator
const (
	BlockCommitEventType = "sawtooth/block-commit"
	StateDeltaEventType  = "sawtooth/state-delta"

	BlockIDAttribute  = "block_id"
	BlockNumAttribute = "block_num"

	AddressFilterKey = "address"

	// sent as the last known block when nothing has been seen
	NullBlockID = "0000000000000000"
)

// FilterType - how an event filter matches attribute values
type FilterType int32

// filter types
const (
	FilterTypeUnset FilterType = 0
	SimpleAny       FilterType = 1
	SimpleAll       FilterType = 2
	RegexAny        FilterType = 3
	RegexAll        FilterType = 4
)

// ChangeType - kind of state change
type ChangeType int32

// change types
const (
	ChangeTypeUnset ChangeType = 0
	ChangeSet       ChangeType = 1
	ChangeDelete    ChangeType = 2
)

// EventFilter - restrict a subscription by attribute
type EventFilter struct {
	Key         string
	MatchString string
	FilterType  FilterType
}

// EventSubscription - one event type with optional filters
type EventSubscription struct {
	EventType string
	Filters   []EventFilter
}

// SubscribeRequest - CLIENT_EVENTS_SUBSCRIBE_REQUEST content
type SubscribeRequest struct {
	Subscriptions     []EventSubscription
	LastKnownBlockIDs []string
}

// SubscribeResponse - CLIENT_EVENTS_SUBSCRIBE_RESPONSE content
type SubscribeResponse struct {
	Status          Status
	ResponseMessage string
}

// UnsubscribeRequest - CLIENT_EVENTS_UNSUBSCRIBE_REQUEST content, empty
type UnsubscribeRequest struct{}

// UnsubscribeResponse - CLIENT_EVENTS_UNSUBSCRIBE_RESPONSE content
type UnsubscribeResponse struct {
	Status Status
}

// Attribute - key/value pair attached to an event
type Attribute struct {
	Key   string
	Value string
}

// Event - one validator event
type Event struct {
	EventType  string
	Attributes []Attribute
	Data       []byte
}

// EventList - CLIENT_EVENTS content
type EventList struct {
	Events []Event
}

// StateChange - one address written or deleted by a block
type StateChange struct {
	Address string
	Value   []byte
	Type    ChangeType
}

// Pack - encode
func (f *EventFilter) Pack() []byte {
	buffer := wire.AppendString(nil, 1, f.Key)
	buffer = wire.AppendString(buffer, 2, f.MatchString)
	return wire.AppendInt32(buffer, 3, int32(f.FilterType))
}

// Pack - encode
func (s *EventSubscription) Pack() []byte {
	buffer := wire.AppendString(nil, 1, s.EventType)
	for i := range s.Filters {
		buffer = wire.AppendBytes(buffer, 2, s.Filters[i].Pack())
	}
	return buffer
}

// Pack - encode
func (r *SubscribeRequest) Pack() []byte {
	buffer := []byte{}
	for i := range r.Subscriptions {
		buffer = wire.AppendBytes(buffer, 1, r.Subscriptions[i].Pack())
	}
	return appendStrings(buffer, 2, r.LastKnownBlockIDs)
}

// UnpackSubscribeRequest - decode
func UnpackSubscribeRequest(buffer []byte) (*SubscribeRequest, error) {
	r := &SubscribeRequest{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		switch f.Number {
		case 1:
			s := EventSubscription{}
			err := wire.Walk(f.Bytes, func(g *wire.Field) error {
				var err error
				switch g.Number {
				case 1:
					s.EventType, err = g.String()
				case 2:
					var filter EventFilter
					filter, err = unpackFilter(g.Bytes)
					s.Filters = append(s.Filters, filter)
				}
				return err
			})
			if nil != err {
				return err
			}
			r.Subscriptions = append(r.Subscriptions, s)
		case 2:
			s, err := f.String()
			if nil != err {
				return err
			}
			r.LastKnownBlockIDs = append(r.LastKnownBlockIDs, s)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

func unpackFilter(buffer []byte) (EventFilter, error) {
	filter := EventFilter{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			filter.Key, err = f.String()
		case 2:
			filter.MatchString, err = f.String()
		case 3:
			var v int32
			v, err = f.Int32()
			filter.FilterType = FilterType(v)
		}
		return err
	})
	return filter, err
}

// Pack - encode
func (r *SubscribeResponse) Pack() []byte {
	buffer := wire.AppendInt32(nil, 1, int32(r.Status))
	if "" != r.ResponseMessage {
		buffer = wire.AppendString(buffer, 2, r.ResponseMessage)
	}
	return buffer
}

// UnpackSubscribeResponse - decode
func UnpackSubscribeResponse(buffer []byte) (*SubscribeResponse, error) {
	r := &SubscribeResponse{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			var v int32
			v, err = f.Int32()
			r.Status = Status(v)
		case 2:
			r.ResponseMessage, err = f.String()
		}
		return err
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *UnsubscribeRequest) Pack() []byte {
	return []byte{}
}

// Pack - encode
func (r *UnsubscribeResponse) Pack() []byte {
	return wire.AppendInt32(nil, 1, int32(r.Status))
}

// UnpackUnsubscribeResponse - decode
func UnpackUnsubscribeResponse(buffer []byte) (*UnsubscribeResponse, error) {
	r := &UnsubscribeResponse{}
	status, err := unpackStatus(buffer, 1)
	if nil != err {
		return nil, err
	}
	r.Status = status
	return r, nil
}

// Attribute - first value of the named attribute
func (e *Event) Attribute(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Pack - encode
func (e *Event) Pack() []byte {
	buffer := wire.AppendString(nil, 1, e.EventType)
	for _, a := range e.Attributes {
		attribute := wire.AppendString(nil, 1, a.Key)
		attribute = wire.AppendString(attribute, 2, a.Value)
		buffer = wire.AppendBytes(buffer, 2, attribute)
	}
	if len(e.Data) > 0 {
		buffer = wire.AppendBytes(buffer, 3, e.Data)
	}
	return buffer
}

func unpackEvent(buffer []byte) (Event, error) {
	e := Event{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			e.EventType, err = f.String()
		case 2:
			a := Attribute{}
			err = wire.Walk(f.Bytes, func(g *wire.Field) error {
				var err error
				switch g.Number {
				case 1:
					a.Key, err = g.String()
				case 2:
					a.Value, err = g.String()
				}
				return err
			})
			e.Attributes = append(e.Attributes, a)
		case 3:
			e.Data, err = f.Data()
		}
		return err
	})
	return e, err
}

// Pack - encode
func (l *EventList) Pack() []byte {
	buffer := []byte{}
	for i := range l.Events {
		buffer = wire.AppendBytes(buffer, 1, l.Events[i].Pack())
	}
	return buffer
}

// UnpackEventList - decode CLIENT_EVENTS content
func UnpackEventList(buffer []byte) (*EventList, error) {
	l := &EventList{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		if 1 != f.Number {
			return nil
		}
		if _, err := f.Data(); nil != err {
			return err
		}
		e, err := unpackEvent(f.Bytes)
		if nil != err {
			return err
		}
		l.Events = append(l.Events, e)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return l, nil
}

// PackStateChanges - encode a StateChangeList for a state-delta event
func PackStateChanges(changes []StateChange) []byte {
	buffer := []byte{}
	for _, c := range changes {
		change := wire.AppendString(nil, 1, c.Address)
		change = wire.AppendBytes(change, 2, c.Value)
		change = wire.AppendInt32(change, 3, int32(c.Type))
		buffer = wire.AppendBytes(buffer, 1, change)
	}
	return buffer
}

// UnpackStateChanges - decode the StateChangeList in a state-delta event
func UnpackStateChanges(buffer []byte) ([]StateChange, error) {
	changes := []StateChange{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		if 1 != f.Number {
			return nil
		}
		if _, err := f.Data(); nil != err {
			return err
		}
		c := StateChange{}
		err := wire.Walk(f.Bytes, func(g *wire.Field) error {
			var err error
			switch g.Number {
			case 1:
				c.Address, err = g.String()
			case 2:
				c.Value, err = g.Data()
			case 3:
				var v int32
				v, err = g.Int32()
				c.Type = ChangeType(v)
			}
			return err
		})
		if nil != err {
			return err
		}
		changes = append(changes, c)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return changes, nil
}

// read a single status field
func unpackStatus(buffer []byte, number int) (Status, error) {
	status := StatusUnset
	err := wire.Walk(buffer, func(f *wire.Field) error {
		if int(f.Number) != number {
			return nil
		}
		v, err := f.Int32()
		status = Status(v)
		return err
	})
	return status, err
}
