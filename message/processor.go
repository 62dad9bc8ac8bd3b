// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"github.com/bitmark-inc/archerd/wire"
)

// RegisterRequest - TP_REGISTER_REQUEST content
type RegisterRequest struct {
	Family       string
	Version      string
	Namespaces   []string
	MaxOccupancy uint32
}

// RegisterResponse - TP_REGISTER_RESPONSE content
type RegisterResponse struct {
	Status Status
}

// UnregisterRequest - TP_UNREGISTER_REQUEST content, empty
type UnregisterRequest struct{}

// UnregisterResponse - TP_UNREGISTER_RESPONSE content
type UnregisterResponse struct {
	Status Status
}

// TransactionHeader - signed header of a transaction
type TransactionHeader struct {
	BatcherPublicKey string
	Dependencies     []string
	FamilyName       string
	FamilyVersion    string
	Inputs           []string
	Nonce            string
	Outputs          []string
	PayloadSHA512    string
	SignerPublicKey  string
}

// ProcessRequest - TP_PROCESS_REQUEST content
type ProcessRequest struct {
	Header    TransactionHeader
	Payload   []byte
	Signature string
	ContextID string
}

// ProcessResponse - TP_PROCESS_RESPONSE content
type ProcessResponse struct {
	Status       Status
	Message      string
	ExtendedData []byte
}

// StateEntry - address and its data
type StateEntry struct {
	Address string
	Data    []byte
}

// StateGetRequest - TP_STATE_GET_REQUEST content
type StateGetRequest struct {
	ContextID string
	Addresses []string
}

// StateGetResponse - TP_STATE_GET_RESPONSE content
type StateGetResponse struct {
	Entries []StateEntry
	Status  Status
}

// StateSetRequest - TP_STATE_SET_REQUEST content
type StateSetRequest struct {
	ContextID string
	Entries   []StateEntry
}

// StateSetResponse - TP_STATE_SET_RESPONSE content
type StateSetResponse struct {
	Addresses []string
	Status    Status
}

// PingResponse - PING_RESPONSE content, empty
type PingResponse struct{}

// Pack - encode
func (r *RegisterRequest) Pack() []byte {
	buffer := wire.AppendString(nil, 1, r.Family)
	buffer = wire.AppendString(buffer, 2, r.Version)
	buffer = appendStrings(buffer, 4, r.Namespaces)
	if 0 != r.MaxOccupancy {
		buffer = wire.AppendUint(buffer, 5, uint64(r.MaxOccupancy))
	}
	return buffer
}

// UnpackRegisterRequest - decode
func UnpackRegisterRequest(buffer []byte) (*RegisterRequest, error) {
	r := &RegisterRequest{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			r.Family, err = f.String()
		case 2:
			r.Version, err = f.String()
		case 4:
			var s string
			s, err = f.String()
			r.Namespaces = append(r.Namespaces, s)
		case 5:
			r.MaxOccupancy, err = f.Uint32()
		}
		return err
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *RegisterResponse) Pack() []byte {
	return wire.AppendInt32(nil, 1, int32(r.Status))
}

// UnpackRegisterResponse - decode
func UnpackRegisterResponse(buffer []byte) (*RegisterResponse, error) {
	status, err := unpackStatus(buffer, 1)
	if nil != err {
		return nil, err
	}
	return &RegisterResponse{Status: status}, nil
}

// Pack - encode
func (r *UnregisterRequest) Pack() []byte {
	return []byte{}
}

// Pack - encode
func (r *UnregisterResponse) Pack() []byte {
	return wire.AppendInt32(nil, 1, int32(r.Status))
}

// UnpackUnregisterResponse - decode
func UnpackUnregisterResponse(buffer []byte) (*UnregisterResponse, error) {
	status, err := unpackStatus(buffer, 1)
	if nil != err {
		return nil, err
	}
	return &UnregisterResponse{Status: status}, nil
}

// Pack - encode
func (h *TransactionHeader) Pack() []byte {
	buffer := []byte{}
	if "" != h.BatcherPublicKey {
		buffer = wire.AppendString(buffer, 1, h.BatcherPublicKey)
	}
	buffer = appendStrings(buffer, 2, h.Dependencies)
	buffer = wire.AppendString(buffer, 3, h.FamilyName)
	buffer = wire.AppendString(buffer, 4, h.FamilyVersion)
	buffer = appendStrings(buffer, 5, h.Inputs)
	buffer = wire.AppendString(buffer, 6, h.Nonce)
	buffer = appendStrings(buffer, 7, h.Outputs)
	if "" != h.PayloadSHA512 {
		buffer = wire.AppendString(buffer, 9, h.PayloadSHA512)
	}
	return wire.AppendString(buffer, 10, h.SignerPublicKey)
}

func unpackTransactionHeader(buffer []byte) (TransactionHeader, error) {
	h := TransactionHeader{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		if f.Number < 1 || f.Number > 10 {
			return nil
		}
		s, err := f.String()
		if nil != err {
			return err
		}
		switch f.Number {
		case 1:
			h.BatcherPublicKey = s
		case 2:
			h.Dependencies = append(h.Dependencies, s)
		case 3:
			h.FamilyName = s
		case 4:
			h.FamilyVersion = s
		case 5:
			h.Inputs = append(h.Inputs, s)
		case 6:
			h.Nonce = s
		case 7:
			h.Outputs = append(h.Outputs, s)
		case 9:
			h.PayloadSHA512 = s
		case 10:
			h.SignerPublicKey = s
		}
		return nil
	})
	return h, err
}

// Pack - encode
func (r *ProcessRequest) Pack() []byte {
	buffer := wire.AppendBytes(nil, 1, r.Header.Pack())
	buffer = wire.AppendBytes(buffer, 2, r.Payload)
	buffer = wire.AppendString(buffer, 3, r.Signature)
	return wire.AppendString(buffer, 4, r.ContextID)
}

// UnpackProcessRequest - decode
func UnpackProcessRequest(buffer []byte) (*ProcessRequest, error) {
	r := &ProcessRequest{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			var data []byte
			data, err = f.Data()
			if nil == err {
				r.Header, err = unpackTransactionHeader(data)
			}
		case 2:
			r.Payload, err = f.Data()
		case 3:
			r.Signature, err = f.String()
		case 4:
			r.ContextID, err = f.String()
		}
		return err
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *ProcessResponse) Pack() []byte {
	buffer := wire.AppendInt32(nil, 1, int32(r.Status))
	if "" != r.Message {
		buffer = wire.AppendString(buffer, 2, r.Message)
	}
	if len(r.ExtendedData) > 0 {
		buffer = wire.AppendBytes(buffer, 3, r.ExtendedData)
	}
	return buffer
}

// UnpackProcessResponse - decode
func UnpackProcessResponse(buffer []byte) (*ProcessResponse, error) {
	r := &ProcessResponse{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			var v int32
			v, err = f.Int32()
			r.Status = Status(v)
		case 2:
			r.Message, err = f.String()
		case 3:
			r.ExtendedData, err = f.Data()
		}
		return err
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

func packEntry(e StateEntry) []byte {
	buffer := wire.AppendString(nil, 1, e.Address)
	return wire.AppendBytes(buffer, 2, e.Data)
}

func unpackEntry(buffer []byte) (StateEntry, error) {
	e := StateEntry{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			e.Address, err = f.String()
		case 2:
			e.Data, err = f.Data()
		}
		return err
	})
	return e, err
}

// Pack - encode
func (r *StateGetRequest) Pack() []byte {
	buffer := wire.AppendString(nil, 1, r.ContextID)
	return appendStrings(buffer, 2, r.Addresses)
}

// UnpackStateGetRequest - decode
func UnpackStateGetRequest(buffer []byte) (*StateGetRequest, error) {
	r := &StateGetRequest{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		var err error
		switch f.Number {
		case 1:
			r.ContextID, err = f.String()
		case 2:
			var s string
			s, err = f.String()
			r.Addresses = append(r.Addresses, s)
		}
		return err
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *StateGetResponse) Pack() []byte {
	buffer := []byte{}
	for _, e := range r.Entries {
		buffer = wire.AppendBytes(buffer, 1, packEntry(e))
	}
	return wire.AppendInt32(buffer, 2, int32(r.Status))
}

// UnpackStateGetResponse - decode
func UnpackStateGetResponse(buffer []byte) (*StateGetResponse, error) {
	r := &StateGetResponse{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		switch f.Number {
		case 1:
			data, err := f.Data()
			if nil != err {
				return err
			}
			e, err := unpackEntry(data)
			if nil != err {
				return err
			}
			r.Entries = append(r.Entries, e)
		case 2:
			v, err := f.Int32()
			if nil != err {
				return err
			}
			r.Status = Status(v)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *StateSetRequest) Pack() []byte {
	buffer := wire.AppendString(nil, 1, r.ContextID)
	for _, e := range r.Entries {
		buffer = wire.AppendBytes(buffer, 2, packEntry(e))
	}
	return buffer
}

// UnpackStateSetRequest - decode
func UnpackStateSetRequest(buffer []byte) (*StateSetRequest, error) {
	r := &StateSetRequest{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		switch f.Number {
		case 1:
			s, err := f.String()
			if nil != err {
				return err
			}
			r.ContextID = s
		case 2:
			data, err := f.Data()
			if nil != err {
				return err
			}
			e, err := unpackEntry(data)
			if nil != err {
				return err
			}
			r.Entries = append(r.Entries, e)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *StateSetResponse) Pack() []byte {
	buffer := appendStrings(nil, 1, r.Addresses)
	return wire.AppendInt32(buffer, 2, int32(r.Status))
}

// UnpackStateSetResponse - decode
func UnpackStateSetResponse(buffer []byte) (*StateSetResponse, error) {
	r := &StateSetResponse{}
	err := wire.Walk(buffer, func(f *wire.Field) error {
		switch f.Number {
		case 1:
			s, err := f.String()
			if nil != err {
				return err
			}
			r.Addresses = append(r.Addresses, s)
		case 2:
			v, err := f.Int32()
			if nil != err {
				return err
			}
			r.Status = Status(v)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return r, nil
}

// Pack - encode
func (r *PingResponse) Pack() []byte {
	return []byte{}
}
