// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txprocessor

import (
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/processor"
)

var _ processor.Context = (*validatorContext)(nil)

// validatorContext - global state of one transaction, held by the validator
type validatorContext struct {
	processor *Processor
	contextID string
}

// Get - data at an address, nil when absent
func (c *validatorContext) Get(address string) ([]byte, error) {
	request := &message.StateGetRequest{
		ContextID: c.contextID,
		Addresses: []string{address},
	}
	m, err := c.processor.roundTrip(message.TypeTpStateGetRequest, request, message.TypeTpStateGetResponse)
	if nil != err {
		return nil, fault.Internalf("validator get: %s", err)
	}
	response, err := message.UnpackStateGetResponse(m.Content)
	if nil != err {
		return nil, fault.Internalf("validator get: %s", err)
	}
	if message.StatusOK != response.Status {
		return nil, fault.Internalf("%s: get: %s  status: %d", fault.ErrStateAuthorisationFailure, address, response.Status)
	}

	for _, entry := range response.Entries {
		if address == entry.Address && 0 != len(entry.Data) {
			return entry.Data, nil
		}
	}
	return nil, nil
}

// Set - write data at an address
func (c *validatorContext) Set(address string, data []byte) error {
	request := &message.StateSetRequest{
		ContextID: c.contextID,
		Entries: []message.StateEntry{
			{Address: address, Data: data},
		},
	}
	m, err := c.processor.roundTrip(message.TypeTpStateSetRequest, request, message.TypeTpStateSetResponse)
	if nil != err {
		return fault.Internalf("validator set: %s", err)
	}
	response, err := message.UnpackStateSetResponse(m.Content)
	if nil != err {
		return fault.Internalf("validator set: %s", err)
	}
	if message.StatusOK != response.Status {
		return fault.Internalf("%s: set: %s  status: %d", fault.ErrStateAuthorisationFailure, address, response.Status)
	}
	return nil
}
