// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txprocessor - connects a transaction handler to a validator
//
// the processor registers its family, then answers process requests
// one at a time; state reads and writes made by the handler are
// forwarded to the validator and messages that arrive while waiting
// for them are queued for the main loop
package txprocessor

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/archerd/counter"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/processor"
	"github.com/bitmark-inc/archerd/zmqutil"
)

// TransactionHandler - the state machine being served
type TransactionHandler interface {
	FamilyName() string
	FamilyVersions() []string
	Namespaces() []string
	Apply(header *processor.Header, payload []byte, context processor.Context) error
}

// State - lifecycle state
type State int32

// lifecycle states
const (
	Idle State = iota
	Connecting
	Registering
	Active
	Stopping
	Closed
)

// transactions handled concurrently, requests are served serially
const maxOccupancy = 1

const (
	warningInterval = 10 * time.Second
	warningBurst    = 5
)

// Processor - one registration with a validator
type Processor struct {
	log       *logger.L
	transport zmqutil.Transport
	endpoint  string
	handler   TransactionHandler

	state    int32
	stop     int32
	finished chan struct{}

	// messages received while waiting for a correlated response
	queue []*message.Message

	warnings *rate.Limiter

	processed      counter.Counter
	invalid        counter.Counter
	internalErrors counter.Counter
	pings          counter.Counter
}

// New - create an idle processor
func New(endpoint string, transport zmqutil.Transport, handler TransactionHandler, log *logger.L) *Processor {
	return &Processor{
		log:       log,
		transport: transport,
		endpoint:  endpoint,
		handler:   handler,
		state:     int32(Idle),
		finished:  make(chan struct{}),
		warnings:  rate.NewLimiter(rate.Every(warningInterval), warningBurst),
	}
}

// String - state name
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Connecting:
		return "Connecting"
	case Registering:
		return "Registering"
	case Active:
		return "Active"
	case Stopping:
		return "Stopping"
	case Closed:
		return "Closed"
	default:
		return "Invalid"
	}
}

// State - current lifecycle state
func (p *Processor) State() State {
	return State(atomic.LoadInt32(&p.state))
}

func (p *Processor) setState(state State) {
	atomic.StoreInt32(&p.state, int32(state))
	p.log.Debugf("state: %s", state)
}

// Start - connect, register and serve requests until stopped
func (p *Processor) Start() error {
	if !atomic.CompareAndSwapInt32(&p.state, int32(Idle), int32(Connecting)) {
		return fault.ErrAlreadyInitialised
	}
	defer close(p.finished)

	p.log.Infof("connecting to: %s", p.endpoint)
	err := p.transport.Connect(p.endpoint)
	if nil != err {
		p.log.Errorf("connect to: %s  error: %s", p.endpoint, err)
		p.setState(Closed)
		return err
	}

	p.setState(Registering)
	err = p.register()
	if nil != err {
		p.log.Errorf("register error: %s", err)
		p.transport.Close()
		p.setState(Closed)
		return err
	}

	p.setState(Active)
	p.log.Infof("registered family: %s  versions: %v", p.handler.FamilyName(), p.handler.FamilyVersions())

	err = p.serve()

	p.setState(Stopping)
	if nil == err {
		if e := p.unregister(); nil != e {
			p.log.Warnf("unregister error: %s", e)
		}
	} else {
		p.log.Errorf("serve error: %s", err)
	}
	p.transport.Close()
	p.setState(Closed)

	p.log.Infof("processed: %d  invalid: %d  internal errors: %d  pings: %d",
		p.processed.Uint64(), p.invalid.Uint64(), p.internalErrors.Uint64(), p.pings.Uint64())
	return err
}

// Stop - request the serve loop to end and wait for teardown
func (p *Processor) Stop() error {
	switch p.State() {
	case Idle, Closed:
		return fault.ErrNotRunning
	}
	atomic.StoreInt32(&p.stop, 1)
	atomic.CompareAndSwapInt32(&p.state, int32(Active), int32(Stopping))
	<-p.finished
	return nil
}

func (p *Processor) stopping() bool {
	return 0 != atomic.LoadInt32(&p.stop)
}
