// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package subscriber - validator event subscription
//
// lifecycle:
//
//	Idle -> Connecting -> Subscribing -> Active -> Stopping -> Closed
//
// Start blocks running the receive loop; Stop is cooperative, the
// loop notices the request at the top of its next iteration and then
// unsubscribes and disconnects on its own goroutine.
package subscriber

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/archerd/address"
	"github.com/bitmark-inc/archerd/counter"
	"github.com/bitmark-inc/archerd/fault"
	"github.com/bitmark-inc/archerd/message"
	"github.com/bitmark-inc/archerd/zmqutil"
)

// State - lifecycle state
type State int32

// lifecycle states
const (
	Idle State = iota
	Connecting
	Subscribing
	Active
	Stopping
	Closed
)

// Handler - receives every event batch, in registration order
//
// a non-nil error is fatal and ends the receive loop
type Handler func(events []message.Event) error

// limit on protocol error warnings
const (
	warningInterval = 10 * time.Second
	warningBurst    = 5
)

// Subscriber - one subscription to a validator
type Subscriber struct {
	sync.Mutex

	log       *logger.L
	transport zmqutil.Transport
	endpoint  string
	handlers  []Handler

	state    int32
	stop     int32
	finished chan struct{}

	warnings *rate.Limiter

	batches        counter.Counter
	pings          counter.Counter
	protocolErrors counter.Counter
}

// New - create an idle subscriber for an endpoint
func New(endpoint string, transport zmqutil.Transport, log *logger.L) *Subscriber {
	return &Subscriber{
		log:       log,
		transport: transport,
		endpoint:  endpoint,
		handlers:  []Handler{},
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
	case Subscribing:
		return "Subscribing"
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
func (s *Subscriber) State() State {
	return State(atomic.LoadInt32(&s.state))
}

func (s *Subscriber) setState(state State) {
	atomic.StoreInt32(&s.state, int32(state))
	s.log.Debugf("state: %s", state)
}

// AddHandler - append a handler
func (s *Subscriber) AddHandler(handler Handler) {
	s.Lock()
	s.handlers = append(s.handlers, handler)
	s.Unlock()
}

// ClearHandlers - remove all handlers
func (s *Subscriber) ClearHandlers() {
	s.Lock()
	s.handlers = []Handler{}
	s.Unlock()
}

// Start - connect, subscribe and run the receive loop until stopped
//
// an empty list of last known block ids subscribes from the null block
func (s *Subscriber) Start(lastKnownBlockIDs []string) error {
	if !atomic.CompareAndSwapInt32(&s.state, int32(Idle), int32(Connecting)) {
		return fault.ErrAlreadyInitialised
	}
	defer close(s.finished)

	s.log.Infof("connecting to: %s", s.endpoint)
	err := s.transport.Connect(s.endpoint)
	if nil != err {
		s.log.Errorf("connect to: %s  error: %s", s.endpoint, err)
		s.setState(Closed)
		return err
	}

	s.setState(Subscribing)
	err = s.subscribe(lastKnownBlockIDs)
	if nil != err {
		s.log.Errorf("subscribe error: %s", err)
		s.transport.Close()
		s.setState(Closed)
		return err
	}

	s.setState(Active)
	s.log.Info("subscribed")

	err = s.listen()

	s.setState(Stopping)
	if nil == err {
		if e := s.unsubscribe(); nil != e {
			s.log.Warnf("unsubscribe error: %s", e)
		}
	} else {
		s.log.Errorf("receive loop error: %s", err)
	}
	s.transport.Close()
	s.setState(Closed)

	s.log.Infof("batches: %d  pings: %d  protocol errors: %d", s.batches.Uint64(), s.pings.Uint64(), s.protocolErrors.Uint64())
	return err
}

// Stop - request the receive loop to end and wait for teardown
//
// must not be called from a handler
func (s *Subscriber) Stop() error {
	switch s.State() {
	case Idle, Closed:
		return fault.ErrNotRunning
	}
	atomic.StoreInt32(&s.stop, 1)
	atomic.CompareAndSwapInt32(&s.state, int32(Active), int32(Stopping))
	<-s.finished
	return nil
}

func (s *Subscriber) stopping() bool {
	return 0 != atomic.LoadInt32(&s.stop)
}

// the subscription set: all block commits and archer state deltas
func subscriptions() []message.EventSubscription {
	return []message.EventSubscription{
		{
			EventType: message.BlockCommitEventType,
		},
		{
			EventType: message.StateDeltaEventType,
			Filters: []message.EventFilter{
				{
					Key:         message.AddressFilterKey,
					MatchString: address.FilterPattern(),
					FilterType:  message.RegexAny,
				},
			},
		},
	}
}
