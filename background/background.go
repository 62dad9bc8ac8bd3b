// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long lived goroutines and stop them together
package background

import (
	"sync"
)

// Process - a long lived task, Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Func - adapt a plain function to a Process
type Func func(args interface{}, shutdown <-chan struct{})

// Run - call the function
func (f Func) Run(args interface{}, shutdown <-chan struct{}) {
	f(args, shutdown)
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a started set of processes
type T struct {
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	done     chan struct{}
}

// Start - run each process on its own goroutine
func Start(processes Processes, args interface{}) *T {
	t := &T{
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	t.wg.Add(len(processes))
	for _, p := range processes {
		go func(p Process) {
			defer t.wg.Done()
			p.Run(args, t.shutdown)
		}(p)
	}

	go func() {
		t.wg.Wait()
		close(t.done)
	}()
	return t
}

// Done - closed once every process has returned
func (t *T) Done() <-chan struct{} {
	return t.done
}

// Stop - signal shutdown and wait for every process to return
func (t *T) Stop() {
	t.once.Do(func() {
		close(t.shutdown)
	})
	<-t.done
}
