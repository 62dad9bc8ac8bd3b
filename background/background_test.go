// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/archerd/background"
)

type looper struct {
	count int
	final int
}

func (l *looper) Run(args interface{}, shutdown <-chan struct{}) {
	step := args.(int)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		l.count += step
		time.Sleep(time.Millisecond)
	}
	l.final = -1
}

func TestStartStop(t *testing.T) {
	one := &looper{}
	two := &looper{}

	p := background.Start(background.Processes{one, two}, 3)
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.Equal(t, -1, one.final, "first process not stopped")
	assert.Equal(t, -1, two.final, "second process not stopped")
	assert.True(t, one.count > 0 && 0 == one.count%3, "first process did not run")

	// second stop must not block or panic
	p.Stop()
}

func TestDoneWhenProcessesReturn(t *testing.T) {
	ran := make(chan struct{})
	quick := background.Func(func(args interface{}, shutdown <-chan struct{}) {
		close(ran)
	})

	p := background.Start(background.Processes{quick}, nil)

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("done not closed after process returned")
	}
	<-ran
	p.Stop()
}
