// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package timer

import (
	"context"
	"sync"
	"time"
)

// EventLoop repeatedly calls a function at a fixed period on its own
// goroutine.
//
// The function must not call Start or Stop on the loop that runs it.
type EventLoop struct {
	lock   sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start runs [f] every [period] until Stop is called or [ctx] is cancelled.
// Returns false if the loop is already running.
func (e *EventLoop) Start(ctx context.Context, period time.Duration, f func()) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f()
			}
		}
	}()
	return true
}

// Stop ends the loop and waits for the running call, if any, to return.
// Returns false if the loop wasn't running.
func (e *EventLoop) Stop() bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.cancel == nil {
		return false
	}

	e.cancel()
	<-e.done
	e.cancel = nil
	e.done = nil
	return true
}

// Running returns true between a successful Start and the matching Stop.
func (e *EventLoop) Running() bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.cancel != nil
}
