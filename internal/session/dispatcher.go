/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session funnels edits from many goroutines into one document store.
//
// Concurrency model: a single loop goroutine (Run) owns the subscriber set and is the only
// writer of the store. Public methods talk to the loop through channels; Dispatch blocks
// until its command has been applied. After every command that changed the document a
// snapshot is offered to each subscriber; subscribers whose buffer is full are skipped.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"pagecomposer/internal/document"
	applog "pagecomposer/internal/log"
)

var (
	// ErrClosed is returned by Dispatch once the dispatcher has been closed.
	ErrClosed = errors.New("session: dispatcher closed")
	// ErrRunning is returned when Run is called a second time.
	ErrRunning = errors.New("session: dispatcher already running")
	// ErrCommandPanicked wraps a panic raised by a command.
	ErrCommandPanicked = errors.New("session: command panicked")
)

// Command is one unit of work against the store. It runs on the dispatcher loop.
type Command func(*document.Store)

// Options tunes the dispatcher. Zero values pick the defaults.
type Options struct {
	QueueSize        int // pending commands before Dispatch blocks (default 64)
	SubscriberBuffer int // snapshots buffered per subscriber (default 16)
	Logger           *slog.Logger
}

type request struct {
	ctx  context.Context
	cmd  Command
	done chan error
}

type subscription struct {
	out chan document.Snapshot
}

// Dispatcher serializes commands against a store and fans out snapshots.
type Dispatcher struct {
	store *document.Store
	opts  Options
	log   *slog.Logger

	cmdCh         chan request
	subscribeCh   chan subscription
	unsubscribeCh chan (<-chan document.Snapshot)
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	started atomic.Bool
	closed  atomic.Bool
}

// New returns a dispatcher for store. Call Run to start processing.
func New(store *document.Store, opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.SubscriberBuffer <= 0 {
		opts.SubscriberBuffer = 16
	}
	if opts.Logger == nil {
		opts.Logger = applog.WithComponent("session")
	}
	return &Dispatcher{
		store:         store,
		opts:          opts,
		log:           opts.Logger,
		cmdCh:         make(chan request, opts.QueueSize),
		subscribeCh:   make(chan subscription),
		unsubscribeCh: make(chan (<-chan document.Snapshot)),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}
}

// Run processes commands until ctx is cancelled or Close is called.
// It closes every subscriber channel on exit.
func (d *Dispatcher) Run(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(d.stopped)

	clients := make(map[<-chan document.Snapshot]chan document.Snapshot)
	lastRev := d.store.Revision()

	broadcast := func() {
		snap := d.store.Snapshot()
		lastRev = snap.Revision
		for _, ch := range clients {
			select {
			case ch <- snap:
			default:
				// Subscriber buffer full; skip to avoid blocking the loop.
				d.log.Debug("subscriber skipped", slog.Uint64("rev", snap.Revision))
			}
		}
	}
	shutdown := func() {
		d.closed.Store(true)
		for _, ch := range clients {
			close(ch)
		}
		// Fail whatever is still queued.
		for {
			select {
			case req := <-d.cmdCh:
				req.done <- ErrClosed
			default:
				return
			}
		}
	}

	d.log.Debug("dispatcher: started")
	for {
		select {
		case <-ctx.Done():
			shutdown()
			d.log.Debug("dispatcher: stopped", slog.String("reason", ctx.Err().Error()))
			return nil

		case <-d.stopCh:
			shutdown()
			d.log.Debug("dispatcher: stopped")
			return nil

		case sub := <-d.subscribeCh:
			clients[sub.out] = sub.out

		case ch := <-d.unsubscribeCh:
			if out, ok := clients[ch]; ok {
				delete(clients, ch)
				close(out)
			}

		case resp := <-d.countReqCh:
			resp <- len(clients)

		case req := <-d.cmdCh:
			err := d.apply(req)
			if rev := d.store.Revision(); rev != lastRev {
				broadcast()
			}
			req.done <- err
		}
	}
}

func (d *Dispatcher) apply(req request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCommandPanicked, r)
			d.log.ErrorContext(req.ctx, "command panicked", slog.Any("panic", r))
		}
	}()
	before := d.store.Revision()
	req.cmd(d.store)
	d.log.DebugContext(req.ctx, "command applied",
		slog.Uint64("rev_before", before),
		slog.Uint64("rev", d.store.Revision()))
	return nil
}

// Dispatch queues cmd and waits until it has been applied.
// It returns ErrClosed after Close, or ctx.Err() if ctx ends first. A command abandoned
// through ctx may still be applied later.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return nil
	}
	if d.closed.Load() {
		return ErrClosed
	}
	req := request{ctx: ctx, cmd: cmd, done: make(chan error, 1)}
	select {
	case d.cmdCh <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopCh:
		return ErrClosed
	case <-d.stopped:
		return ErrClosed
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		// The loop may have answered just before exiting.
		select {
		case err := <-req.done:
			return err
		default:
			return ErrClosed
		}
	}
}

// Subscribe returns a channel that receives a snapshot after every change.
// The channel is closed by Unsubscribe or when the dispatcher stops.
func (d *Dispatcher) Subscribe() <-chan document.Snapshot {
	ch := make(chan document.Snapshot, d.opts.SubscriberBuffer)
	if d.closed.Load() {
		close(ch)
		return ch
	}
	select {
	case d.subscribeCh <- subscription{out: ch}:
	case <-d.stopCh:
		close(ch)
	case <-d.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes ch and closes it.
func (d *Dispatcher) Unsubscribe(ch <-chan document.Snapshot) {
	if d.closed.Load() {
		return
	}
	select {
	case d.unsubscribeCh <- ch:
	case <-d.stopCh:
	case <-d.stopped:
	}
}

// SubscriberCount returns the number of active subscribers.
func (d *Dispatcher) SubscriberCount() int {
	if d.closed.Load() {
		return 0
	}
	resp := make(chan int, 1)
	select {
	case d.countReqCh <- resp:
	case <-d.stopCh:
		return 0
	case <-d.stopped:
		return 0
	}
	select {
	case n := <-resp:
		return n
	case <-d.stopped:
		return 0
	}
}

// Close stops the loop and waits for it to exit if it was running.
func (d *Dispatcher) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.stopCh)
	}
	if d.started.Load() {
		<-d.stopped
	}
}
