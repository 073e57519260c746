// Copyright (c) 2024-2026 Neomantra Corp
//
// Executor indirection for subscription listener dispatch (spec §4.7,
// §5). Grounded on the teacher's dispatch-loop idiom in live/live.go,
// generalized to a pluggable interface with an in-place variant for
// deterministic tests.
//

package feed

import "sync"

// Executor runs submitted listener-dispatch tasks. A direct-inline
// executor runs Submit synchronously; a queued executor defers work to
// its own goroutine or loop.
type Executor interface {
	Submit(task func())
}

// InlineExecutor runs every task synchronously on the calling goroutine.
type InlineExecutor struct{}

func (InlineExecutor) Submit(task func()) { task() }

// InPlaceExecutor buffers submitted tasks and drains them only on an
// explicit ProcessAllPendingTasks call, enabling deterministic testing
// (spec §4.7's "in-place executor").
type InPlaceExecutor struct {
	mu      sync.Mutex
	pending []func()
}

// NewInPlaceExecutor returns a ready-to-use InPlaceExecutor.
func NewInPlaceExecutor() *InPlaceExecutor {
	return &InPlaceExecutor{}
}

// Submit buffers task for later execution.
func (e *InPlaceExecutor) Submit(task func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, task)
}

// ProcessAllPendingTasks runs every buffered task, in submission order,
// including any tasks submitted by a task while draining.
func (e *InPlaceExecutor) ProcessAllPendingTasks() int {
	count := 0
	for {
		e.mu.Lock()
		if len(e.pending) == 0 {
			e.mu.Unlock()
			return count
		}
		task := e.pending[0]
		e.pending = e.pending[1:]
		e.mu.Unlock()

		task()
		count++
	}
}

// PendingCount reports how many tasks are currently buffered.
func (e *InPlaceExecutor) PendingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}
