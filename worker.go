package dcpool

import (
	"runtime"
	"sync"
	"time"
)

// Worker owns the one OS thread on which all handle creation and
// destruction happens.
//
// Some platforms tie a drawing resource to the thread that created it for
// the resource's whole lifetime. Worker satisfies that constraint by
// running a single goroutine locked to its OS thread; callers from any
// goroutine submit requests and either block until the worker has run
// them or fire and forget.
//
// The worker alternates between two states: idle (queue empty, blocked on
// its wakeup signal, consuming no CPU) and draining (running every queued
// request until the queue is observed empty). The emptiness check happens
// under the same lock as dequeueing, and the wakeup signal is a buffered
// channel, so a request enqueued during a drain is either picked up by
// that drain or leaves a signal pending for the next one, so a submitted
// request is never stranded.
//
// Thread safety: Worker is safe for concurrent use.
type Worker struct {
	mu    sync.Mutex
	queue []func()

	// signal wakes the worker; capacity 1 so posting is non-blocking and
	// redundant wakeups coalesce.
	signal chan struct{}

	// done tells the worker to drain once more and exit.
	done chan struct{}

	closed bool
	wg     sync.WaitGroup
}

// NewWorker starts the creation worker. The worker runs until Close and
// is otherwise immortal: it has no terminal state of its own.
func NewWorker() *Worker {
	w := &Worker{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// run is the worker thread's main loop.
func (w *Worker) run() {
	defer w.wg.Done()

	// Pin to one OS thread for the worker's lifetime; every request runs
	// on this thread and on no other.
	runtime.LockOSThread()

	for {
		select {
		case <-w.signal:
			w.drain()
		case <-w.done:
			// Run anything still queued so no waiter is left hanging.
			w.drain()
			return
		}
	}
}

// drain runs queued requests until the queue is observed empty under the
// lock. Requests themselves run outside the lock so a slow platform call
// never blocks enqueueing.
func (w *Worker) drain() {
	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}
		fn := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		fn()
	}
}

// submit enqueues one request and wakes the worker.
func (w *Worker) submit(fn func()) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWorkerClosed
	}
	w.queue = append(w.queue, fn)
	depth := len(w.queue)
	w.mu.Unlock()

	Logger().Debug("worker request queued", "depth", depth)

	select {
	case w.signal <- struct{}{}:
	default:
	}
	return nil
}

// Do submits fn to the worker thread and blocks the caller until fn has
// run. With timeout > 0 the wait is bounded: Do returns ErrAcquireTimeout
// if fn has not completed in time. The timeout does not cancel fn; it
// still runs on the worker thread, the waiter alone is released.
//
// A timeout of zero or less waits without bound, on the assumption that
// the worker never dies. Do after Close returns ErrWorkerClosed.
func (w *Worker) Do(fn func(), timeout time.Duration) error {
	ran := make(chan struct{})
	err := w.submit(func() {
		defer close(ran)
		fn()
	})
	if err != nil {
		return err
	}

	if timeout <= 0 {
		<-ran
		return nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ran:
		return nil
	case <-t.C:
		return ErrAcquireTimeout
	}
}

// Close shuts the worker down after one final drain of the queue, then
// waits for the worker goroutine to exit. Close is idempotent; a closed
// worker rejects further submissions and never restarts.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	w.wg.Wait()
}
