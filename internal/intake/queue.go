package intake

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrQueueClosed is returned by Submit after Close, and by Receive once a
// closed queue has been drained.
var ErrQueueClosed = errors.New("submission queue closed")

// Request is one crawl submission.
type Request struct {
	// ID identifies the submission in logs and API responses.
	ID string

	// URL is the raw string as submitted, not yet validated.
	URL string

	// SubmittedAt is when the submission was accepted.
	SubmittedAt time.Time
}

// Queue is an unbounded FIFO of Requests. Submit never blocks.
type Queue struct {
	mu     sync.Mutex
	items  []Request
	closed bool

	// ready holds at most one pending wake-up for a blocked receiver.
	ready chan struct{}
	done  chan struct{}
}

// NewQueue creates an empty open Queue.
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Submit enqueues rawURL and returns the accepted Request.
func (q *Queue) Submit(rawURL string) (Request, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return Request{}, ErrQueueClosed
	}
	req := Request{
		ID:          uuid.NewString(),
		URL:         rawURL,
		SubmittedAt: time.Now(),
	}
	q.items = append(q.items, req)
	q.mu.Unlock()

	q.wake()
	return req, nil
}

// Receive blocks until a Request is available and removes it from the queue.
// It returns the context error if ctx ends first, or ErrQueueClosed when the
// queue is closed and empty.
func (q *Queue) Receive(ctx context.Context) (Request, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			req := q.items[0]
			q.items[0] = Request{}
			q.items = q.items[1:]
			more := len(q.items) > 0
			q.mu.Unlock()

			if more {
				q.wake()
			}
			return req, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return Request{}, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return Request{}, ctx.Err()
		case <-q.ready:
		case <-q.done:
		}
	}
}

// Len returns the number of waiting Requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting submissions. Requests already queued can still be received.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

func (q *Queue) wake() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
