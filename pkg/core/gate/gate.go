// Package gate serializes outbound HTTP calls so the process as a whole stays
// under an external per-second ceiling. A single scheduling goroutine assigns
// dispatch slots in arrival order; the network call itself runs in its own
// goroutine, so a slow response never delays the next caller's slot.
//
// Each running process enforces its own independent ceiling. There is no
// cross-process coordination; horizontally scaled deployments multiply the
// effective request rate.
package gate

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrGateClosed is returned for requests enqueued after Close.
var ErrGateClosed = errors.New("gate: closed")

const jobQueueSize = 100

// Clock abstracts wall time so tests can drive the scheduler without real
// delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Doer is the transport the gate dispatches through, normally *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type result struct {
	resp *http.Response
	err  error
}

type job struct {
	req *http.Request
	ch  chan result
}

// Gate is a FIFO rate limiter over a Doer. Zero value is not usable; build
// with New.
type Gate struct {
	minInterval time.Duration
	clock       Clock
	transport   Doer
	log         zerolog.Logger

	jobs     chan job
	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock replaces the wall clock. Used by tests.
func WithClock(c Clock) Option {
	return func(g *Gate) { g.clock = c }
}

// New creates a Gate that spaces consecutive dispatches by at least
// minInterval and starts its scheduling goroutine.
func New(transport Doer, minInterval time.Duration, log zerolog.Logger, opts ...Option) *Gate {
	g := &Gate{
		minInterval: minInterval,
		clock:       realClock{},
		transport:   transport,
		log:         log.With().Str("component", "fetch-gate").Logger(),
		jobs:        make(chan job, jobQueueSize),
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	go g.schedule()
	return g
}

// Do enqueues req and blocks until its response arrives. Dispatch order
// matches enqueue order; response order does not. A network failure rejects
// only this caller and leaves the scheduler intact.
//
// There is no cancellation: a caller that gives up externally has already
// consumed its slot, which cannot be reclaimed.
func (g *Gate) Do(req *http.Request) (*http.Response, error) {
	ch := make(chan result, 1)
	select {
	case g.jobs <- job{req: req, ch: ch}:
	case <-g.stop:
		return nil, ErrGateClosed
	}
	// The send can still win against a concurrent (or completed) Close, in
	// which case the job sits in a queue the scheduler no longer reads. Once
	// the scheduler has exited, drain the queue ourselves: every queued job
	// is answered on its own channel, so this receive always completes —
	// either with the real response of an already-dispatched call or with
	// ErrGateClosed.
	select {
	case r := <-ch:
		return r.resp, r.err
	case <-g.stopped:
		g.drain()
		r := <-ch
		return r.resp, r.err
	}
}

// Close stops the scheduler. Requests still waiting in the queue are
// rejected with ErrGateClosed.
func (g *Gate) Close() {
	g.stopOnce.Do(func() {
		close(g.stop)
		<-g.stopped
	})
}

// schedule is the single goroutine that assigns dispatch slots. Because only
// one slot assignment runs at a time, the queue itself acts as the FIFO
// mutex; no lock is needed around nextAvailable.
func (g *Gate) schedule() {
	defer close(g.stopped)

	var nextAvailable time.Time
	for {
		select {
		case <-g.stop:
			g.drain()
			return
		case j := <-g.jobs:
			now := g.clock.Now()
			wait := nextAvailable.Sub(now)
			if wait < 0 {
				wait = 0
			}
			// The slot is claimed before the call fires, so the request
			// may still be in flight while later slots are assigned.
			nextAvailable = now.Add(wait + g.minInterval)

			if wait > 0 {
				g.clock.Sleep(wait)
			}
			g.fire(j)
		}
	}
}

// drain rejects everything still queued. Safe to call from several
// goroutines at once; each job is received, and answered, exactly once.
func (g *Gate) drain() {
	for {
		select {
		case j := <-g.jobs:
			j.ch <- result{err: ErrGateClosed}
		default:
			return
		}
	}
}

func (g *Gate) fire(j job) {
	go func() {
		resp, err := g.transport.Do(j.req)
		if err != nil {
			g.log.Debug().Err(err).Str("url", j.req.URL.String()).Msg("dispatch failed")
		}
		j.ch <- result{resp: resp, err: err}
	}()
}
