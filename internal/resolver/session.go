package resolver

import (
	"context"
	"log"
	"sync"

	"geozone/geo"
	"geozone/models"
)

// Session serializes interactive lookups, the map-pin-drag case: every
// Submit cancels the one before it, and only the latest result reaches the
// Results channel. Stale answers are dropped, never delivered out of order.
type Session struct {
	orch *Orchestrator

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool

	results chan models.ResolutionResult
}

// NewSession starts a session over the orchestrator.
func NewSession(orch *Orchestrator) *Session {
	return &Session{
		orch:    orch,
		results: make(chan models.ResolutionResult, 1),
	}
}

// Results delivers the latest resolution per Submit burst. The channel
// closes when the session does.
func (s *Session) Results() <-chan models.ResolutionResult {
	return s.results
}

// Submit starts resolving the point, cancelling any lookup still in flight.
// It never blocks; the answer arrives on Results unless a newer Submit
// supersedes it first. The context bounds this one lookup.
func (s *Session) Submit(ctx context.Context, p geo.Point) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	go func() {
		defer cancel()
		res, err := s.orch.Resolve(ctx, p)
		if err != nil {
			log.Printf("Session resolution for %s failed: %v", p, err)
			return
		}
		s.deliver(seq, res)
	}()
}

// deliver hands the result to the channel if it is still the latest. An
// undelivered older result is replaced rather than queued, so a slow reader
// only ever sees the freshest answer.
func (s *Session) deliver(seq uint64, res models.ResolutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq {
		return
	}
	select {
	case <-s.results:
	default:
	}
	s.results <- res
}

// Close cancels any lookup in flight and closes the Results channel.
// Further Submits are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	close(s.results)
}
