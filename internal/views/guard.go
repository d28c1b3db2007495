package views

import (
	"context"
	"sync"
	"time"
)

// DefaultSubmissionRetention is how long the outcome of a finished submission
// is kept so that a repeated post of the same form can be answered with it.
const DefaultSubmissionRetention = time.Minute

// Submission is one form post identified by its token.
type Submission struct {
	done       chan struct{}
	result     any
	finishedAt time.Time
}

// Done is closed once the submission finished.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the submission finished and returns its outcome. The
// outcome is nil if the submission was abandoned.
func (s *Submission) Wait(ctx context.Context) (any, error) {
	select {
	case <-s.done:
		return s.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Submission) finished() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// SubmissionGuard tracks form submissions keyed by the token rendered into
// the form. It is shared by all requests: only the first post of a token is
// processed, later posts of the same token get its outcome.
type SubmissionGuard struct {
	mu      sync.Mutex
	entries map[string]*Submission
	retain  time.Duration
	now     func() time.Time
}

func NewSubmissionGuard() *SubmissionGuard {
	return NewSubmissionGuardWithRetention(DefaultSubmissionRetention)
}

// NewSubmissionGuardWithRetention creates a guard that keeps finished
// outcomes for retain.
func NewSubmissionGuardWithRetention(retain time.Duration) *SubmissionGuard {
	return &SubmissionGuard{
		entries: make(map[string]*Submission),
		retain:  retain,
		now:     time.Now,
	}
}

// Begin registers token. first is true if the caller is the one to process
// the submission and must call Finish; otherwise the returned Submission
// belongs to an earlier post of the same token.
func (g *SubmissionGuard) Begin(token string) (sub *Submission, first bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prune()
	if existing, ok := g.entries[token]; ok {
		return existing, false
	}

	sub = &Submission{done: make(chan struct{})}
	g.entries[token] = sub
	return sub, true
}

// Finish records the outcome of the submission for token and wakes everyone
// waiting on it. Only the first call has an effect. A nil outcome marks the
// submission as abandoned; the token is then forgotten so it can be posted
// again.
func (g *SubmissionGuard) Finish(token string, outcome any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sub, ok := g.entries[token]
	if !ok || sub.finished() {
		return
	}

	sub.result = outcome
	sub.finishedAt = g.now()
	close(sub.done)

	if outcome == nil {
		delete(g.entries, token)
	}
}

// InFlight returns the number of submissions that have not finished.
func (g *SubmissionGuard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, sub := range g.entries {
		if !sub.finished() {
			n++
		}
	}
	return n
}

// prune drops finished outcomes older than the retention. Callers hold g.mu.
func (g *SubmissionGuard) prune() {
	now := g.now()
	for token, sub := range g.entries {
		if sub.finished() && now.Sub(sub.finishedAt) > g.retain {
			delete(g.entries, token)
		}
	}
}
