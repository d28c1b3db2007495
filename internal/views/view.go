// Package views holds the state of each page: collection fetches, form
// submission, outcome messages and follow-up navigation. A view is created
// when a page is mounted and closed when it is torn down; nothing it fetched
// outlives it.
package views

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrSubmitInFlight is returned when a submit is attempted while another
	// submit of the same view is still outstanding.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrSubmitDisabled is returned when the submit control is disabled.
	ErrSubmitDisabled = errors.New("submission is not available")
	// ErrViewClosed is returned for operations on a closed view.
	ErrViewClosed = errors.New("view is closed")
)

// DefaultRedirectDelay is the pause between a successful submit and the
// follow-up navigation.
const DefaultRedirectDelay = 2 * time.Second

// Navigator performs a client-side transition to path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Options configure mutation views.
type Options struct {
	// Navigator, if set, is invoked once the redirect delay has passed.
	// Without one the pending transition is only recorded in the snapshot.
	Navigator     Navigator
	RedirectDelay time.Duration
}

func (o Options) delay() time.Duration {
	if o.RedirectDelay <= 0 {
		return DefaultRedirectDelay
	}
	return o.RedirectDelay
}

// Redirect is a transition scheduled after a successful submit.
type Redirect struct {
	Path  string
	After time.Duration
}

// Seconds is the delay in whole seconds, rounded up.
func (r Redirect) Seconds() int {
	return int((r.After + time.Second - 1) / time.Second)
}

// view carries the lifecycle shared by every page: a context cancelled on
// Close and at most one scheduled transition.
type view struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	navigator Navigator
	redirect  *Redirect
	timer     *time.Timer
}

func (v *view) init(nav Navigator) {
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.navigator = nav
}

// bind derives a request context that is cancelled either by the caller or by
// closing the view.
func (v *view) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(v.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// schedule records a transition and arms the navigator. Callers hold v.mu.
func (v *view) schedule(path string, after time.Duration) {
	v.redirect = &Redirect{Path: path, After: after}
	if v.navigator == nil {
		return
	}

	if v.timer != nil {
		v.timer.Stop()
	}
	nav := v.navigator
	v.timer = time.AfterFunc(after, func() {
		v.mu.Lock()
		closed := v.closed
		v.mu.Unlock()
		if !closed {
			nav.Navigate(path)
		}
	})
}

// Close tears the view down. Outstanding requests are cancelled, their
// results are discarded and any scheduled transition is dropped.
func (v *view) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	if v.timer != nil {
		v.timer.Stop()
	}
	v.cancel()
}

// Closed reports whether Close has been called.
func (v *view) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}
