package views

import (
	"context"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/rs/zerolog"
)

// State is the state of a collection fetch.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	}
	return "unknown"
}

// Notice is the outcome of a row action.
type Notice struct {
	Text string
	OK   bool
}

type listMessages struct {
	fetchPrefix    string
	deleted        string
	deleteFailed   string
	deleteErrorPfx string
}

// ListView fetches a collection and acts on its rows.
type ListView[T any] struct {
	view

	fetch  func(ctx context.Context) ([]T, error)
	remove func(ctx context.Context, id string) error
	msgs   listMessages

	state  State
	items  []T
	errMsg string
	notice *Notice
}

// ListSnapshot is a copy of a list view's state for rendering.
type ListSnapshot[T any] struct {
	State  State
	Items  []T
	Error  string
	Notice *Notice
}

func newListView[T any](
	fetch func(context.Context) ([]T, error),
	remove func(context.Context, string) error,
	msgs listMessages,
) *ListView[T] {
	l := &ListView[T]{fetch: fetch, remove: remove, msgs: msgs, state: Loading}
	l.init(nil)
	return l
}

// Load issues the collection fetch. On success the view is Ready with the
// records in server order; on failure it is Failed with a message built from
// the fetch prefix and the error text.
func (l *ListView[T]) Load(ctx context.Context) {
	ctx, cancel := l.bind(ctx)
	defer cancel()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to fetch list")
		l.state = Failed
		l.errMsg = l.msgs.fetchPrefix + err.Error()
		l.items = nil
		return
	}

	l.state = Ready
	l.errMsg = ""
	l.items = items
}

// Delete removes the record with the given id. Confirmation is the caller's
// responsibility. The list is only refreshed by re-running Load after the
// backend accepted the delete.
func (l *ListView[T]) Delete(ctx context.Context, id string) Notice {
	bctx, cancel := l.bind(ctx)
	err := l.remove(bctx, id)
	cancel()

	if l.Closed() {
		return Notice{}
	}

	var n Notice
	switch {
	case err == nil:
		l.Load(ctx)
		n = Notice{Text: l.msgs.deleted, OK: true}
	case services.IsTransport(err):
		zerolog.Ctx(ctx).Warn().Err(err).Str("id", id).Msg("delete request failed")
		n = Notice{Text: l.msgs.deleteErrorPfx + err.Error()}
	default:
		zerolog.Ctx(ctx).Warn().Err(err).Str("id", id).Msg("delete rejected")
		n = Notice{Text: l.msgs.deleteFailed}
	}

	l.mu.Lock()
	if !l.closed {
		l.notice = &n
	}
	l.mu.Unlock()
	return n
}

// Snapshot returns a copy of the current state.
func (l *ListView[T]) Snapshot() ListSnapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]T, len(l.items))
	copy(items, l.items)

	return ListSnapshot[T]{
		State:  l.state,
		Items:  items,
		Error:  l.errMsg,
		Notice: l.notice,
	}
}
