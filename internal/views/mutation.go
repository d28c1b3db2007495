package views

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/validation"
	"github.com/rs/zerolog"
)

const (
	networkErrorMessage = "❌ Network error. Please try again."
	// Field constraint violations use the same prefix on every form.
	constraintPrefix = "❌ Error: "
)

// StatusKind tells success and failure messages apart.
type StatusKind int

const (
	StatusSuccess StatusKind = iota
	StatusError
)

// Status is the message shown above a form.
type Status struct {
	Text string
	Kind StatusKind
}

func (s Status) Success() bool { return s.Kind == StatusSuccess }

type outcome struct {
	success       string
	failurePrefix string
	clearFields   bool
	next          string
}

// MutationView holds a form, submits it and reports the outcome.
type MutationView struct {
	view

	fields  map[string]string
	send    func(ctx context.Context, fields map[string]string) error
	canSend func() error
	outcome outcome
	delay   time.Duration

	loading    bool
	submitting bool
	status     *Status
}

// FormSnapshot is a copy of a mutation view's state for rendering.
type FormSnapshot struct {
	Fields         map[string]string
	Loading        bool
	Submitting     bool
	SubmitDisabled bool
	Status         *Status
	Redirect       *Redirect
}

func newMutationView(names []string, send func(context.Context, map[string]string) error, out outcome, opts Options) *MutationView {
	m := &MutationView{
		fields:  make(map[string]string, len(names)),
		send:    send,
		outcome: out,
		delay:   opts.delay(),
	}
	for _, name := range names {
		m.fields[name] = ""
	}
	m.init(opts.Navigator)
	return m
}

// Set records the value entered for a field. Unknown names are ignored.
func (m *MutationView) Set(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fields[name]; ok {
		m.fields[name] = value
	}
}

// Field returns the current value of a field.
func (m *MutationView) Field(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields[name]
}

// SubmitDisabled reports whether the submit control is disabled.
func (m *MutationView) SubmitDisabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitDisabled()
}

func (m *MutationView) submitDisabled() bool {
	if m.submitting {
		return true
	}
	return m.canSend != nil && m.canSend() != nil
}

// Submit sends the form. While a submit is outstanding further calls return
// ErrSubmitInFlight without issuing a request. The returned error is the
// cause of a failed submit; the user-facing message is in the snapshot.
func (m *MutationView) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrViewClosed
	}
	if m.submitting {
		m.mu.Unlock()
		return ErrSubmitInFlight
	}
	if m.canSend != nil {
		if err := m.canSend(); err != nil {
			m.mu.Unlock()
			return err
		}
	}
	m.submitting = true
	m.status = nil
	fields := make(map[string]string, len(m.fields))
	for k, v := range m.fields {
		fields[k] = v
	}
	m.mu.Unlock()

	bctx, cancel := m.bind(ctx)
	err := m.send(bctx, fields)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitting = false
	if m.closed {
		return err
	}

	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("submission failed")
		m.status = &Status{Text: m.failureMessage(err), Kind: StatusError}
		return err
	}

	m.status = &Status{Text: m.outcome.success, Kind: StatusSuccess}
	if m.outcome.clearFields {
		for k := range m.fields {
			m.fields[k] = ""
		}
	}
	if m.outcome.next != "" {
		m.schedule(m.outcome.next, m.delay)
	}
	return nil
}

func (m *MutationView) failureMessage(err error) string {
	if IsValidationError(err) {
		return constraintPrefix + err.Error()
	}
	if services.IsTransport(err) {
		return networkErrorMessage
	}
	if httpErr, ok := services.AsHTTPError(err); ok {
		return m.outcome.failurePrefix + httpErr.Message
	}
	return m.outcome.failurePrefix + err.Error()
}

// setStatus replaces the message. Callers hold m.mu.
func (m *MutationView) setStatus(text string, kind StatusKind) {
	m.status = &Status{Text: text, Kind: kind}
}

// Snapshot returns a copy of the current state.
func (m *MutationView) Snapshot() FormSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *MutationView) snapshot() FormSnapshot {
	fields := make(map[string]string, len(m.fields))
	for k, v := range m.fields {
		fields[k] = v
	}

	snap := FormSnapshot{
		Fields:         fields,
		Loading:        m.loading,
		Submitting:     m.submitting,
		SubmitDisabled: m.submitDisabled(),
	}
	if m.status != nil {
		s := *m.status
		snap.Status = &s
	}
	if m.redirect != nil {
		r := *m.redirect
		snap.Redirect = &r
	}
	return snap
}

// parseIntField converts an integer form field at submit time.
func parseIntField(name, raw string) (int, error) {
	if raw == "" {
		return 0, &validation.ValidationError{Fields: []validation.FieldError{
			{Field: name, Error: name + " is required"},
		}}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validation.ValidationError{Fields: []validation.FieldError{
			{Field: name, Error: name + " must be a whole number"},
		}}
	}
	return n, nil
}

// IsValidationError reports whether err is a field constraint violation.
func IsValidationError(err error) bool {
	var vErr *validation.ValidationError
	return errors.As(err, &vErr)
}
