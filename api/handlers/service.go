package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/views"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const tokenField = "_token"

// Service carries the dependencies shared by all page handlers.
type Service struct {
	Registry      services.Registry
	Guard         *views.SubmissionGuard
	Templates     *Templates
	Title         string
	RedirectDelay time.Duration
}

// NewService parses the page templates and creates a Service.
func NewService(reg services.Registry, title string, redirectDelay time.Duration) (*Service, error) {
	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}

	return &Service{
		Registry:      reg,
		Guard:         views.NewSubmissionGuard(),
		Templates:     tmpl,
		Title:         title,
		RedirectDelay: redirectDelay,
	}, nil
}

func (s *Service) viewOptions() views.Options {
	return views.Options{RedirectDelay: s.RedirectDelay}
}

// page is the data every template receives.
type page struct {
	Title    string
	Heading  string
	Nav      []views.NavLink
	Redirect *views.Redirect
	Token    string
	Data     any
}

// render writes a full page. navPath selects the active navbar entry; it
// defaults to the request path.
func (s *Service) render(w http.ResponseWriter, r *http.Request, status int, name, navPath string, p page) {
	logger := zerolog.Ctx(r.Context()).With().Str("page", name).Logger()

	if navPath == "" {
		navPath = r.URL.Path
	}
	p.Title = s.Title
	p.Nav = views.NavLinks(navPath)

	// Buffer so that a failed render never leaves a partial page behind
	var buf bytes.Buffer
	if err := s.Templates.Execute(&buf, name, p); err != nil {
		logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn().Err(err).Msg("Failed to write response")
	}
}

// outcome is a rendered response kept by the submission guard so that a
// repeated post of the same form gets the same page.
type outcome struct {
	status  int
	name    string
	navPath string
	page    page
}

// claim parses a posted form and registers its submission token. When ok is
// false a response has already been written: a repeated post of a token waits
// for the first one and is answered with its page. Callers that get ok must
// finish the token, either through respond or by abandoning it with
// s.Guard.Finish(token, nil).
func (s *Service) claim(w http.ResponseWriter, r *http.Request) (token string, ok bool) {
	logger := zerolog.Ctx(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.Error().Err(err).Msg("Failed to parse form")
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return "", false
	}

	token = r.PostFormValue(tokenField)
	if _, err := uuid.Parse(token); err != nil {
		logger.Error().Err(err).Msg("Invalid submission token")
		http.Error(w, "Invalid submission token", http.StatusBadRequest)
		return "", false
	}

	sub, first := s.Guard.Begin(token)
	if !first {
		logger.Info().Str("token", token).Msg("Repeated submission, replaying outcome")
		s.replay(w, r, sub)
		return "", false
	}
	return token, true
}

// replay renders the page of an earlier submission once it is available.
func (s *Service) replay(w http.ResponseWriter, r *http.Request, sub *views.Submission) {
	logger := zerolog.Ctx(r.Context())

	result, err := sub.Wait(r.Context())
	out, ok := result.(outcome)
	if err != nil || !ok {
		logger.Warn().Err(err).Msg("Earlier submission has no outcome to replay")
		s.render(w, r, http.StatusConflict, "busy", "", page{Heading: "Please wait", Data: r.URL.EscapedPath()})
		return
	}

	p := out.page
	if p.Token != "" {
		p.Token = newToken()
	}
	s.render(w, r, out.status, out.name, out.navPath, p)
}

// respond records the page as the outcome of token and renders it.
func (s *Service) respond(w http.ResponseWriter, r *http.Request, token string, out outcome) {
	if out.navPath == "" {
		out.navPath = r.URL.Path
	}
	if token != "" {
		s.Guard.Finish(token, out)
	}
	s.render(w, r, out.status, out.name, out.navPath, out.page)
}

type submitter interface {
	Set(name, value string)
	Submit(ctx context.Context) error
}

// submit copies the posted fields into v and submits it. The backend write is
// not cancelled if the client goes away mid-request. The returned status is
// the one the page should be rendered with.
func (s *Service) submit(r *http.Request, v submitter) int {
	logger := zerolog.Ctx(r.Context())

	for name, values := range r.PostForm {
		if name == tokenField || len(values) == 0 {
			continue
		}
		v.Set(name, values[0])
	}

	err := v.Submit(context.WithoutCancel(r.Context()))
	switch {
	case err == nil:
		logger.Info().Msg("Submission accepted")
		return http.StatusOK
	case views.IsValidationError(err):
		logger.Debug().Err(err).Msg("Submission failed field constraints")
		return http.StatusUnprocessableEntity
	case errors.Is(err, views.ErrSubmitDisabled):
		logger.Debug().Msg("Submission not available")
		return http.StatusConflict
	default:
		logger.Warn().Err(err).Msg("Submission failed")
		return http.StatusOK
	}
}

func newToken() string {
	return uuid.NewString()
}
