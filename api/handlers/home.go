package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Home renders the landing page with links to the course list and the
// registration form.
func Home(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "home", "", page{Heading: "Home"})
	})
}

// Healthz reports that the server is up. It does not contact the backend.
func Healthz() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write health response")
		}
	})
}
