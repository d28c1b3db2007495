package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/course-registration/coursereg-web/internal/views"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type confirmation struct {
	Question string
	Action   string
	Cancel   string
}

// ListCourses renders the course list.
func ListCourses(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := views.NewCoursesView(s.Registry)
		defer v.Close()

		v.Load(r.Context())
		renderList(s, w, r, "courses", "/courses", "Courses", v.Snapshot())
	})
}

// ConfirmDeleteCourse asks for confirmation before a course is deleted.
func ConfirmDeleteCourse(s *Service) http.HandlerFunc {
	return confirmDelete(s, "/courses", "Are you sure you want to delete this course?")
}

// DeleteCourse deletes a course and renders the refreshed list.
func DeleteCourse(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		courseID, ok := pathVar(w, r, "courseId")
		if !ok {
			return
		}
		logger := zerolog.Ctx(r.Context()).With().Str("course", courseID).Logger()

		token, ok := s.claim(w, r)
		if !ok {
			return
		}
		defer s.Guard.Finish(token, nil)

		v := views.NewCoursesView(s.Registry)
		defer v.Close()

		deleteAndReload(r.Context(), logger, v, courseID)
		s.respond(w, r, token, listOutcome(r, "courses", "/courses", "Courses", v.Snapshot()))
	})
}

// ListStudents renders the enrollment list.
func ListStudents(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := views.NewStudentsView(s.Registry)
		defer v.Close()

		v.Load(r.Context())
		renderList(s, w, r, "students", "/students", "Students", v.Snapshot())
	})
}

// ConfirmDeleteStudent asks for confirmation before an enrollment is deleted.
func ConfirmDeleteStudent(s *Service) http.HandlerFunc {
	return confirmDelete(s, "/students", "Are you sure you want to delete this student enrollment?")
}

// DeleteStudent deletes an enrollment and renders the refreshed list.
func DeleteStudent(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enrollmentID, ok := pathVar(w, r, "id")
		if !ok {
			return
		}
		logger := zerolog.Ctx(r.Context()).With().Str("enrollment", enrollmentID).Logger()

		token, ok := s.claim(w, r)
		if !ok {
			return
		}
		defer s.Guard.Finish(token, nil)

		v := views.NewStudentsView(s.Registry)
		defer v.Close()

		deleteAndReload(r.Context(), logger, v, enrollmentID)
		s.respond(w, r, token, listOutcome(r, "students", "/students", "Students", v.Snapshot()))
	})
}

type deleter interface {
	Delete(ctx context.Context, id string) views.Notice
	Load(ctx context.Context)
}

// deleteAndReload issues the delete and makes sure the list is loaded
// afterwards. A successful delete already re-fetched the list.
func deleteAndReload(ctx context.Context, logger zerolog.Logger, v deleter, id string) {
	ctx = context.WithoutCancel(ctx)

	notice := v.Delete(ctx, id)
	if notice.OK {
		logger.Info().Msg("Record deleted")
		return
	}

	logger.Warn().Str("notice", notice.Text).Msg("Delete failed")
	v.Load(ctx)
}

func confirmDelete(s *Service, listPath, question string) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "confirm_delete", listPath, page{
			Heading: "Confirm delete",
			Token:   newToken(),
			Data: confirmation{
				Question: question,
				Action:   r.URL.EscapedPath(),
				Cancel:   listPath,
			},
		})
	})
}

func renderList[T any](s *Service, w http.ResponseWriter, r *http.Request, name, navPath, heading string, snap views.ListSnapshot[T]) {
	out := listOutcome(r, name, navPath, heading, snap)
	s.render(w, r, out.status, out.name, out.navPath, out.page)
}

func listOutcome[T any](r *http.Request, name, navPath, heading string, snap views.ListSnapshot[T]) outcome {
	status := http.StatusOK
	if snap.State == views.Failed {
		zerolog.Ctx(r.Context()).Error().Str("error", snap.Error).Msg("Failed to fetch list")
		status = http.StatusBadGateway
	}
	return outcome{status: status, name: name, navPath: navPath, page: page{Heading: heading, Data: snap}}
}

// pathVar returns the unescaped route variable name. Record ids may contain
// reserved characters such as "/", so routes match on the escaped path.
func pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := mux.Vars(r)[name]
	v, err := url.PathUnescape(raw)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str(name, raw).Msg("Invalid path parameter")
		http.Error(w, "Invalid path parameter", http.StatusBadRequest)
		return "", false
	}
	return v, true
}
