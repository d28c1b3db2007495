package handlers

import (
	"net/http"

	"github.com/course-registration/coursereg-web/api/middleware"
	"github.com/gorilla/mux"
)

// NewRouter registers every page route of the front-end.
func NewRouter(s *Service) *mux.Router {
	r := mux.NewRouter().UseEncodedPath()

	r.Use(middleware.WithLogger)
	r.Use(middleware.NoStore)

	r.HandleFunc("/healthz", Healthz()).Methods(http.MethodGet)
	r.HandleFunc("/", Home(s)).Methods(http.MethodGet)

	// Course routes
	r.HandleFunc("/courses", ListCourses(s)).Methods(http.MethodGet)
	r.HandleFunc("/courses/{courseId}/delete", ConfirmDeleteCourse(s)).Methods(http.MethodGet)
	r.HandleFunc("/courses/{courseId}/delete", DeleteCourse(s)).Methods(http.MethodPost)
	r.HandleFunc("/add-course", AddCourse(s)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/update-course/{courseId}", UpdateCourse(s)).Methods(http.MethodGet, http.MethodPost)

	// Student routes
	r.HandleFunc("/students", ListStudents(s)).Methods(http.MethodGet)
	r.HandleFunc("/students/{id}/delete", ConfirmDeleteStudent(s)).Methods(http.MethodGet)
	r.HandleFunc("/students/{id}/delete", DeleteStudent(s)).Methods(http.MethodPost)
	r.HandleFunc("/register", Register(s)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/update-student/{id}", UpdateStudent(s)).Methods(http.MethodGet, http.MethodPost)

	return r
}
