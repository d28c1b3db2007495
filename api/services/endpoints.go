package services

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoints holds the fully-qualified URLs of the registration backend. It is
// built once from the base URL and never mutated.
type Endpoints struct {
	Courses       string
	Register      string
	Enrolled      string
	AddCourse     string
	UpdateCourse  string
	DeleteCourse  string
	UpdateStudent string
	DeleteStudent string
}

// NamedEndpoint pairs an operation name with its URL.
type NamedEndpoint struct {
	Name string
	URL  string
}

// NewEndpoints resolves the endpoint set against baseURL, which must be an
// absolute http or https URL.
func NewEndpoints(baseURL string) (Endpoints, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return Endpoints{}, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Endpoints{}, fmt.Errorf("api base url %q must be an absolute http(s) url", baseURL)
	}

	base := strings.TrimRight(u.String(), "/")

	return Endpoints{
		Courses:       base + "/courses",
		Register:      base + "/courses/register",
		Enrolled:      base + "/courses/enrolled",
		AddCourse:     base + "/courses/add",
		UpdateCourse:  base + "/courses/update",
		DeleteCourse:  base + "/courses/delete",
		UpdateStudent: base + "/students/update",
		DeleteStudent: base + "/students/delete",
	}, nil
}

// CourseDeleteURL returns the delete URL for a single course.
func (e Endpoints) CourseDeleteURL(courseID string) string {
	return e.DeleteCourse + "/" + url.PathEscape(courseID)
}

// StudentDeleteURL returns the delete URL for a single enrollment.
func (e Endpoints) StudentDeleteURL(enrollmentID string) string {
	return e.DeleteStudent + "/" + url.PathEscape(enrollmentID)
}

// List returns the endpoints in a stable order.
func (e Endpoints) List() []NamedEndpoint {
	return []NamedEndpoint{
		{"COURSES", e.Courses},
		{"REGISTER", e.Register},
		{"ENROLLED", e.Enrolled},
		{"ADD_COURSE", e.AddCourse},
		{"UPDATE_COURSE", e.UpdateCourse},
		{"DELETE_COURSE", e.DeleteCourse},
		{"UPDATE_STUDENT", e.UpdateStudent},
		{"DELETE_STUDENT", e.DeleteStudent},
	}
}
