package services

import (
	"context"

	"github.com/course-registration/coursereg-web/models"
)

// Registry is the set of backend operations the views depend on.
type Registry interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListEnrollments(ctx context.Context) ([]models.Enrollment, error)
	AddCourse(ctx context.Context, in models.CourseInput) error
	UpdateCourse(ctx context.Context, in models.CourseInput) error
	DeleteCourse(ctx context.Context, courseID string) error
	RegisterStudent(ctx context.Context, in models.RegistrationInput) error
	UpdateStudent(ctx context.Context, in models.EnrollmentUpdate) error
	DeleteStudent(ctx context.Context, enrollmentID string) error
}

var _ Registry = (*RegistryClient)(nil)
