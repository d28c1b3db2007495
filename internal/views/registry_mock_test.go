package views

import (
	"context"
	"net/http"
	"sync"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/models"
)

// registryMock is an in-memory backend. Writes may be held open with block.
type registryMock struct {
	mu          sync.Mutex
	courses     []models.Course
	enrollments []models.Enrollment

	listErr  error
	writeErr error
	writes   int

	block   chan struct{}
	entered chan struct{}
}

var _ services.Registry = (*registryMock)(nil)

func (m *registryMock) ListCourses(ctx context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Course(nil), m.courses...), nil
}

func (m *registryMock) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Enrollment(nil), m.enrollments...), nil
}

func (m *registryMock) write(ctx context.Context, apply func() error) error {
	m.mu.Lock()
	m.writes++
	block, entered := m.block, m.entered
	m.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return &services.TransportError{Op: "failed to make request", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	return apply()
}

func (m *registryMock) AddCourse(ctx context.Context, in models.CourseInput) error {
	return m.write(ctx, func() error {
		for _, c := range m.courses {
			if c.CourseID == in.CourseID {
				return &services.HTTPError{Status: http.StatusConflict, Message: "Course already exists"}
			}
		}
		m.courses = append(m.courses, models.Course(in))
		return nil
	})
}

func (m *registryMock) UpdateCourse(ctx context.Context, in models.CourseInput) error {
	return m.write(ctx, func() error {
		for i, c := range m.courses {
			if c.CourseID == in.CourseID {
				m.courses[i] = models.Course(in)
				return nil
			}
		}
		return &services.HTTPError{Status: http.StatusNotFound, Message: "Course not found"}
	})
}

func (m *registryMock) DeleteCourse(ctx context.Context, courseID string) error {
	return m.write(ctx, func() error {
		for i, c := range m.courses {
			if c.CourseID == courseID {
				m.courses = append(m.courses[:i], m.courses[i+1:]...)
				return nil
			}
		}
		return &services.HTTPError{Status: http.StatusNotFound}
	})
}

func (m *registryMock) RegisterStudent(ctx context.Context, in models.RegistrationInput) error {
	return m.write(ctx, func() error {
		m.enrollments = append(m.enrollments, models.Enrollment{
			ID:         models.EnrollmentID("e" + in.Name),
			Name:       in.Name,
			EmailID:    in.EmailID,
			CourseName: in.CourseName,
		})
		return nil
	})
}

func (m *registryMock) UpdateStudent(ctx context.Context, in models.EnrollmentUpdate) error {
	return m.write(ctx, func() error {
		for i, e := range m.enrollments {
			if e.ID.String() == in.EnrollmentID {
				m.enrollments[i] = models.Enrollment{
					ID:         e.ID,
					Name:       in.Name,
					EmailID:    in.EmailID,
					CourseName: in.CourseName,
				}
				return nil
			}
		}
		return &services.HTTPError{Status: http.StatusNotFound, Message: "Enrollment not found"}
	})
}

func (m *registryMock) DeleteStudent(ctx context.Context, enrollmentID string) error {
	return m.write(ctx, func() error {
		for i, e := range m.enrollments {
			if e.ID.String() == enrollmentID {
				m.enrollments = append(m.enrollments[:i], m.enrollments[i+1:]...)
				return nil
			}
		}
		return &services.HTTPError{Status: http.StatusNotFound}
	})
}

func (m *registryMock) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
