package views

import (
	"context"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/validation"
	"github.com/course-registration/coursereg-web/models"
	"github.com/rs/zerolog"
)

// RegistrationView is the student registration form. It loads the course
// collection to populate the course selection.
type RegistrationView struct {
	*MutationView
	reg services.Registry

	courses        []models.Course
	coursesLoading bool
}

// RegistrationSnapshot adds the selectable courses to the form state.
type RegistrationSnapshot struct {
	FormSnapshot
	Courses        []models.Course
	CoursesLoading bool
}

// NewRegistrationView creates the registration form. Call Load to fetch the
// selectable courses.
func NewRegistrationView(reg services.Registry, opts Options) *RegistrationView {
	r := &RegistrationView{reg: reg, coursesLoading: true}
	r.MutationView = newMutationView(
		[]string{"name", "emailId", "courseName"},
		r.send,
		outcome{
			success:       "🎉 Registration successful! Redirecting...",
			failurePrefix: "❌ Registration failed: ",
			clearFields:   true,
			next:          "/",
		},
		opts,
	)
	r.canSend = r.canRegister
	return r
}

// canRegister is called with r.mu held.
func (r *RegistrationView) canRegister() error {
	if r.coursesLoading || len(r.courses) == 0 {
		return ErrSubmitDisabled
	}
	return nil
}

// Load fetches the course collection.
func (r *RegistrationView) Load(ctx context.Context) {
	ctx, cancel := r.bind(ctx)
	defer cancel()

	courses, err := r.reg.ListCourses(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.coursesLoading = false

	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to fetch selectable courses")
		r.courses = nil
		r.setStatus("❌ Failed to load courses. Please refresh the page.", StatusError)
		return
	}
	r.courses = courses
}

// Snapshot returns a copy of the current state.
func (r *RegistrationView) Snapshot() RegistrationSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses := make([]models.Course, len(r.courses))
	copy(courses, r.courses)

	return RegistrationSnapshot{
		FormSnapshot:   r.snapshot(),
		Courses:        courses,
		CoursesLoading: r.coursesLoading,
	}
}

func (r *RegistrationView) send(ctx context.Context, f map[string]string) error {
	in := models.RegistrationInput{
		Name:       f["name"],
		EmailID:    f["emailId"],
		CourseName: f["courseName"],
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	return r.reg.RegisterStudent(ctx, in)
}
