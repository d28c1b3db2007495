package views

import (
	"context"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/validation"
	"github.com/course-registration/coursereg-web/models"
	"github.com/rs/zerolog"
)

// StudentsView is the enrollment list.
type StudentsView = ListView[models.Enrollment]

// NewStudentsView creates the enrollment list view. Call Load to fetch.
func NewStudentsView(reg services.Registry) *StudentsView {
	return newListView(reg.ListEnrollments, reg.DeleteStudent, listMessages{
		fetchPrefix:    "Error fetching students: ",
		deleted:        "Student enrollment deleted successfully!",
		deleteFailed:   "Failed to delete student enrollment",
		deleteErrorPfx: "Error deleting student: ",
	})
}

// StudentEditor edits an existing enrollment.
type StudentEditor struct {
	*MutationView
	reg          services.Registry
	enrollmentID string
}

var _ RecordEditor = (*StudentEditor)(nil)

// NewStudentEditor creates the update form for an enrollment. Call Load to
// pre-fill it.
func NewStudentEditor(reg services.Registry, enrollmentID string, opts Options) *StudentEditor {
	e := &StudentEditor{reg: reg, enrollmentID: enrollmentID}
	e.MutationView = newMutationView(
		[]string{"name", "emailId", "courseName"},
		e.send,
		outcome{
			success:       "✅ Student updated successfully!",
			failurePrefix: "❌ Failed to update student: ",
			next:          "/students",
		},
		opts,
	)
	e.loading = true
	return e
}

// ID returns the enrollment id taken from the path.
func (e *StudentEditor) ID() string {
	return e.enrollmentID
}

// Load fetches the enrollments and pre-fills the form with the matching one.
func (e *StudentEditor) Load(ctx context.Context) {
	ctx, cancel := e.bind(ctx)
	defer cancel()

	enrollments, err := e.reg.ListEnrollments(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.loading = false

	logger := zerolog.Ctx(ctx).With().Str("enrollment", e.enrollmentID).Logger()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch record for editing")
		e.setStatus("Error fetching student data", StatusError)
		return
	}

	for _, s := range enrollments {
		if s.ID.String() == e.enrollmentID {
			e.fields["name"] = s.Name
			e.fields["emailId"] = s.EmailID
			e.fields["courseName"] = s.CourseName
			return
		}
	}
	logger.Debug().Msg("record not found")
	e.setStatus("Enrollment not found", StatusError)
}

func (e *StudentEditor) send(ctx context.Context, f map[string]string) error {
	in := models.EnrollmentUpdate{
		EnrollmentID: e.enrollmentID,
		Name:         f["name"],
		EmailID:      f["emailId"],
		CourseName:   f["courseName"],
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	return e.reg.UpdateStudent(ctx, in)
}
