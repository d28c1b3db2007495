package views

import (
	"context"
	"strconv"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/validation"
	"github.com/course-registration/coursereg-web/models"
	"github.com/rs/zerolog"
)

// CoursesView is the course list.
type CoursesView = ListView[models.Course]

// NewCoursesView creates the course list view. Call Load to fetch.
func NewCoursesView(reg services.Registry) *CoursesView {
	return newListView(reg.ListCourses, reg.DeleteCourse, listMessages{
		fetchPrefix:    "Error fetching courses: ",
		deleted:        "Course deleted successfully!",
		deleteFailed:   "Failed to delete course",
		deleteErrorPfx: "Error deleting course: ",
	})
}

// NewAddCourseView creates the add-course form.
func NewAddCourseView(reg services.Registry, opts Options) *MutationView {
	send := func(ctx context.Context, f map[string]string) error {
		in, err := courseInput(f["courseId"], f)
		if err != nil {
			return err
		}
		return reg.AddCourse(ctx, in)
	}

	return newMutationView(
		[]string{"courseId", "courseName", "trainer", "durationInWeeks"},
		send,
		outcome{
			success:       "✅ Course added successfully!",
			failurePrefix: "❌ Error: ",
			clearFields:   true,
			next:          "/courses",
		},
		opts,
	)
}

// CourseEditor edits an existing course identified by its course id.
type CourseEditor struct {
	*MutationView
	reg      services.Registry
	courseID string
}

var _ RecordEditor = (*CourseEditor)(nil)

// NewCourseEditor creates the update form for courseID. Call Load to
// pre-fill it.
func NewCourseEditor(reg services.Registry, courseID string, opts Options) *CourseEditor {
	e := &CourseEditor{reg: reg, courseID: courseID}
	e.MutationView = newMutationView(
		[]string{"courseName", "trainer", "durationInWeeks"},
		e.send,
		outcome{
			success:       "✅ Course updated successfully!",
			failurePrefix: "❌ Error: ",
			next:          "/courses",
		},
		opts,
	)
	e.loading = true
	return e
}

// ID returns the course id taken from the path.
func (e *CourseEditor) ID() string {
	return e.courseID
}

// Load fetches the course collection and pre-fills the form with the
// matching record. When there is no match the fields stay blank and a not
// found message is shown.
func (e *CourseEditor) Load(ctx context.Context) {
	ctx, cancel := e.bind(ctx)
	defer cancel()

	courses, err := e.reg.ListCourses(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.loading = false

	logger := zerolog.Ctx(ctx).With().Str("course", e.courseID).Logger()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch record for editing")
		e.setStatus("Error fetching course data", StatusError)
		return
	}

	for _, c := range courses {
		if c.CourseID == e.courseID {
			e.fields["courseName"] = c.CourseName
			e.fields["trainer"] = c.Trainer
			e.fields["durationInWeeks"] = strconv.Itoa(c.DurationInWeeks)
			return
		}
	}
	logger.Debug().Msg("record not found")
	e.setStatus("Course not found", StatusError)
}

func (e *CourseEditor) send(ctx context.Context, f map[string]string) error {
	in, err := courseInput(e.courseID, f)
	if err != nil {
		return err
	}
	return e.reg.UpdateCourse(ctx, in)
}

func courseInput(courseID string, f map[string]string) (models.CourseInput, error) {
	weeks, err := parseIntField("durationInWeeks", f["durationInWeeks"])
	if err != nil {
		return models.CourseInput{}, err
	}

	in := models.CourseInput{
		CourseID:        courseID,
		CourseName:      f["courseName"],
		Trainer:         f["trainer"],
		DurationInWeeks: weeks,
	}
	if err := validation.Struct(in); err != nil {
		return models.CourseInput{}, err
	}
	return in, nil
}
