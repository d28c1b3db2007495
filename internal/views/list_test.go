package views

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoursesView_Load(t *testing.T) {
	reg := &registryMock{courses: []models.Course{
		{CourseID: "C2", CourseName: "Go", Trainer: "Rob", DurationInWeeks: 6},
		{CourseID: "C1", CourseName: "Intro", Trainer: "Jane", DurationInWeeks: 4},
	}}

	v := NewCoursesView(reg)
	defer v.Close()
	assert.Equal(t, Loading, v.Snapshot().State)

	v.Load(context.Background())

	snap := v.Snapshot()
	assert.Equal(t, Ready, snap.State)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "C2", snap.Items[0].CourseID)
	assert.Equal(t, "C1", snap.Items[1].CourseID)
}

func TestCoursesView_LoadFailure(t *testing.T) {
	reg := &registryMock{listErr: &services.HTTPError{Status: 500, Message: "Failed to fetch courses"}}

	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	v := NewCoursesView(reg)
	defer v.Close()
	v.Load(ctx)

	snap := v.Snapshot()
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "Error fetching courses: Failed to fetch courses", snap.Error)
	assert.Empty(t, snap.Items)
	assert.Contains(t, logs.String(), "failed to fetch list")
}

func TestStudentsView_LoadTransportFailure(t *testing.T) {
	reg := &registryMock{listErr: &services.TransportError{Op: "failed to make request", Err: errors.New("connection refused")}}

	v := NewStudentsView(reg)
	defer v.Close()
	v.Load(context.Background())

	snap := v.Snapshot()
	assert.Equal(t, Failed, snap.State)
	assert.Equal(t, "Error fetching students: failed to make request: connection refused", snap.Error)
}

func TestCoursesView_DeleteExisting(t *testing.T) {
	reg := &registryMock{courses: []models.Course{
		{CourseID: "C1", CourseName: "Intro", Trainer: "Jane", DurationInWeeks: 4},
		{CourseID: "C2", CourseName: "Go", Trainer: "Rob", DurationInWeeks: 6},
	}}

	v := NewCoursesView(reg)
	defer v.Close()
	v.Load(context.Background())

	n := v.Delete(context.Background(), "C1")
	assert.True(t, n.OK)
	assert.Equal(t, "Course deleted successfully!", n.Text)

	snap := v.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "C2", snap.Items[0].CourseID)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, n, *snap.Notice)
}

func TestCoursesView_DeleteMissingLeavesList(t *testing.T) {
	reg := &registryMock{courses: []models.Course{
		{CourseID: "C1", CourseName: "Intro", Trainer: "Jane", DurationInWeeks: 4},
	}}

	v := NewCoursesView(reg)
	defer v.Close()
	v.Load(context.Background())

	n := v.Delete(context.Background(), "nope")
	assert.False(t, n.OK)
	assert.Equal(t, "Failed to delete course", n.Text)

	snap := v.Snapshot()
	assert.Len(t, snap.Items, 1)

	v.Load(context.Background())
	assert.Len(t, v.Snapshot().Items, 1)
}

func TestStudentsView_DeleteTransportError(t *testing.T) {
	reg := &registryMock{
		enrollments: []models.Enrollment{{ID: "1", Name: "Ann"}},
		writeErr:    &services.TransportError{Op: "failed to make request", Err: errors.New("timeout")},
	}

	v := NewStudentsView(reg)
	defer v.Close()
	v.Load(context.Background())

	n := v.Delete(context.Background(), "1")
	assert.False(t, n.OK)
	assert.Equal(t, "Error deleting student: failed to make request: timeout", n.Text)
	assert.Len(t, v.Snapshot().Items, 1)
}

func TestStudentsView_DeleteExisting(t *testing.T) {
	reg := &registryMock{enrollments: []models.Enrollment{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bob"}}}

	v := NewStudentsView(reg)
	defer v.Close()
	v.Load(context.Background())

	n := v.Delete(context.Background(), "2")
	assert.Equal(t, Notice{Text: "Student enrollment deleted successfully!", OK: true}, n)
	assert.Equal(t, []models.Enrollment{{ID: "1", Name: "Ann"}}, v.Snapshot().Items)
}

func TestListView_ClosedIgnoresResult(t *testing.T) {
	reg := &registryMock{courses: []models.Course{{CourseID: "C1"}}}

	v := NewCoursesView(reg)
	v.Close()
	v.Load(context.Background())

	assert.Equal(t, Loading, v.Snapshot().State)
	assert.Empty(t, v.Snapshot().Items)
}
