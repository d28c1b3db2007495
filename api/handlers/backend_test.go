package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/models"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory course registration backend.
type fakeBackend struct {
	mu          sync.Mutex
	courses     []models.Course
	enrollments []models.Enrollment
	nextID      int
	writes      int
	lastForm    map[string]string

	// When set, writes wait for release after signalling entered.
	entered chan struct{}
	release chan struct{}
}

func newFakeBackend(t *testing.T, fb *fakeBackend) *httptest.Server {
	t.Helper()

	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/courses", fb.listCourses).Methods(http.MethodGet)
	r.HandleFunc("/courses/enrolled", fb.listEnrollments).Methods(http.MethodGet)
	r.HandleFunc("/courses/add", fb.write(fb.addCourse)).Methods(http.MethodPost)
	r.HandleFunc("/courses/update", fb.write(fb.updateCourse)).Methods(http.MethodPost)
	r.HandleFunc("/courses/register", fb.write(fb.register)).Methods(http.MethodPost)
	r.HandleFunc("/students/update", fb.write(fb.updateStudent)).Methods(http.MethodPost)
	r.HandleFunc("/courses/delete/{id}", fb.write(fb.deleteCourse)).Methods(http.MethodDelete)
	r.HandleFunc("/students/delete/{id}", fb.write(fb.deleteStudent)).Methods(http.MethodDelete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, backendURL string) *Service {
	t.Helper()

	endpoints, err := services.NewEndpoints(backendURL)
	require.NoError(t, err)

	s, err := NewService(services.NewRegistryClient(endpoints, 0), "WinTech", 0)
	require.NoError(t, err)
	return s
}

func (fb *fakeBackend) listCourses(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, fb.courses)
}

func (fb *fakeBackend) listEnrollments(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	// ids are sent as JSON numbers
	out := make([]map[string]any, 0, len(fb.enrollments))
	for _, e := range fb.enrollments {
		id, _ := strconv.Atoi(e.ID.String())
		out = append(out, map[string]any{"id": id, "name": e.Name, "emailId": e.EmailID, "courseName": e.CourseName})
	}
	writeJSON(w, out)
}

func (fb *fakeBackend) write(apply func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		fb.mu.Lock()
		fb.writes++
		fb.lastForm = map[string]string{}
		for k := range r.PostForm {
			fb.lastForm[k] = r.PostForm.Get(k)
		}
		entered, release := fb.entered, fb.release
		fb.mu.Unlock()

		if entered != nil {
			entered <- struct{}{}
			<-release
		}

		fb.mu.Lock()
		defer fb.mu.Unlock()
		apply(w, r)
	}
}

func (fb *fakeBackend) addCourse(w http.ResponseWriter, r *http.Request) {
	weeks, err := strconv.Atoi(r.PostForm.Get("durationInWeeks"))
	if err != nil {
		http.Error(w, "Invalid duration", http.StatusBadRequest)
		return
	}
	for _, c := range fb.courses {
		if c.CourseID == r.PostForm.Get("courseId") {
			http.Error(w, "Course already exists", http.StatusConflict)
			return
		}
	}
	fb.courses = append(fb.courses, models.Course{
		CourseID:        r.PostForm.Get("courseId"),
		CourseName:      r.PostForm.Get("courseName"),
		Trainer:         r.PostForm.Get("trainer"),
		DurationInWeeks: weeks,
	})
	w.WriteHeader(http.StatusCreated)
}

func (fb *fakeBackend) updateCourse(w http.ResponseWriter, r *http.Request) {
	weeks, err := strconv.Atoi(r.PostForm.Get("durationInWeeks"))
	if err != nil {
		http.Error(w, "Invalid duration", http.StatusBadRequest)
		return
	}
	for i, c := range fb.courses {
		if c.CourseID == r.PostForm.Get("courseId") {
			fb.courses[i] = models.Course{
				CourseID:        c.CourseID,
				CourseName:      r.PostForm.Get("courseName"),
				Trainer:         r.PostForm.Get("trainer"),
				DurationInWeeks: weeks,
			}
			return
		}
	}
	http.Error(w, "Course not found", http.StatusNotFound)
}

func (fb *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	fb.nextID++
	fb.enrollments = append(fb.enrollments, models.Enrollment{
		ID:         models.EnrollmentID(strconv.Itoa(fb.nextID)),
		Name:       r.PostForm.Get("name"),
		EmailID:    r.PostForm.Get("emailId"),
		CourseName: r.PostForm.Get("courseName"),
	})
	w.WriteHeader(http.StatusCreated)
}

func (fb *fakeBackend) updateStudent(w http.ResponseWriter, r *http.Request) {
	for i, e := range fb.enrollments {
		if e.ID.String() == r.PostForm.Get("enrollmentId") {
			fb.enrollments[i].Name = r.PostForm.Get("name")
			fb.enrollments[i].EmailID = r.PostForm.Get("emailId")
			fb.enrollments[i].CourseName = r.PostForm.Get("courseName")
			return
		}
	}
	http.Error(w, "Enrollment not found", http.StatusNotFound)
}

func (fb *fakeBackend) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i, c := range fb.courses {
		if c.CourseID == id {
			fb.courses = append(fb.courses[:i], fb.courses[i+1:]...)
			return
		}
	}
	http.Error(w, "Course not found", http.StatusNotFound)
}

func (fb *fakeBackend) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i, e := range fb.enrollments {
		if e.ID.String() == id {
			fb.enrollments = append(fb.enrollments[:i], fb.enrollments[i+1:]...)
			return
		}
	}
	http.Error(w, "Enrollment not found", http.StatusNotFound)
}

func (fb *fakeBackend) writeCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.writes
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
