package handlers

import (
	"net/http"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/views"
)

// EditorFactory creates the editor for the record identified by id.
type EditorFactory func(reg services.Registry, id string, opts views.Options) views.RecordEditor

type editorPage struct {
	ID   string
	Form views.FormSnapshot
}

// AddCourse renders and submits the add-course form.
func AddCourse(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := views.NewAddCourseView(s.Registry, s.viewOptions())
		defer v.Close()

		status, token := http.StatusOK, ""
		if r.Method == http.MethodPost {
			var ok bool
			if token, ok = s.claim(w, r); !ok {
				return
			}
			defer s.Guard.Finish(token, nil)
			status = s.submit(r, v)
		}

		snap := v.Snapshot()
		s.respond(w, r, token, outcome{status: status, name: "add_course", page: page{
			Heading:  "Add New Course",
			Redirect: snap.Redirect,
			Token:    newToken(),
			Data:     snap,
		}})
	})
}

// Register renders and submits the student registration form. The course
// collection is fetched on every request to populate the selection.
func Register(s *Service) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := views.NewRegistrationView(s.Registry, s.viewOptions())
		defer v.Close()

		v.Load(r.Context())

		status, token := http.StatusOK, ""
		if r.Method == http.MethodPost {
			var ok bool
			if token, ok = s.claim(w, r); !ok {
				return
			}
			defer s.Guard.Finish(token, nil)
			status = s.submit(r, v)
		}

		snap := v.Snapshot()
		s.respond(w, r, token, outcome{status: status, name: "register", page: page{
			Heading:  "Registration Form",
			Redirect: snap.Redirect,
			Token:    newToken(),
			Data:     snap,
		}})
	})
}

// UpdateCourse renders and submits the update form of a course.
func UpdateCourse(s *Service) http.HandlerFunc {
	return EditRecord(s, "courseId", "update_course", "/courses",
		func(reg services.Registry, id string, opts views.Options) views.RecordEditor {
			return views.NewCourseEditor(reg, id, opts)
		})
}

// UpdateStudent renders and submits the update form of an enrollment.
func UpdateStudent(s *Service) http.HandlerFunc {
	return EditRecord(s, "id", "update_student", "/students",
		func(reg services.Registry, id string, opts views.Options) views.RecordEditor {
			return views.NewStudentEditor(reg, id, opts)
		})
}

// EditRecord serves the update form of any record kind. The record is loaded
// on every request; on POST the submitted values replace the loaded ones
// before the update is sent.
func EditRecord(s *Service, idVar, pageName, navPath string, newEditor EditorFactory) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathVar(w, r, idVar)
		if !ok {
			return
		}

		e := newEditor(s.Registry, id, s.viewOptions())
		defer e.Close()

		status, token := http.StatusOK, ""
		if r.Method == http.MethodPost {
			if token, ok = s.claim(w, r); !ok {
				return
			}
			defer s.Guard.Finish(token, nil)

			e.Load(r.Context())
			status = s.submit(r, e)
		} else {
			e.Load(r.Context())
		}

		snap := e.Snapshot()
		s.respond(w, r, token, outcome{status: status, name: pageName, navPath: navPath, page: page{
			Heading:  "Update",
			Redirect: snap.Redirect,
			Token:    newToken(),
			Data:     editorPage{ID: e.ID(), Form: snap},
		}})
	})
}
