package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// EnrollmentID is the server-assigned enrollment identifier. The backend may
// encode it as a JSON number or a string; it is kept in its textual form.
type EnrollmentID string

func (id *EnrollmentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EnrollmentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("enrollment id must be a string or number: %w", err)
	}
	*id = EnrollmentID(n.String())
	return nil
}

func (id EnrollmentID) String() string {
	return string(id)
}

// Enrollment is a student registration. CourseName is a free-text copy of the
// course name chosen at registration time, not a reference.
type Enrollment struct {
	ID         EnrollmentID `json:"id"`
	Name       string       `json:"name"`
	EmailID    string       `json:"emailId"`
	CourseName string       `json:"courseName"`
}

// RegistrationInput is the body of a registration request.
type RegistrationInput struct {
	Name       string `form:"name" validate:"required"`
	EmailID    string `form:"emailId" validate:"required"`
	CourseName string `form:"courseName" validate:"required"`
}

// EnrollmentUpdate is the body of a student update request.
type EnrollmentUpdate struct {
	EnrollmentID string `form:"enrollmentId" validate:"required"`
	Name         string `form:"name" validate:"required"`
	EmailID      string `form:"emailId" validate:"required"`
	CourseName   string `form:"courseName" validate:"required"`
}

func (r RegistrationInput) Values() url.Values {
	data := url.Values{}
	data.Set("name", r.Name)
	data.Set("emailId", r.EmailID)
	data.Set("courseName", r.CourseName)
	return data
}

func (u EnrollmentUpdate) Values() url.Values {
	data := url.Values{}
	data.Set("enrollmentId", u.EnrollmentID)
	data.Set("name", u.Name)
	data.Set("emailId", u.EmailID)
	data.Set("courseName", u.CourseName)
	return data
}
