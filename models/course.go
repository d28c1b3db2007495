package models

import (
	"net/url"
	"strconv"
)

// Course is a course listing as served by the registration backend.
type Course struct {
	CourseID        string `json:"courseId"`
	CourseName      string `json:"courseName"`
	Trainer         string `json:"trainer"`
	DurationInWeeks int    `json:"durationInWeeks"`
}

// CourseInput is a validated course ready to be form-encoded for the add and
// update endpoints.
type CourseInput struct {
	CourseID        string `form:"courseId" validate:"required"`
	CourseName      string `form:"courseName" validate:"required"`
	Trainer         string `form:"trainer" validate:"required"`
	DurationInWeeks int    `form:"durationInWeeks" validate:"min=1"`
}

// Values form-encodes the course. The duration is written as a decimal integer.
func (c CourseInput) Values() url.Values {
	data := url.Values{}
	data.Set("courseId", c.CourseID)
	data.Set("courseName", c.CourseName)
	data.Set("trainer", c.Trainer)
	data.Set("durationInWeeks", strconv.Itoa(c.DurationInWeeks))
	return data
}
