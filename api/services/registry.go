package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/course-registration/coursereg-web/models"
	"github.com/rs/zerolog"
)

const formContentType = "application/x-www-form-urlencoded"

// RegistryClient is a client for the course registration backend.
type RegistryClient struct {
	Endpoints  Endpoints
	HTTPClient *http.Client
}

// NewRegistryClient creates a client for the given endpoints. A zero timeout
// leaves the transport defaults in place.
func NewRegistryClient(endpoints Endpoints, timeout time.Duration) *RegistryClient {
	return &RegistryClient{
		Endpoints:  endpoints,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ListCourses fetches all courses in server order.
func (c *RegistryClient) ListCourses(ctx context.Context) ([]models.Course, error) {
	respBody, statusCode, err := c.makeRequest(ctx, http.MethodGet, c.Endpoints.Courses, "", nil)
	if err != nil {
		return nil, err
	}

	if !isSuccess(statusCode) {
		return nil, &HTTPError{Message: "Failed to fetch courses", Status: statusCode}
	}

	var courses []models.Course
	if err := json.Unmarshal(respBody, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}

	return courses, nil
}

// ListEnrollments fetches all student enrollments in server order.
func (c *RegistryClient) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	respBody, statusCode, err := c.makeRequest(ctx, http.MethodGet, c.Endpoints.Enrolled, "", nil)
	if err != nil {
		return nil, err
	}

	if !isSuccess(statusCode) {
		return nil, &HTTPError{Message: "Failed to fetch students", Status: statusCode}
	}

	var enrollments []models.Enrollment
	if err := json.Unmarshal(respBody, &enrollments); err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", err)
	}

	return enrollments, nil
}

// AddCourse creates a course.
func (c *RegistryClient) AddCourse(ctx context.Context, in models.CourseInput) error {
	return c.postForm(ctx, c.Endpoints.AddCourse, in.Values())
}

// UpdateCourse replaces the fields of the course identified by in.CourseID.
func (c *RegistryClient) UpdateCourse(ctx context.Context, in models.CourseInput) error {
	return c.postForm(ctx, c.Endpoints.UpdateCourse, in.Values())
}

// DeleteCourse removes a course by id.
func (c *RegistryClient) DeleteCourse(ctx context.Context, courseID string) error {
	return c.delete(ctx, c.Endpoints.CourseDeleteURL(courseID))
}

// RegisterStudent enrolls a student on a course.
func (c *RegistryClient) RegisterStudent(ctx context.Context, in models.RegistrationInput) error {
	return c.postForm(ctx, c.Endpoints.Register, in.Values())
}

// UpdateStudent replaces the fields of an enrollment.
func (c *RegistryClient) UpdateStudent(ctx context.Context, in models.EnrollmentUpdate) error {
	return c.postForm(ctx, c.Endpoints.UpdateStudent, in.Values())
}

// DeleteStudent removes an enrollment by id.
func (c *RegistryClient) DeleteStudent(ctx context.Context, enrollmentID string) error {
	return c.delete(ctx, c.Endpoints.StudentDeleteURL(enrollmentID))
}

func (c *RegistryClient) postForm(ctx context.Context, target string, data url.Values) error {
	respBody, statusCode, err := c.makeRequest(ctx, http.MethodPost, target, formContentType, []byte(data.Encode()))
	if err != nil {
		return err
	}

	if !isSuccess(statusCode) {
		return &HTTPError{Message: string(respBody), Status: statusCode}
	}

	return nil
}

func (c *RegistryClient) delete(ctx context.Context, target string) error {
	respBody, statusCode, err := c.makeRequest(ctx, http.MethodDelete, target, "", nil)
	if err != nil {
		return err
	}

	if !isSuccess(statusCode) {
		return &HTTPError{Message: string(respBody), Status: statusCode}
	}

	return nil
}

// Helper function for making HTTP requests to the backend. Any failure before
// a complete response is read is reported as a TransportError.
func (c *RegistryClient) makeRequest(ctx context.Context, method, target, contentType string, body []byte) ([]byte, int, error) {
	logger := zerolog.Ctx(ctx).With().Str("backend_method", method).Str("backend_url", target).Logger()

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	logger.Debug().Msg("sending backend request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("backend request failed")
		return nil, 0, &TransportError{Op: "failed to make request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Int("status", resp.StatusCode).Msg("failed to read backend response")
		return nil, resp.StatusCode, &TransportError{Op: "failed to read response body", Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		logger.Warn().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("backend rejected request")
	} else {
		logger.Debug().Int("status", resp.StatusCode).Msg("backend request succeeded")
	}

	return respBody, resp.StatusCode, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
