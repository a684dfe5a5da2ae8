package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/pkg/media"
)

// LoginResult is the backend's answer to a successful sign-in.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	Token       string      `json:"token"`
	User        models.User `json:"user"`
}

// BearerToken returns whichever token field the backend filled.
func (r LoginResult) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// ScheduleInput is the create/update payload for schedules. Times are "3:04 PM".
type ScheduleInput struct {
	SubjectCode       string         `json:"subject_code"`
	Subject           string         `json:"subject"`
	Block             string         `json:"block"`
	StartTime         string         `json:"start_time"`
	EndTime           string         `json:"end_time"`
	Day               models.Weekday `json:"day"`
	Room              string         `json:"room"`
	InstructorID      int64          `json:"instructor_id"`
	AssignedCheckerID int64          `json:"assigned_checker_id"`
}

// InstructorInput is the create/update payload for instructors.
type InstructorInput struct {
	FullName     string            `json:"full_name"`
	InstructorID string            `json:"instructor_id"`
	Course       models.Department `json:"course"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
}

// UserInput is the multipart payload for creating or updating users.
type UserInput struct {
	FullName string
	SchoolID string
	Email    string
	Phone    string
	Role     models.UserRole
	Password string
}

// FeedbackReview is an admin's decision on a feedback entry.
type FeedbackReview struct {
	Status        models.FeedbackStatus `json:"status"`
	AdminResponse string                `json:"admin_response,omitempty"`
}

// Login exchanges school credentials for a backend bearer token.
func (c *Client) Login(ctx context.Context, schoolID, password string) (*LoginResult, error) {
	var out LoginResult
	in := map[string]string{"school_id": schoolID, "password": password}
	if err := c.jsonCall(ctx, call{method: http.MethodPost, path: "/login", resource: "login"}, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the backend token. Backends without the route answer 404, which callers may ignore.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.jsonCall(ctx, call{method: http.MethodPost, path: "/logout", resource: "logout", token: token}, nil, nil)
}

// ListSchedules returns every schedule.
func (c *Client) ListSchedules(ctx context.Context, token string) ([]models.Schedule, error) {
	return list[models.Schedule](ctx, c, token, "/schedules", "schedules", nil)
}

// CheckerSchedules returns the schedules assigned to the signed-in checker.
func (c *Client) CheckerSchedules(ctx context.Context, token string) ([]models.Schedule, error) {
	return list[models.Schedule](ctx, c, token, "/checker/schedules", "checker_schedules", nil)
}

// CheckerSchedulesToday returns today's schedules for the signed-in checker.
func (c *Client) CheckerSchedulesToday(ctx context.Context, token string) ([]models.Schedule, error) {
	return list[models.Schedule](ctx, c, token, "/checker/schedules/today", "checker_schedules_today", nil)
}

// CreateSchedule creates a schedule.
func (c *Client) CreateSchedule(ctx context.Context, token string, in ScheduleInput) (*models.Schedule, error) {
	var out models.Schedule
	if err := c.jsonCall(ctx, call{method: http.MethodPost, path: "/schedules", resource: "schedules", token: token}, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSchedule replaces a schedule.
func (c *Client) UpdateSchedule(ctx context.Context, token, id string, in ScheduleInput) (*models.Schedule, error) {
	var out models.Schedule
	cl := call{method: http.MethodPut, path: "/schedules/" + url.PathEscape(id), resource: "schedules", token: token}
	if err := c.jsonCall(ctx, cl, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSchedule removes a schedule.
func (c *Client) DeleteSchedule(ctx context.Context, token, id string) error {
	return c.remove(ctx, token, "schedules", id)
}

// ListInstructors returns the instructor roster.
func (c *Client) ListInstructors(ctx context.Context, token string) ([]models.Instructor, error) {
	return list[models.Instructor](ctx, c, token, "/instructors", "instructors", nil)
}

// CreateInstructor adds an instructor.
func (c *Client) CreateInstructor(ctx context.Context, token string, in InstructorInput) (*models.Instructor, error) {
	var out models.Instructor
	if err := c.jsonCall(ctx, call{method: http.MethodPost, path: "/instructors", resource: "instructors", token: token}, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInstructor replaces an instructor.
func (c *Client) UpdateInstructor(ctx context.Context, token, id string, in InstructorInput) (*models.Instructor, error) {
	var out models.Instructor
	cl := call{method: http.MethodPut, path: "/instructors/" + url.PathEscape(id), resource: "instructors", token: token}
	if err := c.jsonCall(ctx, cl, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInstructor removes an instructor.
func (c *Client) DeleteInstructor(ctx context.Context, token, id string) error {
	return c.remove(ctx, token, "instructors", id)
}

// ListUsers returns users, optionally restricted to one role.
func (c *Client) ListUsers(ctx context.Context, token string, role models.UserRole) ([]models.User, error) {
	var q url.Values
	if role != "" {
		q = url.Values{"role": {string(role)}}
	}
	return list[models.User](ctx, c, token, "/users", "users", q)
}

// CreateUser uploads a new user as multipart form data, with the photo when present.
func (c *Client) CreateUser(ctx context.Context, token string, in UserInput, photo *media.Photo) (*models.User, error) {
	return c.sendUserForm(ctx, token, "/users", in, photo, false)
}

// UpdateUser changes a user. Only non-empty fields are sent. The backend parses multipart
// bodies on POST only, so the form carries _method=PUT.
func (c *Client) UpdateUser(ctx context.Context, token, id string, in UserInput, photo *media.Photo) (*models.User, error) {
	return c.sendUserForm(ctx, token, "/users/"+url.PathEscape(id), in, photo, true)
}

func (c *Client) sendUserForm(ctx context.Context, token, path string, in UserInput, photo *media.Photo, update bool) (*models.User, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fields := [][2]string{
		{"full_name", in.FullName},
		{"school_id", in.SchoolID},
		{"email", in.Email},
		{"phone", in.Phone},
		{"role", string(in.Role)},
		{"password", in.Password},
	}
	if update {
		fields = append(fields, [2]string{"_method", http.MethodPut})
	}
	for _, f := range fields {
		if f[1] == "" && (update || f[0] == "phone") {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encode users request: %w", err)
		}
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, photo.Filename))
		h.Set("Content-Type", photo.ContentType())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("encode users photo: %w", err)
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, fmt.Errorf("encode users photo: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode users request: %w", err)
	}

	raw, err := c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		resource:    "users",
		token:       token,
		body:        body,
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}
	var out models.User
	if err := decodeOne(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.remove(ctx, token, "users", id)
}

// ListAttendance returns every attendance record.
func (c *Client) ListAttendance(ctx context.Context, token string) ([]models.AttendanceRecord, error) {
	return list[models.AttendanceRecord](ctx, c, token, "/attendance", "attendance", nil)
}

// CheckerAttendance returns the records captured by the signed-in checker.
func (c *Client) CheckerAttendance(ctx context.Context, token string) ([]models.AttendanceRecord, error) {
	return list[models.AttendanceRecord](ctx, c, token, "/checker/attendance", "checker_attendance", nil)
}

// ListRooms returns rooms with their building and assigned checker.
func (c *Client) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	return list[models.Room](ctx, c, token, "/rooms", "rooms", nil)
}

// AssignChecker sets or clears (nil) the checker of a room.
func (c *Client) AssignChecker(ctx context.Context, token string, roomID int64, checkerID *int64) (*models.Room, error) {
	var out models.Room
	cl := call{method: http.MethodPut, path: "/rooms/" + strconv.FormatInt(roomID, 10), resource: "rooms", token: token}
	in := struct {
		CheckerID *int64 `json:"checker_id"`
	}{CheckerID: checkerID}
	if err := c.jsonCall(ctx, cl, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFeedback returns all feedback for admins, or the caller's own for checkers.
func (c *Client) ListFeedback(ctx context.Context, token string) ([]models.Feedback, error) {
	return list[models.Feedback](ctx, c, token, "/feedback", "feedback", nil)
}

// SubmitFeedback posts a checker's message.
func (c *Client) SubmitFeedback(ctx context.Context, token, message string) (*models.Feedback, error) {
	var out models.Feedback
	in := map[string]string{"message": message}
	if err := c.jsonCall(ctx, call{method: http.MethodPost, path: "/feedback", resource: "feedback", token: token}, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewFeedback records an admin's status and response.
func (c *Client) ReviewFeedback(ctx context.Context, token, id string, in FeedbackReview) (*models.Feedback, error) {
	var out models.Feedback
	cl := call{method: http.MethodPut, path: "/feedback/" + url.PathEscape(id), resource: "feedback", token: token}
	if err := c.jsonCall(ctx, cl, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFeedback removes a feedback entry.
func (c *Client) DeleteFeedback(ctx context.Context, token, id string) error {
	return c.remove(ctx, token, "feedback", id)
}
