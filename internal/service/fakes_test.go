package service

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/repository"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	"github.com/noah-isme/campus-attendance-gateway/pkg/media"
)

// fakeBackend stands in for the campus REST backend.
type fakeBackend struct {
	mu sync.Mutex

	schedules   []models.Schedule
	instructors []models.Instructor
	users       []models.User
	attendance  []models.AttendanceRecord
	rooms       []models.Room
	feedback    []models.Feedback

	listErr   error
	deleteErr error
	loginErr  error
	updateErr error
	login     *upstream.LoginResult

	listCalls       int
	lastSchedule    upstream.ScheduleInput
	lastInstructor  upstream.InstructorInput
	lastUser        upstream.UserInput
	lastUserID      string
	lastPhoto       *media.Photo
	lastAssignment  *int64
	lastReview      upstream.FeedbackReview
	loggedOutTokens []string
}

func (f *fakeBackend) list() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.listErr
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeBackend) Login(ctx context.Context, schoolID, password string) (*upstream.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.login, nil
}

func (f *fakeBackend) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOutTokens = append(f.loggedOutTokens, token)
	return nil
}

func (f *fakeBackend) ListSchedules(ctx context.Context, token string) ([]models.Schedule, error) {
	if err := f.list(); err != nil {
		return nil, err
	}
	return append([]models.Schedule(nil), f.schedules...), nil
}

func (f *fakeBackend) CheckerSchedules(ctx context.Context, token string) ([]models.Schedule, error) {
	return f.ListSchedules(ctx, token)
}

func (f *fakeBackend) CheckerSchedulesToday(ctx context.Context, token string) ([]models.Schedule, error) {
	return f.ListSchedules(ctx, token)
}

func (f *fakeBackend) CreateSchedule(ctx context.Context, token string, in upstream.ScheduleInput) (*models.Schedule, error) {
	f.lastSchedule = in
	return &models.Schedule{ID: 99, SubjectCode: in.SubjectCode, StartTime: in.StartTime, EndTime: in.EndTime, Day: in.Day}, nil
}

func (f *fakeBackend) UpdateSchedule(ctx context.Context, token, id string, in upstream.ScheduleInput) (*models.Schedule, error) {
	f.lastSchedule = in
	n, _ := strconv.ParseInt(id, 10, 64)
	return &models.Schedule{ID: n, SubjectCode: in.SubjectCode}, nil
}

func (f *fakeBackend) DeleteSchedule(ctx context.Context, token, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.schedules[:0]
	for _, s := range f.schedules {
		if strconv.FormatInt(s.ID, 10) != id {
			kept = append(kept, s)
		}
	}
	f.schedules = kept
	return nil
}

func (f *fakeBackend) ListInstructors(ctx context.Context, token string) ([]models.Instructor, error) {
	if err := f.list(); err != nil {
		return nil, err
	}
	return append([]models.Instructor(nil), f.instructors...), nil
}

func (f *fakeBackend) CreateInstructor(ctx context.Context, token string, in upstream.InstructorInput) (*models.Instructor, error) {
	f.lastInstructor = in
	return &models.Instructor{ID: 5, FullName: in.FullName, Department: in.Course}, nil
}

func (f *fakeBackend) UpdateInstructor(ctx context.Context, token, id string, in upstream.InstructorInput) (*models.Instructor, error) {
	f.lastInstructor = in
	return &models.Instructor{ID: 5, FullName: in.FullName}, nil
}

func (f *fakeBackend) DeleteInstructor(ctx context.Context, token, id string) error {
	return f.deleteErr
}

func (f *fakeBackend) ListUsers(ctx context.Context, token string, role models.UserRole) ([]models.User, error) {
	if err := f.list(); err != nil {
		return nil, err
	}
	var out []models.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateUser(ctx context.Context, token string, in upstream.UserInput, photo *media.Photo) (*models.User, error) {
	f.lastUser = in
	f.lastPhoto = photo
	return &models.User{ID: 12, FullName: in.FullName, Role: in.Role}, nil
}

func (f *fakeBackend) UpdateUser(ctx context.Context, token, id string, in upstream.UserInput, photo *media.Photo) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastUserID = id
	f.lastUser = in
	f.lastPhoto = photo
	return &models.User{ID: 12, FullName: in.FullName, Email: in.Email, Role: in.Role}, nil
}

func (f *fakeBackend) DeleteUser(ctx context.Context, token, id string) error {
	return f.deleteErr
}

func (f *fakeBackend) ListAttendance(ctx context.Context, token string) ([]models.AttendanceRecord, error) {
	if err := f.list(); err != nil {
		return nil, err
	}
	return append([]models.AttendanceRecord(nil), f.attendance...), nil
}

func (f *fakeBackend) CheckerAttendance(ctx context.Context, token string) ([]models.AttendanceRecord, error) {
	return f.ListAttendance(ctx, token)
}

func (f *fakeBackend) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	if err := f.list(); err != nil {
		return nil, err
	}
	return append([]models.Room(nil), f.rooms...), nil
}

func (f *fakeBackend) AssignChecker(ctx context.Context, token string, roomID int64, checkerID *int64) (*models.Room, error) {
	f.lastAssignment = checkerID
	for i := range f.rooms {
		if f.rooms[i].ID == roomID {
			f.rooms[i].CheckerID = checkerID
			return &f.rooms[i], nil
		}
	}
	return nil, &upstream.StatusError{Status: http.StatusNotFound, Message: "Room not found"}
}

func (f *fakeBackend) ListFeedback(ctx context.Context, token string) ([]models.Feedback, error) {
	if err := f.list(); err != nil {
		return nil, err
	}
	return append([]models.Feedback(nil), f.feedback...), nil
}

func (f *fakeBackend) SubmitFeedback(ctx context.Context, token, message string) (*models.Feedback, error) {
	return &models.Feedback{ID: 1, Message: message, Status: models.FeedbackPending}, nil
}

func (f *fakeBackend) ReviewFeedback(ctx context.Context, token, id string, in upstream.FeedbackReview) (*models.Feedback, error) {
	f.lastReview = in
	return &models.Feedback{ID: 1, Status: in.Status}, nil
}

func (f *fakeBackend) DeleteFeedback(ctx context.Context, token, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.feedback[:0]
	for _, fb := range f.feedback {
		if strconv.FormatInt(fb.ID, 10) != id {
			kept = append(kept, fb)
		}
	}
	f.feedback = kept
	return nil
}

// memorySessions is an in-memory session store.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]models.Session{}}
}

func (m *memorySessions) Save(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memorySessions) Find(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type auditSpy struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (a *auditSpy) Record(entry models.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *auditSpy) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}
