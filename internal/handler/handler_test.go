package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-attendance-gateway/internal/dto"
	"github.com/noah-isme/campus-attendance-gateway/internal/middleware"
	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/service"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func signedInContext(method, target string, body *bytes.Buffer) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	if body == nil {
		body = &bytes.Buffer{}
	}
	c.Request = httptest.NewRequest(method, target, body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextSessionKey, &models.Session{
		ID:            "s1",
		UpstreamToken: "backend-token",
		User:          models.User{ID: 4, FullName: "Ana Cruz", Role: models.RoleChecker},
		ExpiresAt:     time.Now().Add(time.Hour),
	})
	return c, rec
}

type fakeScheduleSrv struct {
	lastToken   string
	lastRaw     map[string]string
	lastID      string
	lastRequest dto.ScheduleRequest
	err         error
}

func (f *fakeScheduleSrv) screen(token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	f.lastToken = token
	f.lastRaw = raw
	if f.err != nil {
		return nil, f.err
	}
	return &dto.Screen[models.Schedule]{Items: []models.Schedule{{ID: 1}}, Total: 3, Matched: 1}, nil
}

func (f *fakeScheduleSrv) List(_ context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	return f.screen(token, raw)
}

func (f *fakeScheduleSrv) CheckerList(_ context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	return f.screen(token, raw)
}

func (f *fakeScheduleSrv) CheckerToday(_ context.Context, token string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	return f.screen(token, raw)
}

func (f *fakeScheduleSrv) Dashboard(_ context.Context, token string, checker models.User) (*dto.CheckerDashboard, error) {
	f.lastToken = token
	return &dto.CheckerDashboard{Checker: checker.FullName}, nil
}

func (f *fakeScheduleSrv) Create(_ context.Context, token string, req dto.ScheduleRequest) (*models.Schedule, error) {
	f.lastRequest = req
	return &models.Schedule{ID: 9, SubjectCode: req.SubjectCode}, f.err
}

func (f *fakeScheduleSrv) Update(_ context.Context, token, id string, req dto.ScheduleRequest) (*models.Schedule, error) {
	f.lastID = id
	return &models.Schedule{SubjectCode: req.SubjectCode}, f.err
}

func (f *fakeScheduleSrv) Delete(_ context.Context, token, id string, raw map[string]string) (*dto.Screen[models.Schedule], error) {
	f.lastID = id
	return f.screen(token, raw)
}

func TestScheduleListForwardsFiltersAndToken(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv)
	c, rec := signedInContext(http.MethodGet, "/admin/schedules?day=Monday&room=V2&room=V3", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "backend-token", srv.lastToken)
	assert.Equal(t, map[string]string{"day": "Monday", "room": "V2"}, srv.lastRaw)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestScheduleListMapsBackendFailure(t *testing.T) {
	srv := &fakeScheduleSrv{err: appErrors.Clone(appErrors.ErrBadGateway, "failed to load schedules")}
	h := NewScheduleHandler(srv)
	c, rec := signedInContext(http.MethodGet, "/admin/schedules", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "failed to load schedules", env.Error.Message)
}

func TestScheduleCreateRejectsMalformedJSON(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv)
	c, rec := signedInContext(http.MethodPost, "/admin/schedules", bytes.NewBufferString("{"))

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleCreate(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv)
	c, rec := signedInContext(http.MethodPost, "/admin/schedules", bytes.NewBufferString(`{"subject_code":"IT 101","start_time":"08:00"}`))

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "IT 101", srv.lastRequest.SubjectCode)
	assert.Equal(t, "08:00", srv.lastRequest.StartTime)
}

func TestScheduleDeleteReturnsRefetchedScreen(t *testing.T) {
	srv := &fakeScheduleSrv{}
	h := NewScheduleHandler(srv)
	c, rec := signedInContext(http.MethodDelete, "/admin/schedules/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", srv.lastID)
	env := decode(t, rec)
	var screen dto.Screen[models.Schedule]
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	assert.Equal(t, 3, screen.Total)
}

func TestDashboardUsesSessionUser(t *testing.T) {
	h := NewScheduleHandler(&fakeScheduleSrv{})
	c, rec := signedInContext(http.MethodGet, "/checker/dashboard", nil)

	h.Dashboard(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ana Cruz")
}

func TestHandlersRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/schedules", nil)

	NewScheduleHandler(&fakeScheduleSrv{}).List(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeUserSrv struct {
	lastRequest dto.UserRequest
	lastUpdate  dto.UserUpdateRequest
	lastID      string
	lastPhoto   *service.PhotoUpload
	photoBytes  []byte
}

func (f *fakeUserSrv) List(context.Context, string, map[string]string) (*dto.Screen[models.User], error) {
	return &dto.Screen[models.User]{}, nil
}

func (f *fakeUserSrv) Checkers(context.Context, string) ([]dto.CheckerOption, error) {
	return []dto.CheckerOption{{ID: 4, FullName: "Ana Cruz"}}, nil
}

func (f *fakeUserSrv) Create(_ context.Context, _ string, req dto.UserRequest, photo *service.PhotoUpload) (*models.User, error) {
	f.lastRequest = req
	f.lastPhoto = photo
	if photo != nil {
		buf := &bytes.Buffer{}
		_, _ = buf.ReadFrom(photo.Body)
		f.photoBytes = buf.Bytes()
	}
	return &models.User{ID: 12, FullName: req.FullName}, nil
}

func (f *fakeUserSrv) Update(_ context.Context, _ string, id string, req dto.UserUpdateRequest, photo *service.PhotoUpload) (*models.User, error) {
	f.lastID = id
	f.lastUpdate = req
	f.lastPhoto = photo
	if photo != nil {
		buf := &bytes.Buffer{}
		_, _ = buf.ReadFrom(photo.Body)
		f.photoBytes = buf.Bytes()
	}
	return &models.User{ID: 12, Email: req.Email}, nil
}

func (f *fakeUserSrv) Delete(context.Context, string, string, map[string]string) (*dto.Screen[models.User], error) {
	return &dto.Screen[models.User]{}, nil
}

func TestUserCreateMultipartWithPhoto(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("full_name", "Ana Cruz"))
	require.NoError(t, mw.WriteField("role", "Checker"))
	part, err := mw.CreateFormFile("photo", "ana.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)
	c, rec := signedInContext(http.MethodPost, "/admin/users", body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Ana Cruz", srv.lastRequest.FullName)
	assert.Equal(t, "Checker", srv.lastRequest.Role)
	require.NotNil(t, srv.lastPhoto)
	assert.Equal(t, "ana.png", srv.lastPhoto.Filename)
	assert.Equal(t, []byte("png-bytes"), srv.photoBytes)
}

func TestUserCreateJSONWithoutPhoto(t *testing.T) {
	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)
	c, rec := signedInContext(http.MethodPost, "/admin/users", bytes.NewBufferString(`{"full_name":"Ana Cruz","email":"ana@example.com"}`))

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, srv.lastPhoto)
	assert.Equal(t, "ana@example.com", srv.lastRequest.Email)
}

func TestUserUpdateMultipartPhotoOnly(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("photo", "ana.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)
	c, rec := signedInContext(http.MethodPut, "/admin/users/12", body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12", srv.lastID)
	assert.Equal(t, dto.UserUpdateRequest{}, srv.lastUpdate)
	require.NotNil(t, srv.lastPhoto)
	assert.Equal(t, []byte("jpeg-bytes"), srv.photoBytes)
}

func TestUserUpdateJSON(t *testing.T) {
	srv := &fakeUserSrv{}
	h := NewUserHandler(srv)
	c, rec := signedInContext(http.MethodPut, "/admin/users/12", bytes.NewBufferString(`{"email":"ana.cruz@example.com"}`))
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, srv.lastPhoto)
	assert.Equal(t, "ana.cruz@example.com", srv.lastUpdate.Email)
	assert.Contains(t, rec.Body.String(), `"email":"ana.cruz@example.com"`)
}

type fakeAttendanceSrv struct {
	format  string
	filters map[string]string
}

func (f *fakeAttendanceSrv) List(context.Context, string, map[string]string) (*dto.Screen[models.AttendanceRecord], error) {
	return &dto.Screen[models.AttendanceRecord]{}, nil
}

func (f *fakeAttendanceSrv) CheckerList(context.Context, string, map[string]string) (*dto.Screen[models.AttendanceRecord], error) {
	return &dto.Screen[models.AttendanceRecord]{}, nil
}

func (f *fakeAttendanceSrv) Export(_ context.Context, _ string, raw map[string]string, format string) (*dto.ExportFile, error) {
	f.format = format
	f.filters = raw
	if format == "xlsx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	return &dto.ExportFile{Filename: "attendance.csv", ContentType: "text/csv", Body: []byte("Date\n")}, nil
}

func TestAttendanceExportStreamsFile(t *testing.T) {
	srv := &fakeAttendanceSrv{}
	h := NewAttendanceHandler(srv)
	c, rec := signedInContext(http.MethodGet, "/admin/attendance/export?format=csv&status=Late", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", srv.format)
	assert.Equal(t, map[string]string{"status": "Late"}, srv.filters)
	assert.Equal(t, `attachment; filename="attendance.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date\n", rec.Body.String())
}

func TestAttendanceExportRejectsUnknownFormat(t *testing.T) {
	h := NewAttendanceHandler(&fakeAttendanceSrv{})
	c, rec := signedInContext(http.MethodGet, "/admin/attendance/export?format=xlsx", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type pingStub struct{ err error }

func (p pingStub) Ping(context.Context) error { return p.err }

func TestReadyReportsDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil, map[string]Pinger{"redis": pingStub{}, "postgres": nil})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"ok"`)
	assert.NotContains(t, rec.Body.String(), "postgres")

	h = NewHealthHandler(nil, map[string]Pinger{"redis": pingStub{err: assert.AnError}})
	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type auditLogStub struct {
	limit int
	logs  []models.AuditLog
}

func (a *auditLogStub) Recent(_ context.Context, limit int) ([]models.AuditLog, error) {
	a.limit = limit
	return a.logs, nil
}

func TestAuditLogListParsesLimit(t *testing.T) {
	stub := &auditLogStub{logs: []models.AuditLog{{ID: "a1", Action: models.AuditActionDelete, Resource: "schedules"}}}
	h := NewAuditLogHandler(stub)

	c, rec := signedInContext(http.MethodGet, "/api/v1/admin/audit-logs?limit=20", nil)
	h.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, stub.limit)
	env := decode(t, rec)
	assert.Contains(t, string(env.Data), `"resource":"schedules"`)
	assert.EqualValues(t, 1, env.Meta["count"])

	c, rec = signedInContext(http.MethodGet, "/api/v1/admin/audit-logs?limit=many", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
