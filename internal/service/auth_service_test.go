package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

func newAuth(backend *fakeBackend) (*AuthService, *memorySessions, *auditSpy) {
	sessions := newMemorySessions()
	audit := &auditSpy{}
	svc := NewAuthService(backend, sessions, audit, nil, nil, AuthConfig{Secret: "secret", SessionTTL: time.Hour})
	return svc, sessions, audit
}

func TestLoginOpensSession(t *testing.T) {
	backend := &fakeBackend{login: &upstream.LoginResult{
		AccessToken: "backend-token",
		User:        models.User{ID: 7, FullName: "Ana Cruz", Role: models.RoleChecker},
	}}
	svc, sessions, audit := newAuth(backend)

	resp, err := svc.Login(context.Background(), models.LoginRequest{SchoolID: "2021-0001", Password: "pw", IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleChecker, resp.User.Role)
	assert.NotEqual(t, "backend-token", resp.AccessToken)

	session, claims, err := svc.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", session.UpstreamToken)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Len(t, sessions.sessions, 1)
	assert.Equal(t, []string{models.AuditActionLogin}, audit.actions())
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	backend := &fakeBackend{login: &upstream.LoginResult{
		AccessToken: "backend-token",
		User:        models.User{ID: 7, Role: "Student"},
	}}
	svc, sessions, _ := newAuth(backend)

	_, err := svc.Login(context.Background(), models.LoginRequest{SchoolID: "x", Password: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnknownRole)
	assert.Empty(t, sessions.sessions)
	assert.Equal(t, []string{"backend-token"}, backend.loggedOutTokens)
}

func TestLoginMapsBackendRejection(t *testing.T) {
	backend := &fakeBackend{loginErr: &upstream.StatusError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}}
	svc, _, _ := newAuth(backend)

	_, err := svc.Login(context.Background(), models.LoginRequest{SchoolID: "x", Password: "y"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.LoginRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthenticateAfterLogoutFails(t *testing.T) {
	backend := &fakeBackend{login: &upstream.LoginResult{
		AccessToken: "backend-token",
		User:        models.User{ID: 1, Role: models.RoleAdmin},
	}}
	svc, _, audit := newAuth(backend)

	resp, err := svc.Login(context.Background(), models.LoginRequest{SchoolID: "a", Password: "b"})
	require.NoError(t, err)
	session, _, err := svc.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session, "", ""))
	_, _, err = svc.Authenticate(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrSessionExpired)
	assert.Equal(t, []string{models.AuditActionLogin, models.AuditActionLogout}, audit.actions())
}

func TestValidateTokenRejectsForeignSignatures(t *testing.T) {
	svc, _, _ := newAuth(&fakeBackend{})

	claims := &models.SessionClaims{
		SessionID: "s1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "campus-gateway",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, appErrors.ErrSessionExpired)
}
