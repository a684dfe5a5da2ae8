package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/repository"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	appErrors "github.com/noah-isme/campus-attendance-gateway/pkg/errors"
)

type authClient interface {
	Login(ctx context.Context, schoolID, password string) (*upstream.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type sessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

type auditRecorder interface {
	Record(entry models.AuditLog)
}

// AuthConfig defines configuration for gateway sessions.
type AuthConfig struct {
	Secret     string
	SessionTTL time.Duration
	Issuer     string
}

// AuthService signs users in against the backend and keeps their backend token in a
// server-side session referenced by a gateway JWT.
type AuthService struct {
	client    authClient
	sessions  sessionStore
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(client authClient, sessions sessionStore, audit auditRecorder, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 12 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "campus-gateway"
	}
	return &AuthService{
		client:    client,
		sessions:  sessions,
		audit:     audit,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// Login authenticates against the backend and opens a gateway session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	result, err := s.client.Login(ctx, req.SchoolID, req.Password)
	if err != nil {
		if se, ok := upstream.AsStatusError(err); ok && (se.Status == http.StatusUnauthorized || se.Status == http.StatusUnprocessableEntity) {
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidCredentials.Code, appErrors.ErrInvalidCredentials.Status, appErrors.ErrInvalidCredentials.Message)
		}
		return nil, fromUpstream(err, "failed to sign in")
	}

	bearer := result.BearerToken()
	if bearer == "" {
		return nil, appErrors.Clone(appErrors.ErrBadGateway, "backend returned no access token")
	}
	if !result.User.Role.Valid() {
		if err := s.client.Logout(ctx, bearer); err != nil {
			s.logger.Debug("backend logout after unknown role failed", zap.Error(err))
		}
		return nil, appErrors.Clone(appErrors.ErrUnknownRole, "")
	}

	issuedAt := s.now().UTC()
	session := &models.Session{
		ID:            uuid.NewString(),
		UpstreamToken: bearer,
		User:          result.User,
		IssuedAt:      issuedAt,
		ExpiresAt:     issuedAt.Add(s.config.SessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}

	token, err := s.sign(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.record(session, models.AuditActionLogin, req.IP, req.UserAgent)

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.SessionTTL.Seconds()),
		User:        session.User,
		IssuedAt:    issuedAt,
	}, nil
}

// Authenticate validates a gateway token and loads its session.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Session, *models.SessionClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil, appErrors.Clone(appErrors.ErrSessionExpired, "")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, claims, nil
}

// Logout ends the gateway session and, best effort, the backend token.
func (s *AuthService) Logout(ctx context.Context, session *models.Session, ip, userAgent string) error {
	if session == nil {
		return appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	if err := s.client.Logout(ctx, session.UpstreamToken); err != nil {
		s.logger.Debug("backend logout failed", zap.String("session_id", session.ID), zap.Error(err))
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	s.record(session, models.AuditActionLogout, ip, userAgent)
	return nil
}

// ValidateToken parses and validates a gateway access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Wrap(err, appErrors.ErrSessionExpired.Code, appErrors.ErrSessionExpired.Status, appErrors.ErrSessionExpired.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) sign(session *models.Session) (string, error) {
	claims := &models.SessionClaims{
		SessionID: session.ID,
		UserID:    session.User.ID,
		Role:      session.User.Role,
		FullName:  session.User.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   fmt.Sprintf("%d", session.User.ID),
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			NotBefore: jwt.NewNumericDate(session.IssuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}

func (s *AuthService) record(session *models.Session, action, ip, userAgent string) {
	if s.audit == nil {
		return
	}
	userID := session.User.ID
	s.audit.Record(models.AuditLog{
		UserID:     &userID,
		Role:       string(session.User.Role),
		Action:     action,
		Resource:   "auth",
		ResourceID: &session.ID,
		IPAddress:  ip,
		UserAgent:  userAgent,
	})
}
