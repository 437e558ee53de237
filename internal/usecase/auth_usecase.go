package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-clinic-dashboard/internal/delivery/dto"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/domain/repository"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/pkg/apiclient"
	"go-clinic-dashboard/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNoUpstreamToken    = errors.New("login succeeded but no upstream token was issued")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, session *entity.Session) error
	ResolveSession(ctx context.Context, accessToken string) (*entity.Session, error)
	InvalidateSession(ctx context.Context, sessionID string) error
	Permissions(session *entity.Session) *dto.PermissionsResponse
}

type authUsecase struct {
	authGateway repository.AuthGateway
	sessionRepo repository.SessionRepository
	registry    *resource.Registry
	activity    service.ActivityService
	jwtService  *jwt.JWTService
	log         *logrus.Logger
}

func NewAuthUsecase(
	authGateway repository.AuthGateway,
	sessionRepo repository.SessionRepository,
	registry *resource.Registry,
	activity service.ActivityService,
	jwtService *jwt.JWTService,
	log *logrus.Logger,
) AuthUsecase {
	return &authUsecase{
		authGateway: authGateway,
		sessionRepo: sessionRepo,
		registry:    registry,
		activity:    activity,
		jwtService:  jwtService,
		log:         log,
	}
}

// Login exchanges operator credentials for an upstream token, keeps it in a
// server-side session and returns a dashboard token naming that session.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	result, err := u.authGateway.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch apiclient.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to log in upstream: %+v", err)
		return nil, err
	}
	if result.Token == "" {
		return nil, ErrNoUpstreamToken
	}

	session := &entity.Session{
		ID:            uuid.NewString(),
		UserID:        result.User.ID.String(),
		Username:      result.User.Username,
		Role:          result.User.Role,
		UpstreamToken: result.Token,
		Permissions:   entity.PermissionMap(result.Permissions),
		CreatedAt:     time.Now(),
	}
	if session.Username == "" {
		session.Username = req.Username
	}

	accessToken, expiresAt, err := u.jwtService.GenerateAccessToken(session.ID, session.UserID, session.Username, session.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	session.ExpiresAt = expiresAt

	if err := u.sessionRepo.Save(ctx, session, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to save session: %+v", err)
		return nil, fmt.Errorf("save session: %w", err)
	}

	u.activity.RecordAuth(ctx, session, entity.ActivityActionLogin)

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		ExpiresAt:   expiresAt,
		User:        userInfo(session),
	}, nil
}

// Logout deletes the session and disposes every screen it had mounted.
func (u *authUsecase) Logout(ctx context.Context, session *entity.Session) error {
	if err := u.InvalidateSession(ctx, session.ID); err != nil {
		return err
	}
	u.activity.RecordAuth(ctx, session, entity.ActivityActionLogout)
	return nil
}

func (u *authUsecase) ResolveSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	claims, err := u.jwtService.ValidateToken(accessToken)
	if err != nil || claims.TokenType != jwt.AccessToken || claims.TokenID == "" {
		return nil, ErrInvalidToken
	}

	session, err := u.sessionRepo.FindByID(ctx, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to load session: %+v", err)
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// InvalidateSession is used on logout and whenever the upstream API answers
// 401 for the session's token.
func (u *authUsecase) InvalidateSession(ctx context.Context, sessionID string) error {
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}
	if n := u.registry.DisposeSession(sessionID); n > 0 {
		u.log.WithFields(logrus.Fields{"session_id": sessionID, "screens": n}).Info("Disposed screens of closed session")
	}
	return nil
}

func (u *authUsecase) Permissions(session *entity.Session) *dto.PermissionsResponse {
	permissions := make(map[string]bool, len(session.Permissions))
	for name, granted := range session.Permissions {
		permissions[name] = granted
	}
	return &dto.PermissionsResponse{
		User:        userInfo(session),
		Permissions: permissions,
		Loading:     false,
	}
}

func userInfo(session *entity.Session) dto.UserInfo {
	return dto.UserInfo{
		ID:       session.UserID,
		Username: session.Username,
		Role:     session.Role,
	}
}
