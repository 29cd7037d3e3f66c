package session

import (
	"context"
	"fmt"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewSessionService(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.SessionService {
	onceSessionService.Do(func() {
		sessionServiceInstance = newSessionService(redisRepository, logger)
	})
	return sessionServiceInstance
}

func newSessionService(redisRepository contracts.RedisRepository, logger *zap.Logger) *sessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionID)
	if err != nil {
		return "", exceptions.ErrTokenInvalid(err)
	}
	if sessionData == "" {
		return "", exceptions.ErrInvalidSession(fmt.Errorf("session %s not found", sessionID))
	}
	return sessionData, nil
}

func (svc *sessionService) ResolveCaller(ctx context.Context, sessionData string) (models.CallerIdentity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := svc.ParseSessionData(ctx, sessionData)
	if err != nil {
		svc.Log.Error("sessionService.ResolveCaller error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return models.CallerIdentity{}, exceptions.ErrInvalidSession(err)
	}

	if session.IsExpired() {
		return models.CallerIdentity{}, exceptions.ErrInvalidSession(fmt.Errorf("session %s expired", session.SessionID))
	}

	caller, ok := session.CallerIdentity()
	if !ok {
		svc.Log.Error("sessionService.ResolveCaller session carries no usable identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCallerRoleKey, session.Role),
		)
		return models.CallerIdentity{}, exceptions.ErrInvalidSessionRole(nil)
	}
	return caller, nil
}
