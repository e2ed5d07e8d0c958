package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/pkg/common"
	"regintel/pkg/logger"
)

// ErrInvalidCredentials is returned when the email or password is wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionNotFound is returned when a session token is unknown or
// expired.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state bound to a session cookie.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// AuthService defines the interface for authentication and sessions.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, string, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*Session, error)
}

// NewAuthService creates a new auth service backed by Redis sessions.
func NewAuthService(userRepo repository.UserRepository, redisClient *redis.Client, sessionTTL time.Duration, logger *logger.Logger) AuthService {
	return &authService{
		userRepo:    userRepo,
		redisClient: redisClient,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

type authService struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
	sessionTTL  time.Duration
	logger      *logger.Logger
}

// Login verifies credentials and issues an opaque session token.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	session := Session{UserID: user.ID, Email: user.Email}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, "", err
	}

	if err := s.redisClient.Set(ctx, common.RedisKeySessionPrefix+token, payload, s.sessionTTL).Err(); err != nil {
		s.logger.Error("Failed to store session", logger.ErrorField(err))
		return nil, "", err
	}

	return &dto.LoginResponse{
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, token, nil
}

// Logout discards the session token.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.redisClient.Del(ctx, common.RedisKeySessionPrefix+token).Err()
}

// ValidateSession resolves a token to its session state.
func (s *authService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	payload, err := s.redisClient.Get(ctx, common.RedisKeySessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
