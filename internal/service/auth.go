package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riptano/statuspage/internal/config"
	"github.com/riptano/statuspage/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mocks/mock_auth.go -package=mocks

// UserRepository defines the storage contract for operator accounts.
type UserRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService resolves a verified identity for every write request. API
// clients present a per-user API key; dashboard operators log in with a
// password and get back a signed token.
type AuthService interface {
	Authenticate(ctx context.Context, apiKey string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	repo   UserRepository
	logger *logrus.Logger
	cfg    *config.Config
}

func NewAuthService(repo UserRepository, logger *logrus.Logger, cfg *config.Config) AuthService {
	return &authService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// Authenticate maps an API key onto the user that owns it.
func (s *authService) Authenticate(ctx context.Context, apiKey string) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Authenticate",
	})

	if apiKey == "" {
		return nil, fmt.Errorf("service: missing API key: %w", ErrUnauthorized)
	}

	user, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		log.WithError(err).Warn("API key did not resolve to a user")
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("service: invalid API key: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("service: could not authenticate: %w", err)
	}
	return user, nil
}

// Login checks the password and issues a signed token for dashboard use.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "Login",
		"username": username,
	})

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		log.WithError(err).Warn("Login for unknown username")
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("service: invalid credentials: %w", ErrUnauthorized)
		}
		return "", fmt.Errorf("service: could not log in: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login with wrong password")
		return "", fmt.Errorf("service: invalid credentials: %w", ErrUnauthorized)
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.cfg.JWTTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		return "", fmt.Errorf("service: could not sign token: %w", err)
	}

	log.Info("Operator logged in")
	return token, nil
}

// VerifyToken validates a dashboard token and loads the user it names.
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "VerifyToken",
	})

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		log.WithError(err).Warn("Invalid or expired token")
		return nil, fmt.Errorf("service: invalid token: %w", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("service: invalid token claims: %w", ErrUnauthorized)
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("service: invalid user id in token: %w", ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, int64(userIDFloat))
	if err != nil {
		log.WithError(err).Warn("Token names an unknown user")
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("service: unknown user in token: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("service: could not verify token: %w", err)
	}
	return user, nil
}
