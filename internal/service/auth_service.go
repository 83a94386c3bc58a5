package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("token does not grant access to this user")
)

// AuthService issues and validates admin and user-scoped tokens
type AuthService struct {
	adminUsername string
	adminPassword string
	jwtSecret     []byte
	userTokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(adminUsername, adminPassword, secret string) *AuthService {
	return &AuthService{
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		jwtSecret:     []byte(secret),
		userTokenTTL:  30 * 24 * time.Hour,
	}
}

// Login validates admin credentials and returns a permanent admin token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.adminUsername || password != s.adminPassword {
		return nil, ErrInvalidCredentials
	}

	adminID := "admin_" + uuid.New().String()[:8]

	claims := &model.Claims{
		Role:    model.RoleAdmin,
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  adminID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	tokenString, err := s.sign(claims)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		AdminID: adminID,
	}, nil
}

// IssueUserToken creates a token that only grants access to userID's data
func (s *AuthService) IssueUserToken(userID int64) (string, error) {
	now := time.Now()
	claims := &model.Claims{
		Role:   model.RoleUser,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.userTokenTTL)),
		},
	}
	return s.sign(claims)
}

// ValidateToken validates a JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != model.RoleAdmin && claims.Role != model.RoleUser {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authorize reports whether claims may access userID's data
func (s *AuthService) Authorize(claims *model.Claims, userID int64) error {
	if claims == nil {
		return ErrInvalidToken
	}
	if claims.Role == model.RoleAdmin {
		return nil
	}
	if claims.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) sign(claims *model.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
