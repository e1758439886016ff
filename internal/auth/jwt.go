package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Validation errors. The middleware maps these to distinct 401 messages.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair is the access/refresh token pair returned on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type tokenClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HMAC-SHA256 signed tokens. Access and
// refresh tokens share the signing key but carry a type claim, so a refresh
// token can never be used to authenticate a request and vice versa.
type JWTService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	timeFunc   func() time.Time // injectable for tests
}

// NewJWTService creates a JWTService. The secret must be at least 32
// characters; anything shorter is refused outright.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) (*JWTService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters, got %d", len(secret))
	}
	return &JWTService{
		signingKey: []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		timeFunc:   time.Now,
	}, nil
}

// GenerateTokenPair issues a fresh access + refresh token pair for a user.
func (s *JWTService) GenerateTokenPair(userID string) (TokenPair, error) {
	access, err := s.generate(userID, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.generate(userID, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// GenerateAccessToken issues a new access token, used on refresh.
func (s *JWTService) GenerateAccessToken(userID string) (string, error) {
	return s.generate(userID, tokenTypeAccess, s.accessTTL)
}

func (s *JWTService) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	now := s.timeFunc()
	claims := tokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateAccessToken validates an access token and returns the user ID.
func (s *JWTService) ValidateAccessToken(tokenString string) (string, error) {
	return s.validate(tokenString, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns the user ID.
func (s *JWTService) ValidateRefreshToken(tokenString string) (string, error) {
	return s.validate(tokenString, tokenTypeRefresh)
}

func (s *JWTService) validate(tokenString, wantType string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return "", ErrWrongTokenType
	}
	return claims.UserID, nil
}
