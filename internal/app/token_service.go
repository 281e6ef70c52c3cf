package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// TokenService mints and verifies signed session tokens. A rejoin token binds
// a player to a match so a reconnecting client can prove who it was without
// the relay trusting anything the client claims.
type TokenService struct {
	secret string
	issuer string
	ttl    time.Duration
}

const TokenActionRejoin = "rejoin"

// NewTokenService constructs a TokenService. ttl <= 0 defaults to one hour.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: secret, issuer: issuer, ttl: ttl}
}

// GenerateRejoinToken signs a token tying userID to matchID.
func (s *TokenService) GenerateRejoinToken(userID, matchID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("token service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": userID,
		"exp": time.Now().Add(s.ttl).Unix(),
		"act": TokenActionRejoin,
		"mid": matchID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyRejoinToken checks the signature and claims of a rejoin token and
// returns the user and match it was minted for.
func (s *TokenService) VerifyRejoinToken(tokenString string) (userID, matchID string, err error) {
	if s == nil || s.secret == "" {
		return "", "", fmt.Errorf("token config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse rejoin token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("rejoin token is invalid")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", "", fmt.Errorf("rejoin token issuer mismatch")
	}
	if act, _ := claims["act"].(string); act != TokenActionRejoin {
		return "", "", fmt.Errorf("token is not a rejoin token")
	}

	userID, _ = claims["sub"].(string)
	matchID, _ = claims["mid"].(string)
	if userID == "" || matchID == "" {
		return "", "", fmt.Errorf("rejoin token is missing subject or match")
	}
	return userID, matchID, nil
}
