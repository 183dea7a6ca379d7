package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session cookie / bearer token.
// Role is informational only; the server re-reads it from storage.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ImpersonationClaims is the payload of the MASTER impersonation cookie.
// Subject is the MASTER user that started the impersonation.
type ImpersonationClaims struct {
	WorkspaceID   string `json:"workspaceId"`
	WorkspaceName string `json:"workspaceName"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new session token for userID.
func GenerateJWT(userID, role string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a session token string, validates its signature and standard claims.
func ParseAndValidateJWT(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parseHMAC(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// GenerateImpersonationToken signs an impersonation record valid for ttl.
func GenerateImpersonationToken(masterUserID, workspaceID, workspaceName, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := ImpersonationClaims{
		WorkspaceID:   workspaceID,
		WorkspaceName: workspaceName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   masterUserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseImpersonationToken validates an impersonation cookie value.
func ParseImpersonationToken(tokenString, secret string) (*ImpersonationClaims, error) {
	claims := &ImpersonationClaims{}
	if err := parseHMAC(tokenString, secret, claims); err != nil {
		return nil, err
	}
	if claims.WorkspaceID == "" || claims.Subject == "" {
		return nil, errors.New("impersonation token is incomplete")
	}
	return claims, nil
}

func parseHMAC(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err // expired, not valid yet, bad signature...
	}
	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}
