package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role markers. Both token classes are signed with the same secret, so
// validation must match the role marker and not just the signature.
const (
	RoleSession = "admin"
	RoleSignup  = "admin_temp"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrRoleMismatch = errors.New("token role mismatch")
)

// Claims represents the JWT claims for both session and signup tokens.
// Signup tokens carry only the role marker; session tokens also carry
// the admin identity.
type Claims struct {
	AdminID string `json:"admin_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken generates a session token for a logged-in admin
func GenerateSessionToken(adminID uuid.UUID, email, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		AdminID: adminID.String(),
		Email:   email,
		Role:    RoleSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "staffhub",
			Subject:   adminID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateSignupToken generates a short-lived token that authorizes one
// admin registration while admins already exist
func GenerateSignupToken(secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: RoleSignup,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "staffhub",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken validates a session token and returns its claims
func ValidateSessionToken(tokenString, secret string) (*Claims, error) {
	return validate(tokenString, secret, RoleSession)
}

// ValidateSignupToken validates a signup token and returns its claims
func ValidateSignupToken(tokenString, secret string) (*Claims, error) {
	return validate(tokenString, secret, RoleSignup)
}

func validate(tokenString, secret, expectedRole string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Role != expectedRole {
		return nil, ErrRoleMismatch
	}

	return claims, nil
}
