// Package auth exchanges credentials for a session and restores persisted
// sessions on start-up.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tedomi2525/My-project/internal/session"
	"github.com/Tedomi2525/My-project/types"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionExpired is returned when a persisted session can no longer
	// be used and has been cleared.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidToken is returned for a token whose signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMalformedToken is returned for a token that is not a JWT.
	ErrMalformedToken = errors.New("malformed token")
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the claim set carried by access tokens. The subject holds the
// user id; some backends also emit it as user_id.
type Claims struct {
	Role   string `json:"role,omitempty"`
	UserID int    `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for userID with the given role.
func IssueToken(secret string, userID int, role types.Role, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("empty signing secret")
	}
	now := time.Now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
}

// DecodeClaims reads the claims of token into a Credential. With a secret
// the signature is verified; without one the claims are read unverified
// and only the expiry is checked.
func DecodeClaims(token, secret string, now time.Time) (session.Credential, error) {
	var claims Claims
	if secret != "" {
		_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithTimeFunc(func() time.Time { return now }))
		switch {
		case err == nil:
		case errors.Is(err, jwt.ErrTokenMalformed):
			return session.Credential{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return session.Credential{}, ErrSessionExpired
		default:
			return session.Credential{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
			return session.Credential{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
		if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
			return session.Credential{}, ErrSessionExpired
		}
	}

	cred := session.Credential{Token: token, UserID: claims.UserID}
	if cred.UserID == 0 {
		if id, err := strconv.Atoi(strings.TrimSpace(claims.Subject)); err == nil {
			cred.UserID = id
		}
	}
	if role, ok := types.ParseRole(claims.Role); ok {
		cred.Role = role
	}
	if claims.ExpiresAt != nil {
		cred.ExpiresAt = claims.ExpiresAt.Time
	}
	return cred, nil
}
