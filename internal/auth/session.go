// Package auth issues and verifies the signed session claims that
// authenticate every protected request.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tasklister/tasklister-api/internal/models"
)

// ErrInvalidSession covers every verification failure: bad signature,
// expiry, malformed token or unknown role. Callers must not tell them apart.
var ErrInvalidSession = errors.New("invalid session")

// Session is the identity carried by a verified claim.
type Session struct {
	UserID     uint64
	InstanceID uint64
	Role       models.Role
	Username   string
	ExpiresAt  time.Time
}

// IsAdmin reports whether the session holds the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// Claims is the signed payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID     uint64 `json:"userId"`
	InstanceID uint64 `json:"instanceId"`
	Role       string `json:"role"`
	Username   string `json:"username"`
}

// Issuer signs and verifies session claims with an HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer whose claims expire ttl after issuance.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// Issue signs a claim for user.
func (i *Issuer) Issue(user models.User) (string, Session, error) {
	return i.IssueAs(user, user.Role)
}

// IssueAs signs a claim for user carrying role instead of the stored one.
func (i *Issuer) IssueAs(user models.User, role models.Role) (string, Session, error) {
	if !role.Valid() {
		return "", Session{}, fmt.Errorf("cannot issue session for role %q", role)
	}

	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:     user.ID,
		InstanceID: user.InstanceID,
		Role:       string(role),
		Username:   user.Username,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("failed to sign session: %w", err)
	}

	return signed, Session{
		UserID:     user.ID,
		InstanceID: user.InstanceID,
		Role:       role,
		Username:   user.Username,
		ExpiresAt:  time.Unix(expiresAt.Unix(), 0),
	}, nil
}

// Verify parses token and returns its session, or ErrInvalidSession.
func (i *Issuer) Verify(token string) (Session, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidSession
	}

	role, ok := models.ParseRole(claims.Role)
	if !ok || claims.UserID == 0 || claims.InstanceID == 0 {
		return Session{}, ErrInvalidSession
	}

	return Session{
		UserID:     claims.UserID,
		InstanceID: claims.InstanceID,
		Role:       role,
		Username:   claims.Username,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
