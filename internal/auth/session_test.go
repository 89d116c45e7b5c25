package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasklister/tasklister-api/internal/models"
)

var alice = models.User{ID: 3, InstanceID: 9, Username: "alice", Role: models.RoleUser}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("super-secret"), 7*24*time.Hour)

	token, issued, err := issuer.Issue(alice)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)
	assert.Equal(t, alice.InstanceID, got.InstanceID)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, issued.ExpiresAt.Unix(), got.ExpiresAt.Unix())
	assert.False(t, got.IsAdmin())
}

func TestIssue_ExpiryIsSevenDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer([]byte("k"), 7*24*time.Hour).WithClock(func() time.Time { return now })

	_, s, err := issuer.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour).Unix(), s.ExpiresAt.Unix())
}

func TestIssueAs_OverridesRole(t *testing.T) {
	t.Parallel()

	admin := models.User{ID: 1, InstanceID: 9, Username: "boss", Role: models.RoleAdmin}
	issuer := NewIssuer([]byte("k"), time.Hour)

	token, _, err := issuer.IssueAs(admin, models.RoleUser)
	require.NoError(t, err)

	s, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, s.Role)
}

func TestIssue_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("k"), time.Hour)
	_, _, err := issuer.IssueAs(alice, models.Role("root"))
	require.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewIssuer([]byte("k"), time.Hour).WithClock(func() time.Time { return issued })

	token, _, err := issuer.Issue(alice)
	require.NoError(t, err)

	later := issuer.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })
	_, err = later.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewIssuer([]byte("right"), time.Hour).Issue(alice)
	require.NoError(t, err)

	_, err = NewIssuer([]byte("wrong"), time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("k"), time.Hour).Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_UnknownRole(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:     1,
		InstanceID: 1,
		Role:       "superuser",
		Username:   "mallory",
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = NewIssuer(secret, time.Hour).Verify(signed)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:     1,
		InstanceID: 1,
		Role:       "user",
		Username:   "eve",
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = NewIssuer(secret, time.Hour).Verify(signed)
	require.ErrorIs(t, err, ErrInvalidSession)
}
