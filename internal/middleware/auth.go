package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/constants"
	apierrors "github.com/tasklister/tasklister-api/internal/errors"
)

// SessionVerifier verifies bearer tokens.
type SessionVerifier interface {
	Verify(token string) (auth.Session, error)
}

// RequireAuth checks the bearer session token. A missing token is 401,
// any token that fails verification is 403.
func RequireAuth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			apierrors.Unauthorized(c, "Missing authorization token")
			return
		}

		session, err := verifier.Verify(token)
		if err != nil {
			apierrors.InvalidSession(c)
			return
		}

		// Store the verified session for handlers
		c.Set(constants.ContextKeyClaims, session)
		c.Next()
	}
}

// GetSession retrieves the verified session from context
func GetSession(c *gin.Context) (auth.Session, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return auth.Session{}, false
	}
	session, ok := value.(auth.Session)
	return session, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
