package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"todolist/pkg/apierrors"
)

const ownerContextKey = "owner_id"

var errNoSubject = errors.New("token has no subject")

// AuthMiddleware verifies the bearer token and attaches the principal id
// (the token subject) to the request context. Token issuance lives in the
// identity provider; this side only verifies.
func AuthMiddleware(signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingAuthToken, lang),
			)
			return
		}

		ownerID, err := verifyToken(token, signingKey, issuer)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidAuthToken, lang),
			)
			return
		}

		c.Set(ownerContextKey, ownerID)
		c.Next()
	}
}

func verifyToken(token, signingKey, issuer string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return []byte(signingKey), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errNoSubject
	}
	return claims.Subject, nil
}

// GetOwnerID returns the authenticated principal id set by AuthMiddleware.
func GetOwnerID(c *gin.Context) string {
	if value, exists := c.Get(ownerContextKey); exists {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// WithOwner is a test middleware that injects a fixed principal id without
// token verification.
func WithOwner(ownerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ownerContextKey, ownerID)
		c.Next()
	}
}
