package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clubsphere/clubsphere-api/internal/pkg/jwthelper"
)

// ContextKeyUserID is the gin context key the authenticator stores the
// caller's user ID under.
const ContextKeyUserID = "userID"

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT validates the Authorization bearer token and injects the
// authenticated user ID into the request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})

			return
		}

		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer {token}"})

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, fields[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})

			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}
