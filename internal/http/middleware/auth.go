package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/advisorly/advisorly-backend/internal/http/response"
	"github.com/advisorly/advisorly-backend/internal/platform/ctxutil"
	"github.com/advisorly/advisorly-backend/internal/platform/logger"
)

type AdvisorClaims struct {
	PracticeID string `json:"practiceId"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	log       *logger.Logger
	jwtSecret []byte
}

func NewAuthMiddleware(log *logger.Logger, jwtSecret string) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, jwtSecret: []byte(jwtSecret)}
}

// RequireAuth validates the bearer token and attaches the advisor and their
// practice to the request context. Subject carries the advisor id.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorEnvelope{Error: "missing or invalid token"})
			return
		}

		claims := &AdvisorClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return am.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			am.log.Debug("token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorEnvelope{Error: "missing or invalid token"})
			return
		}

		advisorID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorEnvelope{Error: "forbidden"})
			return
		}
		practiceID, err := uuid.Parse(claims.PracticeID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorEnvelope{Error: "forbidden"})
			return
		}

		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			AdvisorID:  advisorID,
			PracticeID: practiceID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
