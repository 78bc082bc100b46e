package handlers

import (
	"io"
	"testing"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger() *logger.Logger {
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return log
}

func newZapNop() *zap.Logger {
	return zap.NewNop()
}

func newAuthMiddleware() *middleware.JWTMiddleware {
	return middleware.NewJWTMiddleware(newTestLogger(), &middleware.DefaultTokenValidator{
		Secret: []byte(testJWTSecret),
	})
}

func signTestToken(t *testing.T, subject, name, scope string) string {
	t.Helper()
	claims := middleware.TokenClaims{
		UserName: name,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}
