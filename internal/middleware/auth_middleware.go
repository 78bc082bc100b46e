package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/res"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	// ContextUserIDKey key under which the authenticated user id is stored.
	ContextUserIDKey ContextKey = "userID"
	// ContextUserNameKey key under which the authenticated user's display name is stored.
	ContextUserNameKey ContextKey = "userName"
	authHeaderPrefix              = "Bearer "

	// ScopeAdmin grants access to moderation routes.
	ScopeAdmin = "admin"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims claims carried by the session token.
type TokenClaims struct {
	UserEmail string `json:"email"`
	UserName  string `json:"name"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTMiddleware authenticates requests by bearer token.
type JWTMiddleware struct {
	log       *logger.Logger
	validator TokenValidator
}

// NewJWTMiddleware creates the auth middleware.
func NewJWTMiddleware(log *logger.Logger, validator TokenValidator) *JWTMiddleware {
	return &JWTMiddleware{
		log:       log,
		validator: validator,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's id in the gin context. When scopes are given, the token's scope
// must match one of them.
func (m *JWTMiddleware) RequireAuth(requiredScopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.handleAuthError(c, "Missing authorization token")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, authHeaderPrefix)
		claims, err := m.validator.Validate(tokenString)
		if err != nil {
			m.handleAuthError(c, fmt.Sprintf("Token validation failed: %v", err))
			return
		}

		if len(requiredScopes) > 0 && !m.hasRequiredScope(claims.Scope, requiredScopes) {
			m.handleAuthError(c, "Insufficient token permissions")
			return
		}

		userID := claims.Subject
		if userID == "" {
			m.handleAuthError(c, "User ID (sub) missing in token")
			return
		}

		c.Set(string(ContextUserIDKey), userID)
		c.Set(string(ContextUserNameKey), claims.UserName)
		m.log.Debug("User %s authenticated", userID)
		c.Next()
	}
}

func (m *JWTMiddleware) hasRequiredScope(tokenScope string, requiredScopes []string) bool {
	for _, scope := range requiredScopes {
		if tokenScope == scope {
			return true
		}
	}
	return false
}

func (m *JWTMiddleware) handleAuthError(c *gin.Context, message string) {
	m.log.Warn("Authentication failed on %s: %s", c.Request.URL.Path, message)
	res.JsonResponse(c.Writer, res.ErrorResponse{
		Error: message,
	}, http.StatusUnauthorized)
	c.Abort()
}

// DefaultTokenValidator validates HMAC-signed session tokens.
type DefaultTokenValidator struct {
	Secret []byte
}

// Validate parses and verifies a token string.
func (v *DefaultTokenValidator) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, errors.New("malformed token")
		} else if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, errors.New("invalid token signature")
		} else if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.New("token expired")
		} else {
			return nil, fmt.Errorf("invalid token: %w", err)
		}
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token claims")
}
