// Package middleware contains the HTTP middleware of the delivery layer.
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"piquant/internal/delivery/http/response"
	"piquant/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextUserIDKey is the echo context key holding the authenticated user ID.
const ContextUserIDKey = "userID"

// Request bodies are only inspected up to this size when checking the
// declared identity; vote and CRUD payloads are far smaller.
const maxInspectedBodyBytes = 1 << 20

// uniform 401 payload; rejection paths are deliberately indistinguishable.
const unauthorizedMessage = "Request is not authenticated"

// AuthMiddleware is the authentication gateway. It verifies the bearer
// token of every protected request and enforces that any identity declared
// in the request body matches the token's subject.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and attaches the resolved user ID
// to the request context. Requests are rejected before any business logic
// runs, so a failed authentication has no side effects.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", unauthorizedMessage)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", unauthorizedMessage)
		}

		userID, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", unauthorizedMessage)
		}

		// A valid token holder must not act on behalf of another identity
		// by declaring a different userId in the body.
		matches, err := m.bodyIdentityMatches(c, userID)
		if err != nil || !matches {
			return response.Unauthorized(c, "UNAUTHENTICATED", unauthorizedMessage)
		}

		c.Set(ContextUserIDKey, userID)

		return next(c)
	}
}

// bodyIdentityMatches inspects JSON request bodies for a declared "userId"
// field and compares it to the token subject. The body is restored so
// downstream binding still sees it. Bodies without the field, non-JSON
// bodies and empty bodies all pass.
func (m *AuthMiddleware) bodyIdentityMatches(c echo.Context, userID uuid.UUID) (bool, error) {
	req := c.Request()
	if req.Body == nil {
		return true, nil
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true, nil
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxInspectedBodyBytes))
	if err != nil {
		return false, err
	}
	// Stitch the inspected prefix back onto whatever of the stream remains
	// so oversized bodies reach the handler intact.
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), req.Body))

	if len(bytes.TrimSpace(body)) == 0 {
		return true, nil
	}

	var declared struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(body, &declared); err != nil {
		// Malformed JSON is the handler's problem, not the gateway's.
		return true, nil
	}
	if declared.UserID == "" {
		return true, nil
	}

	return declared.UserID == userID.String(), nil
}
