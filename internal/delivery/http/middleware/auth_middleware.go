package middleware

import (
	"strings"

	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the request context. Verification failures propagate to the
// central error handler, keeping expired and malformed tokens distinct.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrInvalidCredential.WrapMessage("authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrInvalidCredential.WrapMessage("authorization header must carry a bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return err
		}

		userID, err := claims.SubjectID()
		if err != nil {
			return domainerrors.ErrInvalidCredential.WrapMessage("token subject is not a valid user id")
		}

		// Set user info on the context for handlers to use
		c.Set("userID", userID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("claims").(*service.Claims)
			if !ok {
				return domainerrors.ErrInvalidCredential.WrapMessage("claims missing from request context")
			}

			if err := m.tokenSvc.RequireRole(claims, requiredRole); err != nil {
				return err
			}

			return next(c)
		}
	}
}
