package service

import (
	"time"

	"medcare/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes the two credential kinds the service issues.
type TokenType string

const (
	// TokenTypeAccess marks short-lived tokens accepted by request authorization.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh marks long-lived tokens accepted only by the refresh flow.
	TokenTypeRefresh TokenType = "refresh"
)

// ClaimsVersion is the claim schema version this service issues and accepts.
// Payloads carrying any other version are rejected as malformed.
const ClaimsVersion = 1

// Claims is the fixed, versioned claim set carried by every token.
// Verification rejects payloads that do not match this shape exactly;
// optional or unknown claim layouts are not tolerated.
type Claims struct {
	Role    entity.Role `json:"role"`
	Type    TokenType   `json:"typ"`
	Version int         `json:"ver"`
	jwt.RegisteredClaims
}

// SubjectID returns the subject claim parsed as the user's UUID.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and verifying the signed,
// time-limited credentials that carry identity and role. Tokens are stateless:
// validity is purely a function of signature and expiry, never of storage.
type TokenService interface {
	// IssueAccess creates a short-lived access token for the subject.
	IssueAccess(subjectID uuid.UUID, role entity.Role) (string, error)

	// IssueRefresh creates a long-lived refresh token for the subject,
	// used only to mint new access tokens.
	IssueRefresh(subjectID uuid.UUID, role entity.Role) (string, error)

	// Verify checks the signature, structure and expiry of an access token.
	// It is purely cryptographic and temporal; no storage is consulted.
	Verify(tokenString string) (*Claims, error)

	// Refresh verifies a refresh token and mints a new access token bound to
	// the same subject and role, never a different one.
	Refresh(refreshToken string) (string, error)

	// RequireRole asserts that the claims carry the expected role.
	RequireRole(claims *Claims, expected entity.Role) error

	// GetAccessTokenDuration returns the configured access token lifetime.
	GetAccessTokenDuration() time.Duration

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
