// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"medcare/config"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/service"
	"medcare/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens are signed with separate secrets so one kind can
// never be replayed as the other.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	svc := &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     defaultAccessTTL,
		refreshTTL:    defaultRefreshTTL,
		now:           time.Now,
	}
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return svc, nil
}

// IssueAccess creates a short-lived access token for the subject.
func (s *jwtService) IssueAccess(subjectID uuid.UUID, role entity.Role) (string, error) {
	return s.issueToken(subjectID, role, service.TokenTypeAccess, s.accessTTL, s.accessSecret)
}

// IssueRefresh creates a long-lived refresh token for the subject.
func (s *jwtService) IssueRefresh(subjectID uuid.UUID, role entity.Role) (string, error) {
	return s.issueToken(subjectID, role, service.TokenTypeRefresh, s.refreshTTL, s.refreshSecret)
}

// Verify checks the signature, structure and expiry of an access token.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	return s.parseToken(tokenString, service.TokenTypeAccess, s.accessSecret, domainerrors.ErrExpiredCredential)
}

// Refresh verifies a refresh token and mints a new access token bound to the
// same subject and role. Expiry surfaces as RefreshExpired so the client
// knows to re-authenticate instead of retrying.
func (s *jwtService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, service.TokenTypeRefresh, s.refreshSecret, domainerrors.ErrRefreshExpired)
	if err != nil {
		return "", err
	}

	subjectID, err := claims.SubjectID()
	if err != nil {
		return "", domainerrors.ErrInvalidCredential.WrapMessage("refresh token subject is not a valid id")
	}

	return s.IssueAccess(subjectID, claims.Role)
}

// RequireRole asserts that the claims carry the expected role.
func (s *jwtService) RequireRole(claims *service.Claims, expected entity.Role) error {
	if claims == nil || claims.Role != expected {
		return errors.WithStack(domainerrors.ErrRoleMismatch)
	}

	return nil
}

// GetAccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) GetAccessTokenDuration() time.Duration {
	return s.accessTTL
}

// GetRefreshTokenDuration returns the configured refresh token lifetime.
func (s *jwtService) GetRefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// issueToken is a private helper to build and sign the fixed claim set.
// All instants are UTC; expiry is always embedded.
func (s *jwtService) issueToken(subjectID uuid.UUID, role entity.Role, tokenType service.TokenType, ttl time.Duration, secret string) (string, error) {
	if !role.IsValid() {
		return "", errors.Errorf("cannot issue token for unknown role %q", role)
	}

	now := s.now().UTC()
	claims := &service.Claims{
		Role:    role,
		Type:    tokenType,
		Version: service.ClaimsVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// parseToken verifies signature and expiry, then validates the claim shape.
// expiredErr distinguishes access expiry from refresh expiry at the call site.
func (s *jwtService) parseToken(tokenString string, wantType service.TokenType, secret string, expiredErr *domainerrors.BaseError) (*service.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// A token with no expiry is treated as expired, not as valid forever.
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }),
	)

	claims := &service.Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return nil, expiredErr.WrapMessage("token expiry check failed")
	default:
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("token is malformed or its signature does not verify")
	}

	if err := validateClaimShape(claims, wantType); err != nil {
		return nil, err
	}

	return claims, nil
}

// validateClaimShape rejects payloads that deviate from the fixed versioned
// claim structure, instead of permissively reading whatever fields exist.
func validateClaimShape(claims *service.Claims, wantType service.TokenType) error {
	switch {
	case claims.Version != service.ClaimsVersion:
		return domainerrors.ErrInvalidCredential.WrapMessage("unsupported claims version")
	case claims.Type != wantType:
		return domainerrors.ErrInvalidCredential.WrapMessage("unexpected token type")
	case !claims.Role.IsValid():
		return domainerrors.ErrInvalidCredential.WrapMessage("unknown role claim")
	case claims.Subject == "":
		return domainerrors.ErrInvalidCredential.WrapMessage("missing subject claim")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return domainerrors.ErrInvalidCredential.WrapMessage("subject claim is not a valid id")
	}

	return nil
}
