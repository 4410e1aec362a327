package auth

import (
	"errors"
	"testing"
	"time"

	"medcare/config"
	"medcare/internal/domain/entity"
	domainerrors "medcare/internal/domain/errors"
	"medcare/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	jwtSvc, ok := svc.(*jwtService)
	require.True(t, ok)

	return jwtSvc
}

func TestJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "only-access"

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	subjectID := uuid.New()

	token, err := svc.IssueAccess(subjectID, entity.RoleDoctor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, claims.Role)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	assert.Equal(t, service.ClaimsVersion, claims.Version)

	gotID, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, subjectID, gotID)
}

func TestJWTService_AccessTokenExpires(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return issuedAt }
	token, err := svc.IssueAccess(uuid.New(), entity.RolePatient)
	require.NoError(t, err)

	// Still valid one minute before the TTL elapses.
	svc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// Expired once the clock passes the embedded expiry.
	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrExpiredCredential)
}

func TestJWTService_TokenWithoutExpiryIsExpired(t *testing.T) {
	svc := newTestJWTService(t)

	// Hand-roll a structurally plausible token that omits the exp claim.
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"iat":  time.Now().UTC().Unix(),
		"role": entity.RolePatient.String(),
		"typ":  string(service.TokenTypeAccess),
		"ver":  service.ClaimsVersion,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(svc.accessSecret))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, domainerrors.ErrExpiredCredential)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newTestJWTService(t)

	claims, err := svc.Verify("clearly-not-a-jwt-token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestJWTService_TamperedTokenIsInvalid(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.IssueAccess(uuid.New(), entity.RolePatient)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestJWTService_RefreshTokenRejectedByVerify(t *testing.T) {
	svc := newTestJWTService(t)

	refreshToken, err := svc.IssueRefresh(uuid.New(), entity.RolePatient)
	require.NoError(t, err)

	// A refresh token is signed with a different secret, so it can never
	// pass as an access credential.
	_, err = svc.Verify(refreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestJWTService_UnknownClaimShapeRejected(t *testing.T) {
	svc := newTestJWTService(t)
	now := time.Now().UTC()

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			name: "wrong version",
			claims: jwt.MapClaims{
				"sub": uuid.New().String(), "exp": now.Add(time.Hour).Unix(),
				"role": "patient", "typ": "access", "ver": 99,
			},
		},
		{
			name: "unknown role",
			claims: jwt.MapClaims{
				"sub": uuid.New().String(), "exp": now.Add(time.Hour).Unix(),
				"role": "admin", "typ": "access", "ver": service.ClaimsVersion,
			},
		},
		{
			name: "missing subject",
			claims: jwt.MapClaims{
				"exp":  now.Add(time.Hour).Unix(),
				"role": "patient", "typ": "access", "ver": service.ClaimsVersion,
			},
		},
		{
			name: "subject not an id",
			claims: jwt.MapClaims{
				"sub": "not-a-uuid", "exp": now.Add(time.Hour).Unix(),
				"role": "patient", "typ": "access", "ver": service.ClaimsVersion,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims).SignedString([]byte(svc.accessSecret))
			require.NoError(t, err)

			_, err = svc.Verify(raw)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
		})
	}
}

func TestJWTService_RefreshPreservesRole(t *testing.T) {
	svc := newTestJWTService(t)
	subjectID := uuid.New()

	refreshToken, err := svc.IssueRefresh(subjectID, entity.RolePatient)
	require.NoError(t, err)

	accessToken, err := svc.Refresh(refreshToken)
	require.NoError(t, err)

	claims, err := svc.Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RolePatient, claims.Role)

	gotID, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, subjectID, gotID)
}

func TestJWTService_RefreshWithExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return issuedAt }
	refreshToken, err := svc.IssueRefresh(uuid.New(), entity.RoleDoctor)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(8 * 24 * time.Hour) }
	accessToken, err := svc.Refresh(refreshToken)
	assert.Empty(t, accessToken)

	// The refresh path surfaces its own expiry error so clients know to
	// re-authenticate instead of retrying the refresh.
	assert.ErrorIs(t, err, domainerrors.ErrRefreshExpired)
	assert.False(t, errors.Is(err, domainerrors.ErrExpiredCredential))
}

func TestJWTService_RefreshRejectsAccessToken(t *testing.T) {
	svc := newTestJWTService(t)

	accessToken, err := svc.IssueAccess(uuid.New(), entity.RolePatient)
	require.NoError(t, err)

	_, err = svc.Refresh(accessToken)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredential)
}

func TestJWTService_RequireRole(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.IssueAccess(uuid.New(), entity.RolePatient)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.NoError(t, svc.RequireRole(claims, entity.RolePatient))
	assert.ErrorIs(t, svc.RequireRole(claims, entity.RoleDoctor), domainerrors.ErrRoleMismatch)
	assert.ErrorIs(t, svc.RequireRole(nil, entity.RolePatient), domainerrors.ErrRoleMismatch)
}
