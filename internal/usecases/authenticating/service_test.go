package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

func newTestService(secret string, ttl time.Duration) *Service {
	return NewService(config.Auth{Secret: secret, TokenTTL: ttl}).(*Service)
}

func TestService_IssueAndValidateToken(t *testing.T) {
	service := newTestService("segredo", time.Hour)

	token, err := service.IssueToken("analista@empresa.com", " Admin ")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "analista@empresa.com", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
	assert.True(t, claims.IsAdmin())
}

func TestService_ValidateToken_Errors(t *testing.T) {
	service := newTestService("segredo", time.Hour)

	viewerToken, err := service.IssueToken("leitor", domain.RoleViewer)
	require.NoError(t, err)

	otherSecret, err := newTestService("outro", time.Hour).IssueToken("leitor", domain.RoleViewer)
	require.NoError(t, err)

	expired := newTestService("segredo", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.IssueToken("leitor", domain.RoleViewer)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &domain.Claims{Role: domain.RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		sentinel error
		code     string
	}{
		{name: "Token malformado", token: "abc.def", sentinel: ErrInvalidToken, code: apiErrors.ErrInvalidToken},
		{name: "Assinado com outro segredo", token: otherSecret, sentinel: ErrInvalidToken, code: apiErrors.ErrInvalidToken},
		{name: "Token expirado", token: expiredToken, sentinel: ErrExpiredToken, code: apiErrors.ErrExpiredToken},
		{name: "Algoritmo none", token: noneToken, sentinel: ErrInvalidToken, code: apiErrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.True(t, IsAuthorizationError(err))

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.code, authErr.Code)
		})
	}

	claims, err := service.ValidateToken(viewerToken)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())
}

func TestService_IssueToken_Errors(t *testing.T) {
	_, err := newTestService("segredo", time.Hour).IssueToken("x", "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = newTestService("", time.Hour).IssueToken("x", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = newTestService("", time.Hour).ValidateToken("x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
