// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/contentai/internal/config"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt_private.pem")
	publicPath := filepath.Join(dir, "jwt_public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "contentai-test",
		Audience:          "contentai-clients",
	})
	require.NoError(t, err)

	return manager
}

func TestCreateAndVerifyAccessToken(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	token, err := manager.CreateAccessToken("user-123", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.False(t, claims.Admin)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyAccessTokenAdminClaim(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	token, err := manager.CreateAccessToken("admin-1", true)
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	manager := newTestJWTManager(t, -time.Minute)

	token, err := manager.CreateAccessToken("user-123", false)
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	_, err := manager.VerifyAccessToken(context.Background(), "not.a.token")
	assert.Error(t, err)
}

func TestVerifyAccessTokenWrongKey(t *testing.T) {
	issuing := newTestJWTManager(t, time.Hour)
	verifying := newTestJWTManager(t, time.Hour)

	token, err := issuing.CreateAccessToken("user-123", false)
	require.NoError(t, err)

	_, err = verifying.VerifyAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestJWKSHandler(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/.well-known/jwks.json", nil)

	manager.GetJWKSHandler()(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"keys"`)
	assert.Contains(t, rec.Body.String(), manager.GetKeyID())
	// The private scalar must never leak through the JWKS document.
	assert.NotContains(t, rec.Body.String(), `"d"`)
}
