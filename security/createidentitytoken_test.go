package security

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	base64Secret := base64.StdEncoding.EncodeToString(secret)

	token, err := CreateIdentityToken(&Identity{
		UserID: 42,
		Name:   "Test Intern",
		Email:  "intern@test.local",
		Role:   "intern",
	}, base64Secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseIdentityToken(token, secret)
	require.NoError(t, err)

	// The user id and the registered jti claim are distinct fields; the
	// selector must resolve without qualifying the embedded struct.
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "intern@test.local", claims.Email)
	assert.Equal(t, "intern", claims.Role)
	assert.Equal(t, "internhq", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseIdentityTokenRejectsWrongSecret(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	token, err := CreateIdentityToken(&Identity{UserID: 1, Role: "admin"},
		base64.StdEncoding.EncodeToString(secret), time.Hour)
	require.NoError(t, err)

	_, err = ParseIdentityToken(token, []byte("another-secret-entirely-32bytes!"))
	assert.Error(t, err)
}

func TestCreateIdentityTokenBadSecret(t *testing.T) {
	_, err := CreateIdentityToken(&Identity{UserID: 1}, "not base64!!", time.Hour)
	assert.Error(t, err)
}
