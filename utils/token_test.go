package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/kikelara/kikelara-backend-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-secret")

	token, err := utils.GenerateAdminToken(time.Now())
	require.NoError(t, err)

	claims, err := utils.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestAdminTokenTampered(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-secret")

	token, err := utils.GenerateAdminToken(time.Now())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip the payload; the signature no longer matches.
	tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx." + parts[2]
	_, err = utils.ValidateAdminToken(tampered)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	// Flip the signature.
	tampered = parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-2] + "xx"
	_, err = utils.ValidateAdminToken(tampered)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	_, err = utils.ValidateAdminToken("not-a-token")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestAdminTokenExpired(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-secret")

	token, err := utils.GenerateAdminToken(time.Now().Add(-utils.AdminTokenTTL - time.Minute))
	require.NoError(t, err)

	_, err = utils.ValidateAdminToken(token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestAdminTokenWrongSecretOrRole(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "test-secret")

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.AdminClaims{
		Role: "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	signed, err := other.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	_, err = utils.ValidateAdminToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	user := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.AdminClaims{
		Role: "customer",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	signed, err = user.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = utils.ValidateAdminToken(signed)
	assert.ErrorIs(t, err, utils.ErrInvalidToken, "non-admin role is rejected")
}

func TestNewIDMonotonic(t *testing.T) {
	now := time.Now()
	seen := map[int64]bool{}
	prev := int64(0)
	for i := 0; i < 1000; i++ {
		id := utils.NewID(now)
		assert.Greater(t, id, prev)
		assert.False(t, seen[id])
		seen[id] = true
		prev = id
	}
}

func TestNewOrderReference(t *testing.T) {
	ref := utils.NewOrderReference(time.UnixMilli(1706349600000))
	assert.Equal(t, "KIKELARA_1706349600000", ref)
}
