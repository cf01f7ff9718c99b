package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

func newManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)
	return tm
}

func sampleClaim() domain.SessionClaim {
	shopID := "4f2f1b1e-0000-0000-0000-000000000001"
	return domain.SessionClaim{
		Subject: "user-1",
		Email:   "u@example.com",
		Role:    domain.RoleBuyer,
		HasShop: true,
		ShopID:  &shopID,
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager("")
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newManager(t)
	claim := sampleClaim()

	token, expiresAt, err := tm.Issue(claim, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	got, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claim.Subject, got.Subject)
	assert.Equal(t, claim.Email, got.Email)
	assert.Equal(t, claim.Role, got.Role)
	assert.Equal(t, claim.HasShop, got.HasShop)
	require.NotNil(t, got.ShopID)
	assert.Equal(t, *claim.ShopID, *got.ShopID)
}

func TestVerify_TamperedPayload(t *testing.T) {
	tm := newManager(t)

	token, _, err := tm.Issue(sampleClaim(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip a payload byte after signing.
	payload := []byte(parts[1])
	if payload[10] == 'A' {
		payload[10] = 'B'
	} else {
		payload[10] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = tm.Verify(tampered)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerify_Expired(t *testing.T) {
	tm := newManager(t)

	token, _, err := tm.Issue(sampleClaim(), -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	tm := newManager(t)
	other, err := auth.NewTokenManager("other-secret")
	require.NoError(t, err)

	token, _, err := tm.Issue(sampleClaim(), time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenSignature)
}

func TestVerify_Malformed(t *testing.T) {
	tm := newManager(t)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed, "token %q", token)
	}
}
