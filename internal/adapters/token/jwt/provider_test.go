package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekit/catalog/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    uuid.New(),
		Name:  "Jordan Doe",
		Email: "jordan@example.com",
	}
}

func TestIssueAndVerify(t *testing.T) {
	provider := NewProvider([]byte("secret"), time.Hour)
	user := testUser()

	token, err := provider.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := provider.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	provider := NewProvider([]byte("secret"), -time.Minute)

	token, err := provider.Issue(testUser())
	require.NoError(t, err)

	_, err = provider.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewProvider([]byte("secret"), time.Hour)
	verifier := NewProvider([]byte("other-secret"), time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	provider := NewProvider([]byte("secret"), time.Hour)

	_, err := provider.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTTL(t *testing.T) {
	provider := NewProvider([]byte("secret"), 45*time.Minute)
	assert.Equal(t, 45*time.Minute, provider.TTL())
}
