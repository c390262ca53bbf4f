package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdelivery/internal/pkg/auth"
)

func TestNewTokens_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokens("", nil)
	assert.Error(t, err)
}

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens, err := auth.NewTokens("test-secret", nil)
	require.NoError(t, err)

	id := uuid.New()
	signed, err := tokens.Issue(id, "driver")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	principal, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, id, principal.ID)
	assert.Equal(t, "driver", principal.Role)
}

func TestTokens_RejectsWrongSecret(t *testing.T) {
	issuer, err := auth.NewTokens("secret-a", nil)
	require.NoError(t, err)
	verifier, err := auth.NewTokens("secret-b", nil)
	require.NoError(t, err)

	signed, err := issuer.Issue(uuid.New(), "enterprise")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_RejectsExpired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * auth.TokenTTL)
	issuer, err := auth.NewTokens("test-secret", func() time.Time { return issuedAt })
	require.NoError(t, err)

	signed, err := issuer.Issue(uuid.New(), "driver")
	require.NoError(t, err)

	verifier, err := auth.NewTokens("test-secret", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_RejectsGarbage(t *testing.T) {
	tokens, err := auth.NewTokens("test-secret", nil)
	require.NoError(t, err)

	_, err = tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
