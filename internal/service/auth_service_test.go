package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mbernahr/simple-eri-test-server/internal/repository/credential"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T, staticTokens map[string]string) (IAuthService, ITokenService, credential.Store) {
	t.Helper()

	credStore, err := credential.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	tokenSvc := NewTokenService("fixture-secret", time.Hour)
	return NewAuthService(staticTokens, credStore, tokenSvc), tokenSvc, credStore
}

func TestAuthenticateStaticToken(t *testing.T) {
	authSvc, tokenSvc, _ := newAuthFixture(t, map[string]string{"eri-client": "pre-shared-secret"})

	res, err := authSvc.AuthenticateToken("pre-shared-secret")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.Token)

	subject, err := tokenSvc.Verify(*res.Token)
	require.NoError(t, err)
	assert.Equal(t, "eri-client", subject)
}

func TestAuthenticateStaticTokenRejections(t *testing.T) {
	authSvc, _, _ := newAuthFixture(t, map[string]string{"eri-client": "Secret"})

	tests := []struct {
		name  string
		token string
	}{
		{name: "unknown token", token: "other"},
		{name: "case sensitive", token: "secret"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := authSvc.AuthenticateToken(tt.token)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Nil(t, res.Token)
		})
	}
}

func TestAuthenticatePassword(t *testing.T) {
	authSvc, tokenSvc, credStore := newAuthFixture(t, nil)
	require.NoError(t, credStore.Upsert("alice", "correct horse"))

	res, err := authSvc.AuthenticatePassword("alice", "correct horse")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.Token)

	subject, err := tokenSvc.Verify(*res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthenticatePasswordRejections(t *testing.T) {
	authSvc, _, credStore := newAuthFixture(t, nil)
	require.NoError(t, credStore.Upsert("alice", "correct horse"))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "wrong"},
		{name: "unknown user", username: "bob", password: "correct horse"},
		{name: "empty password", username: "alice", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := authSvc.AuthenticatePassword(tt.username, tt.password)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Nil(t, res.Token)
		})
	}
}

// The failure message must be identical across variants and causes, so a
// caller cannot probe which sub-check rejected it.
func TestAuthFailureMessageIsUniform(t *testing.T) {
	authSvc, _, credStore := newAuthFixture(t, map[string]string{"eri-client": "pss"})
	require.NoError(t, credStore.Upsert("alice", "pw"))

	tokenRes, err := authSvc.AuthenticateToken("bad")
	require.NoError(t, err)
	wrongPw, err := authSvc.AuthenticatePassword("alice", "bad")
	require.NoError(t, err)
	unknownUser, err := authSvc.AuthenticatePassword("ghost", "bad")
	require.NoError(t, err)

	assert.Equal(t, tokenRes.Message, wrongPw.Message)
	assert.Equal(t, wrongPw.Message, unknownUser.Message)
}

func TestIsStaticToken(t *testing.T) {
	authSvc, _, _ := newAuthFixture(t, map[string]string{"eri-client": "pss-value"})

	assert.True(t, authSvc.IsStaticToken("pss-value"))
	assert.False(t, authSvc.IsStaticToken("something-else"))
	assert.False(t, authSvc.IsStaticToken(""))
}
