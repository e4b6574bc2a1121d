package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskbases/riskbases/dao/model"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := newTokenManager("access-secret", "refresh-secret", 1, 168)

	msg := &JWTMessage{
		UserID:        7,
		WorkspaceID:   3,
		Username:      "piet",
		WorkspaceName: "bouwbedrijf",
		RoleWorkspace: model.RoleAdmin,
		RolePlatform:  model.RoleUser,
	}

	access, refresh, err := tm.CreateTokens(msg)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	got, err := tm.CheckToken(access)
	require.NoError(t, err)
	assert.Equal(t, *msg, got)

	got, err = tm.CheckRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, *msg, got)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	tm := newTokenManager("access-secret", "refresh-secret", 1, 168)

	access, refresh, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "x"})
	require.NoError(t, err)

	_, err = tm.CheckToken(refresh)
	assert.Error(t, err)
	_, err = tm.CheckRefreshToken(access)
	assert.Error(t, err)
}

func TestCheckTokenRejectsGarbage(t *testing.T) {
	tm := newTokenManager("access-secret", "refresh-secret", 1, 168)
	_, err := tm.CheckToken("not-a-token")
	assert.Error(t, err)
}
