package main

import (
	"testing"

	"go-skystore/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetAccountRotatesTokenVersion(t *testing.T) {
	user := &model.User{Email: "admin@example.com", TokenVersion: "v-before"}
	require.NoError(t, user.SetPassword("oldsecret"))

	require.NoError(t, resetAccount(user, "newsecret"))

	assert.True(t, user.CheckPassword("newsecret"))
	assert.False(t, user.CheckPassword("oldsecret"))
	assert.NotEqual(t, "v-before", user.TokenVersion, "a password reset must invalidate outstanding sessions")
	assert.NotEmpty(t, user.TokenVersion)
}
