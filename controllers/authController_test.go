package controllers

import (
	"testing"

	"bakehub/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenResponseIncludesBothTokens(t *testing.T) {
	name := "Alice"
	user := models.User{
		User_id: "user-1",
		Role:    models.RoleCustomer,
		Name:    &name,
	}

	response := tokenResponse(user, "alice@example.com", "access-abc", "refresh-xyz")

	assert.Equal(t, "access-abc", response["access_token"])
	assert.Equal(t, "refresh-xyz", response["refresh_token"])

	userBody, ok := response["user"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, "user-1", userBody["user_id"])
	assert.Equal(t, "alice@example.com", userBody["email"])
	assert.Equal(t, models.RoleCustomer, userBody["role"])
}
