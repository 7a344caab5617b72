package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"society-intake-api/config"
	"society-intake-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginRejectionsAreIndistinguishable(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "admin@statebd.org", false)

	wrongPassword := performJSON(router, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "admin@statebd.org",
		"password": "not-the-password",
	}, "")
	unknownEmail := performJSON(router, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "nobody@statebd.org",
		"password": "secret123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Same message either way so account existence does not leak.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAdminLoginInactiveAccount(t *testing.T) {
	router := setupTest(t)
	admin := createAdmin(t, "admin@statebd.org", false)
	require.NoError(t, config.DB.Model(&admin).Update("is_active", false).Error)

	w := performJSON(router, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "admin@statebd.org",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginStampsLastLogin(t *testing.T) {
	router := setupTest(t)
	admin := createAdmin(t, "admin@statebd.org", false)
	require.Nil(t, admin.LastLogin)

	loginAdmin(t, router, "admin@statebd.org")

	var reloaded models.Admin
	require.NoError(t, config.DB.First(&reloaded, admin.ID).Error)
	assert.NotNil(t, reloaded.LastLogin)
}

func TestAdminProfileRequiresToken(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "admin@statebd.org", false)

	w := performGET(router, "/api/admin/profile", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginAdmin(t, router, "admin@statebd.org")
	w = performGET(router, "/api/admin/profile", token)
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var profile models.Admin
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "admin@statebd.org", profile.Email)
}

func TestAdminUserManagementRequiresSuperAdmin(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "regular@statebd.org", false)
	createAdmin(t, "super@statebd.org", true)

	// No token at all
	w := performGET(router, "/api/admin/users", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated but not super admin
	regularToken := loginAdmin(t, router, "regular@statebd.org")
	w = performGET(router, "/api/admin/users", regularToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	superToken := loginAdmin(t, router, "super@statebd.org")
	w = performGET(router, "/api/admin/users", superToken)
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var admins []models.Admin
	require.NoError(t, json.Unmarshal(env.Data, &admins))
	assert.Len(t, admins, 2)
}

func TestCreateAdminUserDuplicateEmail(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "super@statebd.org", true)
	token := loginAdmin(t, router, "super@statebd.org")

	payload := gin.H{
		"email":     "new@statebd.org",
		"password":  "newsecret",
		"full_name": "New Admin",
	}

	w := performJSON(router, http.MethodPost, "/api/admin/users", payload, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(router, http.MethodPost, "/api/admin/users", payload, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeEnvelope(t, w).Message, "already exists")
}

func TestAdminPasswordPolicyEnforced(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "super@statebd.org", true)
	token := loginAdmin(t, router, "super@statebd.org")

	w := performJSON(router, http.MethodPost, "/api/admin/users", gin.H{
		"email":     "weak@statebd.org",
		"password":  "short",
		"full_name": "Weak Admin",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 8 characters", decodeEnvelope(t, w).Message)

	var count int64
	require.NoError(t, config.DB.Model(&models.Admin{}).Where("email = ?", "weak@statebd.org").Count(&count).Error)
	assert.Zero(t, count)

	w = performJSON(router, http.MethodPost, "/api/admin/change-password", gin.H{
		"current_password": "secret123",
		"new_password":     "short",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at least 8 characters", decodeEnvelope(t, w).Message)

	// The original password still works.
	w = performJSON(router, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "super@statebd.org",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateAdminUserPatchesFlags(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "super@statebd.org", true)
	target := createAdmin(t, "target@statebd.org", false)
	token := loginAdmin(t, router, "super@statebd.org")

	w := performJSON(router, http.MethodPut, "/api/admin/users/"+itoa(target.ID), gin.H{
		"is_active": false,
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Admin
	require.NoError(t, config.DB.First(&reloaded, target.ID).Error)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, "Test Admin", reloaded.FullName)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "admin@statebd.org", false)
	token := loginAdmin(t, router, "admin@statebd.org")

	w := performJSON(router, http.MethodPost, "/api/admin/change-password", gin.H{
		"current_password": "wrong-password",
		"new_password":     "brand-new-secret",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(router, http.MethodPost, "/api/admin/change-password", gin.H{
		"current_password": "secret123",
		"new_password":     "brand-new-secret",
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// The new password works on the next login.
	w = performJSON(router, http.MethodPost, "/api/admin/login", gin.H{
		"email":    "admin@statebd.org",
		"password": "brand-new-secret",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckAuth(t *testing.T) {
	router := setupTest(t)
	createAdmin(t, "admin@statebd.org", false)

	w := performGET(router, "/api/admin/check-auth", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginAdmin(t, router, "admin@statebd.org")
	w = performGET(router, "/api/admin/check-auth", token)
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var data struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Authenticated)
}
