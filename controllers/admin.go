package controllers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"society-intake-api/config"
	"society-intake-api/middleware"
	"society-intake-api/models"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an admin and issues a signed token. The failure
// message is identical for unknown email and wrong password so account
// existence does not leak.
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ? AND is_active = ?", req.Email, true).First(&admin).Error; err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !admin.CheckPassword(req.Password) {
		utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := config.DB.Save(&admin).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Login error: "+err.Error())
		return
	}

	token, err := generateAdminToken(admin)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", gin.H{
		"admin": admin,
		"token": token,
	})
}

// AdminLogout revokes the presented token by denylisting its id for the
// remaining token lifetime.
func AdminLogout(c *gin.Context) {
	claims, exists := c.Get("tokenClaims")
	if exists && config.Redis != nil {
		tokenClaims := claims.(*middleware.Claims)
		if tokenClaims.ID != "" && tokenClaims.ExpiresAt != nil {
			ttl := time.Until(tokenClaims.ExpiresAt.Time)
			if ttl > 0 {
				_ = config.Redis.Set(c.Request.Context(), middleware.DenylistKey(tokenClaims.ID), "1", ttl).Err()
			}
		}
	}

	utils.Success(c, http.StatusOK, "Logout successful", nil)
}

// GetAdminProfile returns the authenticated admin.
func GetAdminProfile(c *gin.Context) {
	adminID, _ := c.Get("adminID")

	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Admin not found")
		return
	}

	utils.Success(c, http.StatusOK, "", admin)
}

// ChangeAdminPassword overwrites the password after re-verifying the
// current one.
func ChangeAdminPassword(c *gin.Context) {
	type PasswordChangeRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Current password and new password are required")
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		utils.Fail(c, http.StatusBadRequest, msg)
		return
	}

	adminID, _ := c.Get("adminID")

	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Admin not found")
		return
	}

	if !admin.CheckPassword(req.CurrentPassword) {
		utils.Fail(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	if err := admin.SetPassword(req.NewPassword); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error changing password: "+err.Error())
		return
	}

	if err := config.DB.Save(&admin).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error changing password: "+err.Error())
		return
	}

	utils.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// GetAdminUsers lists every admin account. Super admin only.
func GetAdminUsers(c *gin.Context) {
	var admins []models.Admin
	if err := config.DB.Find(&admins).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching admin users: "+err.Error())
		return
	}

	utils.Success(c, http.StatusOK, "", admins)
}

// CreateAdminUser creates a new admin account. Super admin only.
func CreateAdminUser(c *gin.Context) {
	type CreateAdminRequest struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required"`
		FullName     string `json:"full_name" binding:"required"`
		IsSuperAdmin bool   `json:"is_super_admin"`
	}

	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		utils.Fail(c, http.StatusBadRequest, msg)
		return
	}

	var existing models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Fail(c, http.StatusBadRequest, "Admin with this email already exists")
		return
	}

	admin := models.Admin{
		Email:        req.Email,
		FullName:     req.FullName,
		IsActive:     true,
		IsSuperAdmin: req.IsSuperAdmin,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error creating admin user: "+err.Error())
		return
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error creating admin user: "+err.Error())
		return
	}

	utils.Success(c, http.StatusCreated, "Admin user created successfully", admin)
}

// UpdateAdminUser patches an admin account. Super admin only.
func UpdateAdminUser(c *gin.Context) {
	type UpdateAdminRequest struct {
		FullName     *string `json:"full_name"`
		IsActive     *bool   `json:"is_active"`
		IsSuperAdmin *bool   `json:"is_super_admin"`
	}

	var admin models.Admin
	if err := config.DB.Where("id = ?", c.Param("id")).First(&admin).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Admin not found")
		return
	}

	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.FullName != nil {
		admin.FullName = *req.FullName
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}
	if req.IsSuperAdmin != nil {
		admin.IsSuperAdmin = *req.IsSuperAdmin
	}

	if err := config.DB.Save(&admin).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error updating admin user: "+err.Error())
		return
	}

	utils.Success(c, http.StatusOK, "Admin user updated successfully", admin)
}

// CheckAdminAuth reports the authentication state of the caller. The auth
// middleware already rejected missing, invalid and revoked tokens.
func CheckAdminAuth(c *gin.Context) {
	adminID, _ := c.Get("adminID")

	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Admin account not found or inactive")
		return
	}

	utils.Success(c, http.StatusOK, "", gin.H{
		"authenticated": true,
		"admin":         admin,
	})
}

// generateAdminToken creates a signed token carrying the admin identity.
func generateAdminToken(admin models.Admin) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}

	claims := middleware.Claims{
		AdminID:      admin.ID,
		Email:        admin.Email,
		IsSuperAdmin: admin.IsSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
