package controllers

import (
	"net/http"

	"society-intake-api/config"
	"society-intake-api/models"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
)

// GetCategories lists active categories. Public.
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Where("is_active = ?", true).Find(&categories).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching categories: "+err.Error())
		return
	}

	utils.Success(c, http.StatusOK, "", categories)
}

// GetCategory returns a category by id, soft-deleted ones included. Public.
func GetCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.Where("id = ?", c.Param("id")).First(&category).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	utils.Success(c, http.StatusOK, "", category)
}

// CreateCategory creates a new category. Admin only.
func CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsActive    *bool  `json:"is_active"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	var existing models.Category
	if err := config.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.Fail(c, http.StatusBadRequest, "Category with this name already exists")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error creating category: "+err.Error())
		return
	}

	utils.Success(c, http.StatusCreated, "Category created successfully", category)
}

// UpdateCategory patches a category. Admin only.
func UpdateCategory(c *gin.Context) {
	type UpdateCategoryRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}

	var category models.Category
	if err := config.DB.Where("id = ?", c.Param("id")).First(&category).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&category).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error updating category: "+err.Error())
		return
	}

	utils.Success(c, http.StatusOK, "Category updated successfully", category)
}

// DeleteCategory soft-deletes a category. The record stays and existing
// applications keep their category reference. Admin only.
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.Where("id = ?", c.Param("id")).First(&category).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	category.IsActive = false
	if err := config.DB.Save(&category).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error deleting category: "+err.Error())
		return
	}

	utils.Success(c, http.StatusOK, "Category deleted successfully", nil)
}
