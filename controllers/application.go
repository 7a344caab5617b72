package controllers

import (
	"net/http"
	"strconv"
	"time"

	"society-intake-api/config"
	"society-intake-api/models"
	"society-intake-api/services"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// requiredSubmissionFields are the form fields every submission must carry,
// checked in order so the first missing one is reported.
var requiredSubmissionFields = []string{
	"full_name", "father_name", "mother_name", "nid_number",
	"date_of_birth", "occupation", "village", "upazila",
	"district", "division", "family_members_count",
	"monthly_income", "main_earner_occupation", "email",
	"mobile_number", "category_id",
}

// SubmitApplication accepts a multipart submission, persists it and sends
// the confirmation email with the generated letter attached. The email and
// letter are best effort: their failure never rolls back the submission.
func SubmitApplication(c *gin.Context) {
	fields := make(map[string]string, len(requiredSubmissionFields))
	for _, field := range requiredSubmissionFields {
		value := utils.SanitizeInput(c.PostForm(field))
		if value == "" {
			utils.Fail(c, http.StatusBadRequest, "Field "+field+" is required")
			return
		}
		fields[field] = value
	}

	if !utils.ValidateEmail(fields["email"]) {
		utils.Fail(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	dateOfBirth, err := time.Parse("2006-01-02", fields["date_of_birth"])
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid date_of_birth, expected YYYY-MM-DD")
		return
	}

	familyMembersCount, err := strconv.Atoi(fields["family_members_count"])
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid family_members_count")
		return
	}

	monthlyIncome, err := strconv.ParseFloat(fields["monthly_income"], 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid monthly_income")
		return
	}

	categoryID, err := strconv.Atoi(fields["category_id"])
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid category selected")
		return
	}

	var category models.Category
	if err := config.DB.First(&category, categoryID).Error; err != nil || !category.IsActive {
		utils.Fail(c, http.StatusBadRequest, "Invalid category selected")
		return
	}

	photoPath := saveFormFile(c, "photo", utils.FolderPhotos)
	signaturePath := saveFormFile(c, "signature", utils.FolderSignatures)
	nidImagePath := saveFormFile(c, "nid_image", utils.FolderNIDImages)

	var otherDocuments []models.OtherDocument
	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["other_documents"] {
			path, err := utils.SaveUploadedFile(c, file, utils.FolderDocuments)
			if err != nil {
				utils.Fail(c, http.StatusInternalServerError, "Error submitting application: "+err.Error())
				return
			}
			if path != "" {
				otherDocuments = append(otherDocuments, models.OtherDocument{
					Filename: file.Filename,
					Path:     path,
				})
			}
		}
	}

	application := models.Application{
		FullName:             fields["full_name"],
		FatherName:           fields["father_name"],
		MotherName:           fields["mother_name"],
		NIDNumber:            fields["nid_number"],
		DateOfBirth:          dateOfBirth,
		Occupation:           fields["occupation"],
		Village:              fields["village"],
		Upazila:              fields["upazila"],
		District:             fields["district"],
		Division:             fields["division"],
		FamilyMembersCount:   familyMembersCount,
		MonthlyIncome:        monthlyIncome,
		MainEarnerOccupation: fields["main_earner_occupation"],
		Email:                fields["email"],
		MobileNumber:         fields["mobile_number"],
		PhotoPath:            photoPath,
		SignaturePath:        signaturePath,
		NIDImagePath:         nidImagePath,
		OtherDocuments:       datatypes.NewJSONSlice(otherDocuments),
		CategoryID:           categoryID,
	}

	if err := config.DB.Create(&application).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error submitting application: "+err.Error())
		return
	}

	application.Category = category

	sendConfirmation(&application)

	utils.Success(c, http.StatusCreated, "Application submitted successfully", gin.H{
		"reference_number": application.ReferenceNumber,
		"application_id":   application.ID,
	})
}

// GetApplicationByReference fetches a single application by its reference
// number. Public: the reference number is the applicant's key.
func GetApplicationByReference(c *gin.Context) {
	var application models.Application
	if err := config.DB.Preload("Category").
		Where("reference_number = ?", c.Param("id")).
		First(&application).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Application not found")
		return
	}

	application.CategoryName = application.Category.Name
	utils.Success(c, http.StatusOK, "", application)
}

// TrackApplication looks up applications by reference number or NID
// number. The NID lookup intentionally returns every matching record.
func TrackApplication(c *gin.Context) {
	type TrackRequest struct {
		ReferenceNumber string `json:"reference_number"`
		NIDNumber       string `json:"nid_number"`
	}

	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.ReferenceNumber == "" && req.NIDNumber == "") {
		utils.Fail(c, http.StatusBadRequest, "Either reference number or NID number is required")
		return
	}

	query := config.DB.Preload("Category")
	if req.ReferenceNumber != "" {
		query = query.Where("reference_number = ?", req.ReferenceNumber)
	} else {
		query = query.Where("nid_number = ?", req.NIDNumber)
	}

	var applications []models.Application
	if err := query.Find(&applications).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error tracking application: "+err.Error())
		return
	}

	if len(applications) == 0 {
		utils.Fail(c, http.StatusNotFound, "No applications found")
		return
	}

	for i := range applications {
		applications[i].CategoryName = applications[i].Category.Name
	}

	utils.Success(c, http.StatusOK, "", applications)
}

// GetApplications lists applications with filters and pagination, newest
// first. Admin only.
func GetApplications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if perPage < 1 {
		perPage = 10
	}

	query := config.DB.Model(&models.Application{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if district := c.Query("district"); district != "" {
		query = query.Where("district = ?", district)
	}
	if division := c.Query("division"); division != "" {
		query = query.Where("division = ?", division)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching applications: "+err.Error())
		return
	}

	var applications []models.Application
	if err := query.Preload("Category").
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&applications).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching applications: "+err.Error())
		return
	}

	for i := range applications {
		applications[i].CategoryName = applications[i].Category.Name
	}

	utils.SuccessPage(c, http.StatusOK, applications, utils.NewPagination(page, perPage, total))
}

// UpdateApplicationStatus transitions an application to a new status.
// Only an actual value change triggers the applicant notification. Admin
// only.
func UpdateApplicationStatus(c *gin.Context) {
	var application models.Application
	if err := config.DB.Preload("Category").Where("id = ?", c.Param("id")).First(&application).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Application not found")
		return
	}

	type StatusUpdateRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidStatus(req.Status) {
		utils.Fail(c, http.StatusBadRequest, "Invalid status. Must be one of: Pending, Approved, Rejected, In Progress")
		return
	}

	oldStatus := application.Status
	if oldStatus != req.Status {
		application.Status = req.Status
		if err := config.DB.Omit("Category").Save(&application).Error; err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Error updating application status: "+err.Error())
			return
		}

		if err := services.NewEmailService().SendStatusUpdate(&application, oldStatus, req.Status); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"reference":  application.ReferenceNumber,
				"old_status": oldStatus,
				"new_status": req.Status,
			}).Error("status update email failed")
		}
	}

	application.CategoryName = application.Category.Name
	utils.Success(c, http.StatusOK, "Application status updated successfully", application)
}

// GetApplicationStats aggregates totals, per-status/district/category
// counts and a daily series over the trailing 30 days. Admin only.
func GetApplicationStats(c *gin.Context) {
	var total int64
	if err := config.DB.Model(&models.Application{}).Count(&total).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching statistics: "+err.Error())
		return
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var statusRows []bucket
	if err := config.DB.Model(&models.Application{}).
		Select("status as `key`, count(*) as count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching statistics: "+err.Error())
		return
	}

	var districtRows []bucket
	if err := config.DB.Model(&models.Application{}).
		Select("district as `key`, count(*) as count").
		Group("district").
		Scan(&districtRows).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching statistics: "+err.Error())
		return
	}

	var categoryRows []bucket
	if err := config.DB.Model(&models.Application{}).
		Select("categories.name as `key`, count(*) as count").
		Joins("JOIN categories ON categories.id = applications.category_id").
		Group("categories.name").
		Scan(&categoryRows).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching statistics: "+err.Error())
		return
	}

	// The daily series is bucketed in Go so the query stays portable
	// across the mysql and sqlite dialects.
	cutoff := time.Now().AddDate(0, 0, -30)
	var recent []models.Application
	if err := config.DB.Select("created_at").
		Where("created_at >= ?", cutoff).
		Find(&recent).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error fetching statistics: "+err.Error())
		return
	}

	daily := make(map[string]int64)
	for _, app := range recent {
		daily[app.CreatedAt.Format("2006-01-02")]++
	}

	toMap := func(rows []bucket) map[string]int64 {
		m := make(map[string]int64, len(rows))
		for _, row := range rows {
			m[row.Key] = row.Count
		}
		return m
	}

	utils.Success(c, http.StatusOK, "", gin.H{
		"total_applications":    total,
		"status_distribution":   toMap(statusRows),
		"district_distribution": toMap(districtRows),
		"category_distribution": toMap(categoryRows),
		"daily_applications":    daily,
	})
}

// saveFormFile stores a single optional upload; absence is not an error.
func saveFormFile(c *gin.Context, field, folder string) string {
	file, err := c.FormFile(field)
	if err != nil {
		return ""
	}
	path, err := utils.SaveUploadedFile(c, file, folder)
	if err != nil {
		logrus.WithError(err).WithField("field", field).Error("failed to save uploaded file")
		return ""
	}
	return path
}

// sendConfirmation renders the letter and emails it. Failures are logged,
// never surfaced: the submission already committed.
func sendConfirmation(application *models.Application) {
	pdfBytes, err := services.NewPDFGenerator(utils.UploadRoot()).GenerateBytes(application)
	if err != nil {
		logrus.WithError(err).WithField("reference", application.ReferenceNumber).
			Error("confirmation letter rendering failed")
		pdfBytes = nil
	}

	if err := services.NewEmailService().SendApplicationConfirmation(application, pdfBytes); err != nil {
		logrus.WithError(err).WithField("reference", application.ReferenceNumber).
			Error("confirmation email failed")
	}
}
