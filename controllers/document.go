package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"society-intake-api/config"
	"society-intake-api/models"
	"society-intake-api/services"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
)

func findApplicationByID(id string) (*models.Application, error) {
	var application models.Application
	if err := config.DB.Preload("Category").Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func findApplicationByReference(reference string) (*models.Application, error) {
	var application models.Application
	if err := config.DB.Preload("Category").
		Where("reference_number = ?", reference).
		First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// DownloadApplicationPDF renders the application letter and streams it as
// a download. Looks up by numeric id.
func DownloadApplicationPDF(c *gin.Context) {
	application, err := findApplicationByID(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Application not found")
		return
	}
	streamApplicationPDF(c, application)
}

// DownloadApplicationPDFByReference is the reference-number variant of
// DownloadApplicationPDF.
func DownloadApplicationPDFByReference(c *gin.Context) {
	application, err := findApplicationByReference(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Application not found")
		return
	}
	streamApplicationPDF(c, application)
}

func streamApplicationPDF(c *gin.Context, application *models.Application) {
	generator := services.NewPDFGenerator(utils.UploadRoot())

	filename := fmt.Sprintf("Application_%s_%s.pdf",
		application.ReferenceNumber, time.Now().Format("20060102_150405"))
	outputPath := filepath.Join(utils.UploadRoot(), utils.FolderPDFs, filename)

	if err := generator.GenerateFile(application, outputPath); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error generating PDF")
		return
	}

	c.FileAttachment(outputPath, fmt.Sprintf("Application_%s.pdf", application.ReferenceNumber))
}

// SendApplicationEmail re-sends the confirmation email with the letter
// attached. Looks up by numeric id.
func SendApplicationEmail(c *gin.Context) {
	application, err := findApplicationByID(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Application not found")
		return
	}
	emailApplicationPDF(c, application)
}

// SendApplicationEmailByReference is the reference-number variant of
// SendApplicationEmail.
func SendApplicationEmailByReference(c *gin.Context) {
	application, err := findApplicationByReference(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Application not found")
		return
	}
	emailApplicationPDF(c, application)
}

func emailApplicationPDF(c *gin.Context, application *models.Application) {
	pdfBytes, err := services.NewPDFGenerator(utils.UploadRoot()).GenerateBytes(application)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error generating PDF for email")
		return
	}

	if err := services.NewEmailService().SendApplicationConfirmation(application, pdfBytes); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Error sending email")
		return
	}

	utils.Success(c, http.StatusOK, "Email sent successfully", nil)
}
