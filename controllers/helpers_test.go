package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"society-intake-api/config"
	"society-intake-api/models"
	"society-intake-api/routes"
	"society-intake-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination *utils.Pagination `json:"pagination"`
}

// setupTest wires a fresh in-memory database and router.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("UPLOAD_PATH", t.TempDir())
	t.Setenv("MAIL_MODE", "log")

	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Application{}, &models.Admin{}))

	config.DB = db
	config.Redis = nil

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func createAdmin(t *testing.T, email string, super bool) models.Admin {
	t.Helper()

	admin := models.Admin{
		Email:        email,
		FullName:     "Test Admin",
		IsActive:     true,
		IsSuperAdmin: super,
	}
	require.NoError(t, admin.SetPassword("secret123"))
	require.NoError(t, config.DB.Create(&admin).Error)
	return admin
}

// loginAdmin obtains a token through the login endpoint.
func loginAdmin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := performJSON(router, http.MethodPost, "/api/admin/login", gin.H{
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createCategory(t *testing.T, name string, active bool) models.Category {
	t.Helper()

	category := models.Category{Name: name, Description: name + " support", IsActive: active}
	require.NoError(t, config.DB.Create(&category).Error)
	return category
}

func performJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performGET(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	return performJSON(router, http.MethodGet, path, nil, token)
}

// submissionFields returns a complete, valid submission form.
func submissionFields(categoryID int) map[string]string {
	return map[string]string{
		"full_name":              "Abdul Karim",
		"father_name":            "Rahim Uddin",
		"mother_name":            "Amena Begum",
		"nid_number":             "1990123456789",
		"date_of_birth":          "1990-05-12",
		"occupation":             "Farmer",
		"village":                "Charpara",
		"upazila":                "Sadar",
		"district":               "Mymensingh",
		"division":               "Mymensingh",
		"family_members_count":   "5",
		"monthly_income":         "8500.50",
		"main_earner_occupation": "Farmer",
		"email":                  "karim@example.com",
		"mobile_number":          "01712345678",
		"category_id":            fmt.Sprintf("%d", categoryID),
	}
}

func performSubmission(t *testing.T, router *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
