package models

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:models_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Category{}, &Application{}, &Admin{}))
	return db
}

func TestMigrationKeepsUserTable(t *testing.T) {
	db := newTestDB(t)

	assert.True(t, db.Migrator().HasTable(&User{}))
	assert.Equal(t, "users", User{}.TableName())
}

func TestGenerateReferenceNumberFormat(t *testing.T) {
	format := regexp.MustCompile(`^SBS\d{8}[A-Z0-9]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref := GenerateReferenceNumber()
		assert.Regexp(t, format, ref)
		seen[ref] = true
	}

	// The random suffix should make repeats vanishingly unlikely.
	assert.Len(t, seen, 50)
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range ValidStatuses {
		assert.True(t, IsValidStatus(status), status)
	}

	assert.False(t, IsValidStatus("Cancelled"))
	assert.False(t, IsValidStatus("pending"))
	assert.False(t, IsValidStatus(""))
}

func TestBeforeCreateAssignsReferenceAndStatus(t *testing.T) {
	db := newTestDB(t)

	category := Category{Name: "Housing Project", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	app := Application{
		FullName:             "Abdul Karim",
		FatherName:           "Rahim Uddin",
		MotherName:           "Amena Begum",
		NIDNumber:            "1990123456789",
		DateOfBirth:          time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Occupation:           "Farmer",
		Village:              "Charpara",
		Upazila:              "Sadar",
		District:             "Mymensingh",
		Division:             "Mymensingh",
		FamilyMembersCount:   5,
		MonthlyIncome:        8500,
		MainEarnerOccupation: "Farmer",
		Email:                "karim@example.com",
		MobileNumber:         "01712345678",
		CategoryID:           category.ID,
	}
	require.NoError(t, db.Create(&app).Error)

	assert.Regexp(t, `^SBS\d{8}[A-Z0-9]{8}$`, app.ReferenceNumber)
	assert.Equal(t, StatusPending, app.Status)

	// The assigned reference is persisted verbatim and survives updates.
	original := app.ReferenceNumber
	app.Status = StatusInProgress
	require.NoError(t, db.Save(&app).Error)

	var reloaded Application
	require.NoError(t, db.First(&reloaded, app.ID).Error)
	assert.Equal(t, original, reloaded.ReferenceNumber)
	assert.Equal(t, StatusInProgress, reloaded.Status)
}

func TestAdminPasswordHashing(t *testing.T) {
	var admin Admin
	require.NoError(t, admin.SetPassword("admin123"))

	assert.NotEqual(t, "admin123", admin.PasswordHash)
	assert.True(t, admin.CheckPassword("admin123"))
	assert.False(t, admin.CheckPassword("admin124"))
}
