package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application statuses
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusApproved   = "Approved"
	StatusRejected   = "Rejected"
)

// ReferenceNumberPrefix is prepended to every generated reference number.
const ReferenceNumberPrefix = "SBS"

// ValidStatuses lists every status an application may hold.
var ValidStatuses = []string{StatusPending, StatusInProgress, StatusApproved, StatusRejected}

// IsValidStatus reports whether the given value is one of the four
// application statuses. Comparison is exact, not case-insensitive.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OtherDocument is one entry of the supplementary documents list stored
// alongside an application.
type OtherDocument struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Application struct {
	ID              int    `gorm:"primaryKey;column:id" json:"id"`
	ReferenceNumber string `gorm:"column:reference_number;size:20;unique;not null" json:"reference_number"`

	// Personal information
	FullName    string    `gorm:"column:full_name;size:100;not null" json:"full_name"`
	FatherName  string    `gorm:"column:father_name;size:100;not null" json:"father_name"`
	MotherName  string    `gorm:"column:mother_name;size:100;not null" json:"mother_name"`
	NIDNumber   string    `gorm:"column:nid_number;size:20;not null" json:"nid_number"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Occupation  string    `gorm:"column:occupation;size:100;not null" json:"occupation"`

	// Address information
	Village  string `gorm:"column:village;size:100;not null" json:"village"`
	Upazila  string `gorm:"column:upazila;size:100;not null" json:"upazila"`
	District string `gorm:"column:district;size:100;not null" json:"district"`
	Division string `gorm:"column:division;size:100;not null" json:"division"`

	// Family information
	FamilyMembersCount   int     `gorm:"column:family_members_count;not null" json:"family_members_count"`
	MonthlyIncome        float64 `gorm:"column:monthly_income;not null" json:"monthly_income"`
	MainEarnerOccupation string  `gorm:"column:main_earner_occupation;size:100;not null" json:"main_earner_occupation"`

	// Contact information
	Email        string `gorm:"column:email;size:120;not null" json:"email"`
	MobileNumber string `gorm:"column:mobile_number;size:15;not null" json:"mobile_number"`

	// Document paths (relative to the upload root)
	PhotoPath      string                             `gorm:"column:photo_path;size:255" json:"photo_path"`
	SignaturePath  string                             `gorm:"column:signature_path;size:255" json:"signature_path"`
	NIDImagePath   string                             `gorm:"column:nid_image_path;size:255" json:"nid_image_path"`
	OtherDocuments datatypes.JSONSlice[OtherDocument] `gorm:"column:other_documents" json:"other_documents"`

	Status string `gorm:"column:status;size:20;default:Pending" json:"status"`

	CategoryID int      `gorm:"column:category_id;not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Populated from the preloaded category for applicant-facing responses.
	CategoryName string `gorm:"-" json:"category_name,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

// BeforeCreate assigns the reference number and default status. The
// reference number is set exactly once here and never changed afterwards.
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ReferenceNumber == "" {
		a.ReferenceNumber = GenerateReferenceNumber()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// GenerateReferenceNumber builds an applicant-facing reference number:
// fixed prefix, 8 digit date stamp, 8 character uppercase random suffix.
// Collisions are not checked.
func GenerateReferenceNumber() string {
	stamp := time.Now().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return ReferenceNumberPrefix + stamp + suffix
}
