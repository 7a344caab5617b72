package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Admin struct {
	ID           int        `gorm:"primaryKey;column:id" json:"id"`
	Email        string     `gorm:"column:email;size:120;unique;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	FullName     string     `gorm:"column:full_name;size:100;not null" json:"full_name"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	IsSuperAdmin bool       `gorm:"column:is_super_admin;default:false" json:"is_super_admin"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// SetPassword stores a bcrypt hash of the given password.
func (a *Admin) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the given password with the stored hash.
func (a *Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
