package models

import "time"

// User is a placeholder account record. No endpoint reads or writes it,
// but it stays in the migration set so deployed databases keep the table.
type User struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	Username  string    `gorm:"column:username;size:80;unique" json:"username"`
	Email     string    `gorm:"column:email;size:120;unique" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
