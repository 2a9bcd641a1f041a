package models

import "time"

// AdminUser is a back-office account. Usernames and emails are unique among
// admin users only; they may collide with a User's.
type AdminUser struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null"`
	FirstName    string    `json:"firstName" gorm:"type:varchar(100)"`
	MiddleName   string    `json:"middleName" gorm:"type:varchar(100)"`
	LastName     string    `json:"lastName" gorm:"type:varchar(100)"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}
