package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountModel represents the database model for Account
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	Firstname   string     `gorm:"type:varchar(100);not null"`
	Lastname    string     `gorm:"type:varchar(100);not null"`
	Phone       string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Address     *string    `gorm:"type:text"`
	City        *string    `gorm:"type:varchar(100)"`
	State       *string    `gorm:"type:varchar(100)"`
	PostalCode  *string    `gorm:"type:varchar(20)"`
	Birthday    *time.Time `gorm:"type:date"`
	Occupation  *string    `gorm:"type:varchar(100)"`
	Nationality *string    `gorm:"type:varchar(100)"`
	AvatarURL   *string    `gorm:"type:text"`

	Role     string `gorm:"type:varchar(50);not null;default:'CUSTOMER'"`
	IsActive bool   `gorm:"default:true;not null"`

	IsEmailVerified        bool       `gorm:"default:false;not null"`
	EmailVerificationToken *string    `gorm:"type:varchar(255);index"`
	EmailVerificationExp   *time.Time `gorm:"type:timestamptz"`

	PasswordResetToken *string    `gorm:"type:varchar(255);index"`
	PasswordResetExp   *time.Time `gorm:"type:timestamptz"`

	LastLogin     *time.Time `gorm:"type:timestamptz"`
	PreviousLogin *time.Time `gorm:"type:timestamptz"`

	ProfileComplete bool `gorm:"default:false;not null"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AccountModel) TableName() string {
	return "accounts"
}
