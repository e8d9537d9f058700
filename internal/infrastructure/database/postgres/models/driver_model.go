package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverModel represents the database model for Drivers.
type DriverModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID   string     `gorm:"type:varchar(128);not null;index;uniqueIndex:idx_drivers_company_email"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_drivers_company_email"`
	Phone       string     `gorm:"type:varchar(50)"`
	VehicleType string     `gorm:"type:varchar(100)"`
	Birthday    *time.Time `gorm:"type:date"`
	PictureURL  string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (DriverModel) TableName() string {
	return "drivers"
}
