package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationModel represents the database model for Invitations.
type InvitationModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID      string     `gorm:"type:varchar(128);not null;index:idx_invitations_company_email"`
	RecipientName  string     `gorm:"type:varchar(255);not null"`
	RecipientEmail string     `gorm:"type:varchar(255);not null;index:idx_invitations_company_email"`
	Code           string     `gorm:"type:char(6);not null;index"`
	Status         string     `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	AcceptedAt     *time.Time `gorm:"type:timestamptz"`
}

func (InvitationModel) TableName() string {
	return "invitations"
}
