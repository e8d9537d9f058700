package driver

import (
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
)

const birthdayLayout = "2006-01-02"

// UpdateDriverRequest carries the editable profile fields. CompanyID and
// Email are accepted only so a change attempt can be rejected.
type UpdateDriverRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	VehicleType *string `json:"vehicle_type" validate:"omitempty,max=50"`
	Birthday    *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	PictureURL  *string `json:"picture_url" validate:"omitempty,url,max=2048"`

	CompanyID *string `json:"company_id"`
	Email     *string `json:"email"`
}

type DriverResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	VehicleType string     `json:"vehicle_type"`
	Birthday    *time.Time `json:"birthday"`
	PictureURL  string     `json:"picture_url"`
}

type DriverListResponse struct {
	Drivers []DriverResponse `json:"drivers"`
	Total   int              `json:"total"`
}

func ToDriverResponse(d *domainDriver.Driver) *DriverResponse {
	if d == nil {
		return nil
	}
	return &DriverResponse{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		VehicleType: d.VehicleType,
		Birthday:    d.Birthday,
		PictureURL:  d.PictureURL,
	}
}
