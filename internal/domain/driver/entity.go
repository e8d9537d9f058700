package driver

import "time"

// Driver is created by the external signup flow once an invitation is
// accepted. CompanyID and Email never change afterwards.
type Driver struct {
	ID          string
	CompanyID   string
	Name        string
	Email       string
	Phone       string
	VehicleType string
	Birthday    *time.Time
	PictureURL  string
}

// BelongsTo reports whether the driver is scoped to companyID.
func (d *Driver) BelongsTo(companyID string) bool {
	return d != nil && d.CompanyID == companyID
}
