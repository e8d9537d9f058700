package backend

import (
	"context"
	"net/http"

	domainDriver "drivebuddy-admin/internal/domain/driver"
)

type driverDTO struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	VehicleType string    `json:"vehicle_type"`
	Birthday    Timestamp `json:"birthday"`
	PictureURL  string    `json:"picture_url"`
}

// DriverRepository adapts Client to driver.Repository.
type DriverRepository struct {
	client *Client
}

func NewDriverRepository(client *Client) domainDriver.Repository {
	return &DriverRepository{client: client}
}

// ListByCompany treats a 404 as a company without drivers.
func (r *DriverRepository) ListByCompany(ctx context.Context, companyID string) ([]*domainDriver.Driver, error) {
	var dtos []driverDTO
	req := r.client.request(ctx).SetPathParam("companyId", companyID)
	if err := r.client.do(req, http.MethodGet, "/drivers/company/{companyId}", &dtos); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return []*domainDriver.Driver{}, nil
		}
		return nil, err
	}

	drivers := make([]*domainDriver.Driver, 0, len(dtos))
	for i := range dtos {
		d := toDriverEntity(&dtos[i])
		if d.CompanyID == "" {
			d.CompanyID = companyID
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (*domainDriver.Driver, error) {
	var dto driverDTO
	req := r.client.request(ctx).SetPathParam("id", driverID)
	if err := r.client.do(req, http.MethodGet, "/drivers/{id}", &dto); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, domainDriver.ErrDriverNotFound
		}
		return nil, err
	}
	if dto.ID == "" {
		dto.ID = driverID
	}
	return toDriverEntity(&dto), nil
}

func (r *DriverRepository) Update(ctx context.Context, d *domainDriver.Driver) error {
	var updated driverDTO
	req := r.client.request(ctx).
		SetPathParam("id", d.ID).
		SetBody(toDriverDTO(d))
	if err := r.client.do(req, http.MethodPut, "/drivers/{id}", &updated); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return domainDriver.ErrDriverNotFound
		}
		return err
	}

	if updated.ID != "" {
		companyID := d.CompanyID
		*d = *toDriverEntity(&updated)
		if d.CompanyID == "" {
			d.CompanyID = companyID
		}
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID string) error {
	req := r.client.request(ctx).SetPathParam("id", driverID)
	if err := r.client.do(req, http.MethodDelete, "/drivers/{id}", nil); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return domainDriver.ErrDriverNotFound
		}
		return err
	}
	return nil
}

func toDriverDTO(d *domainDriver.Driver) *driverDTO {
	return &driverDTO{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		VehicleType: d.VehicleType,
		Birthday:    NewTimestamp(d.Birthday),
		PictureURL:  d.PictureURL,
	}
}

func toDriverEntity(dto *driverDTO) *domainDriver.Driver {
	return &domainDriver.Driver{
		ID:          dto.ID,
		CompanyID:   dto.CompanyID,
		Name:        dto.Name,
		Email:       dto.Email,
		Phone:       dto.Phone,
		VehicleType: dto.VehicleType,
		Birthday:    dto.Birthday.Time,
		PictureURL:  dto.PictureURL,
	}
}
