package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	"drivebuddy-admin/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverRepository implements driver.Repository on the drivers table
type DriverRepository struct {
	db *DB
}

func NewDriverRepository(db *DB) domainDriver.Repository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) ListByCompany(ctx context.Context, companyID string) ([]*domainDriver.Driver, error) {
	var dbModels []models.DriverModel
	err := r.db.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}

	drivers := make([]*domainDriver.Driver, len(dbModels))
	for i := range dbModels {
		drivers[i] = toDriverEntity(&dbModels[i])
	}
	return drivers, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (*domainDriver.Driver, error) {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return nil, domainDriver.ErrDriverNotFound
	}

	var dbModel models.DriverModel
	err = r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDriver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return toDriverEntity(&dbModel), nil
}

// Update writes the mutable profile fields. company_id and email are never
// touched.
func (r *DriverRepository) Update(ctx context.Context, d *domainDriver.Driver) error {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domainDriver.ErrDriverNotFound
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":         d.Name,
			"phone":        d.Phone,
			"vehicle_type": d.VehicleType,
			"birthday":     d.Birthday,
			"picture_url":  d.PictureURL,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDriver.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID string) error {
	id, err := uuid.Parse(driverID)
	if err != nil {
		return domainDriver.ErrDriverNotFound
	}

	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.DriverModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDriver.ErrDriverNotFound
	}
	return nil
}

func toDriverEntity(m *models.DriverModel) *domainDriver.Driver {
	return &domainDriver.Driver{
		ID:          m.ID.String(),
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		VehicleType: m.VehicleType,
		Birthday:    m.Birthday,
		PictureURL:  m.PictureURL,
	}
}
