package driver

import (
	"context"
	"errors"
	"time"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/logger"
	appErrors "drivebuddy-admin/pkg/errors"
	"drivebuddy-admin/pkg/utils"

	"go.uber.org/zap"
)

// Service implements driver profile use cases. Drivers of another company are
// reported as not found.
type Service struct {
	driverRepo domainDriver.Repository
}

func NewService(driverRepo domainDriver.Repository) *Service {
	return &Service{driverRepo: driverRepo}
}

func (s *Service) ListDrivers(ctx context.Context, sess session.Session) (*DriverListResponse, error) {
	if err := sess.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Missing company context", err)
	}

	drivers, err := s.driverRepo.ListByCompany(ctx, sess.CompanyID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	resp := &DriverListResponse{Drivers: make([]DriverResponse, 0, len(drivers))}
	for _, d := range drivers {
		if !d.BelongsTo(sess.CompanyID) {
			continue
		}
		resp.Drivers = append(resp.Drivers, *ToDriverResponse(d))
	}
	resp.Total = len(resp.Drivers)
	return resp, nil
}

func (s *Service) GetDriver(ctx context.Context, sess session.Session, driverID string) (*DriverResponse, error) {
	d, err := s.load(ctx, sess, driverID)
	if err != nil {
		return nil, err
	}
	return ToDriverResponse(d), nil
}

func (s *Service) UpdateDriver(ctx context.Context, sess session.Session, driverID string, req *UpdateDriverRequest) (*DriverResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid driver update", err)
	}

	d, err := s.load(ctx, sess, driverID)
	if err != nil {
		return nil, err
	}

	if (req.CompanyID != nil && *req.CompanyID != d.CompanyID) || (req.Email != nil && *req.Email != d.Email) {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Company and email cannot be changed", domainDriver.ErrImmutableField)
	}

	if req.Name != nil {
		d.Name = utils.SanitizeName(*req.Name)
	}
	if req.Phone != nil {
		d.Phone = utils.SanitizePhone(*req.Phone)
	}
	if req.VehicleType != nil {
		d.VehicleType = utils.SanitizeName(*req.VehicleType)
	}
	if req.PictureURL != nil {
		d.PictureURL = *req.PictureURL
	}
	if req.Birthday != nil {
		if *req.Birthday == "" {
			d.Birthday = nil
		} else {
			b, err := time.Parse(birthdayLayout, *req.Birthday)
			if err != nil {
				return nil, appErrors.NewAppError(appErrors.CodeValidation, "Birthday must be YYYY-MM-DD", err)
			}
			d.Birthday = &b
		}
	}

	if err := s.driverRepo.Update(ctx, d); err != nil {
		return nil, mapRepoError(err)
	}

	logger.WithCompany(sess.CompanyID, sess.AdminID).Info("Driver updated",
		zap.String("driver_id", d.ID),
		zap.String("event", "driver_updated"),
	)
	return ToDriverResponse(d), nil
}

func (s *Service) DeleteDriver(ctx context.Context, sess session.Session, driverID string) error {
	d, err := s.load(ctx, sess, driverID)
	if err != nil {
		return err
	}

	if err := s.driverRepo.Delete(ctx, d.ID); err != nil {
		return mapRepoError(err)
	}

	logger.WithCompany(sess.CompanyID, sess.AdminID).Info("Driver deleted",
		zap.String("driver_id", d.ID),
		zap.String("event", "driver_deleted"),
	)
	return nil
}

func (s *Service) load(ctx context.Context, sess session.Session, driverID string) (*domainDriver.Driver, error) {
	if err := sess.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Missing company context", err)
	}
	if driverID == "" {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Driver id is required", appErrors.ErrInvalidInput)
	}

	d, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !d.BelongsTo(sess.CompanyID) {
		return nil, appErrors.NewAppError(appErrors.CodeNotFound, "Driver not found", domainDriver.ErrDriverNotFound)
	}
	return d, nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, domainDriver.ErrDriverNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Driver not found", err)
	case appErrors.CodeOf(err) != "":
		return err
	default:
		return appErrors.NewAppError(appErrors.CodePersistence, "Driver store request failed", err)
	}
}
