package driver

import "context"

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository defines record store access to drivers
type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]*Driver, error)
	GetByID(ctx context.Context, driverID string) (*Driver, error)
	Update(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, driverID string) error
}
