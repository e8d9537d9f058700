package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/infrastructure/database/postgres/models"
	"drivebuddy-admin/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pendingFirst = "CASE WHEN status = 'pending' THEN 0 ELSE 1 END"

// InvitationRepository implements invitation.Repository on the invitations table
type InvitationRepository struct {
	db *DB
}

func NewInvitationRepository(db *DB) domainInvitation.Repository {
	return &InvitationRepository{db: db}
}

// ListByCompany returns invitations oldest first.
func (r *InvitationRepository) ListByCompany(ctx context.Context, companyID string) ([]*domainInvitation.Invitation, error) {
	var dbModels []models.InvitationModel
	err := r.db.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	invitations := make([]*domainInvitation.Invitation, 0, len(dbModels))
	for i := range dbModels {
		inv, err := toInvitationEntity(&dbModels[i])
		if err != nil {
			logger.Warn("Skipping invitation with unknown status",
				zap.String("invitation_id", dbModels[i].ID.String()),
				zap.String("company_id", companyID),
				zap.Error(err),
			)
			continue
		}
		invitations = append(invitations, inv)
	}
	return invitations, nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, companyID, invitationID string) (*domainInvitation.Invitation, error) {
	id, err := uuid.Parse(invitationID)
	if err != nil {
		return nil, domainInvitation.ErrInvitationNotFound
	}

	var dbModel models.InvitationModel
	err = r.db.DB.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainInvitation.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return toInvitationEntity(&dbModel)
}

// GetByCode resolves code, preferring a pending invitation and then the
// newest one. Codes are only unique among pending invitations of a company.
func (r *InvitationRepository) GetByCode(ctx context.Context, companyID, code string) (*domainInvitation.Invitation, error) {
	query := r.db.DB.WithContext(ctx).Where("code = ?", code)
	if companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	var dbModel models.InvitationModel
	err := query.
		Order(pendingFirst).
		Order("created_at DESC").
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainInvitation.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation by code: %w", err)
	}

	return toInvitationEntity(&dbModel)
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domainInvitation.Invitation) error {
	inv.ID = uuid.NewString()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	inv.Status = domainInvitation.StatusPending

	dbModel, err := toInvitationModel(inv)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		inv.ID = ""
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// Update persists status and acceptedAt, the only fields that change after
// creation. Accepting only matches a row that is still pending, so two
// concurrent accepts cannot both succeed.
func (r *InvitationRepository) Update(ctx context.Context, inv *domainInvitation.Invitation) error {
	if !inv.Status.IsValid() {
		return fmt.Errorf("%w: %q", domainInvitation.ErrUnknownStatus, inv.Status)
	}
	id, err := uuid.Parse(inv.ID)
	if err != nil {
		return domainInvitation.ErrInvitationNotFound
	}

	query := r.db.DB.WithContext(ctx).
		Model(&models.InvitationModel{}).
		Where("id = ?", id)
	if inv.Status == domainInvitation.StatusAccepted {
		query = query.Where("status = ?", string(domainInvitation.StatusPending))
	}

	result := query.Updates(map[string]interface{}{
		"status":      string(inv.Status),
		"accepted_at": inv.AcceptedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update invitation: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if inv.Status != domainInvitation.StatusAccepted {
		return domainInvitation.ErrInvitationNotFound
	}

	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.InvitationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if count == 0 {
		return domainInvitation.ErrInvitationNotFound
	}
	return domainInvitation.ErrAlreadyAccepted
}

func (r *InvitationRepository) Delete(ctx context.Context, invitationID string) error {
	id, err := uuid.Parse(invitationID)
	if err != nil {
		return domainInvitation.ErrInvitationNotFound
	}

	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.InvitationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainInvitation.ErrInvitationNotFound
	}
	return nil
}

func toInvitationModel(inv *domainInvitation.Invitation) (*models.InvitationModel, error) {
	id, err := uuid.Parse(inv.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid invitation id %q: %w", inv.ID, err)
	}
	return &models.InvitationModel{
		ID:             id,
		CompanyID:      inv.CompanyID,
		RecipientName:  inv.RecipientName,
		RecipientEmail: inv.RecipientEmail,
		Code:           inv.Code,
		Status:         string(inv.Status),
		CreatedAt:      inv.CreatedAt,
		AcceptedAt:     inv.AcceptedAt,
	}, nil
}

func toInvitationEntity(m *models.InvitationModel) (*domainInvitation.Invitation, error) {
	status := domainInvitation.Status(m.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domainInvitation.ErrUnknownStatus, m.Status)
	}
	return &domainInvitation.Invitation{
		ID:             m.ID.String(),
		CompanyID:      m.CompanyID,
		RecipientName:  m.RecipientName,
		RecipientEmail: m.RecipientEmail,
		Code:           m.Code,
		Status:         status,
		CreatedAt:      m.CreatedAt,
		AcceptedAt:     m.AcceptedAt,
	}, nil
}
