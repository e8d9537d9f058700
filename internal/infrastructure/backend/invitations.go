package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/logger"

	"go.uber.org/zap"
)

type invitationDTO struct {
	ID             string    `json:"id,omitempty"`
	CompanyID      string    `json:"company_id"`
	CreatedAt      Timestamp `json:"createdAt"`
	AcceptedAt     Timestamp `json:"acceptedAt"`
	Code           string    `json:"invitation_code"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	Status         string    `json:"status"`
}

// InvitationRepository adapts Client to invitation.Repository.
type InvitationRepository struct {
	client *Client
}

func NewInvitationRepository(client *Client) domainInvitation.Repository {
	return &InvitationRepository{client: client}
}

// ListByCompany returns invitations in the order the backend lists them.
// A 404 means the company has no invitation collection.
func (r *InvitationRepository) ListByCompany(ctx context.Context, companyID string) ([]*domainInvitation.Invitation, error) {
	var dtos []invitationDTO
	req := r.client.request(ctx).SetQueryParam("company_id", companyID)
	if err := r.client.do(req, http.MethodGet, "/invitations/", &dtos); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, domainInvitation.ErrInvitationsNotFound
		}
		return nil, err
	}

	invitations := make([]*domainInvitation.Invitation, 0, len(dtos))
	for i := range dtos {
		inv, err := toInvitationEntity(&dtos[i])
		if err != nil {
			logger.Warn("Skipping invitation with unknown status",
				zap.String("invitation_id", dtos[i].ID),
				zap.String("company_id", companyID),
				zap.Error(err),
			)
			continue
		}
		invitations = append(invitations, inv)
	}
	return invitations, nil
}

// GetByID has no dedicated endpoint; it scans the company's invitations.
func (r *InvitationRepository) GetByID(ctx context.Context, companyID, invitationID string) (*domainInvitation.Invitation, error) {
	invitations, err := r.ListByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, domainInvitation.ErrInvitationsNotFound) {
			return nil, domainInvitation.ErrInvitationNotFound
		}
		return nil, err
	}
	for _, inv := range invitations {
		if inv.ID == invitationID {
			return inv, nil
		}
	}
	return nil, domainInvitation.ErrInvitationNotFound
}

// GetByCode asks the backend to resolve code, scoped to companyID when set.
// A record of another company is treated as missing.
func (r *InvitationRepository) GetByCode(ctx context.Context, companyID, code string) (*domainInvitation.Invitation, error) {
	var dto invitationDTO
	req := r.client.request(ctx).SetPathParam("code", code)
	if companyID != "" {
		req.SetQueryParam("company_id", companyID)
	}
	if err := r.client.do(req, http.MethodGet, "/invitations/{code}", &dto); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, domainInvitation.ErrInvitationNotFound
		}
		return nil, err
	}
	if companyID != "" && dto.CompanyID != "" && dto.CompanyID != companyID {
		return nil, domainInvitation.ErrInvitationNotFound
	}
	return toInvitationEntity(&dto)
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domainInvitation.Invitation) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	inv.Status = domainInvitation.StatusPending

	body := toInvitationDTO(inv)
	body.ID = ""

	var created invitationDTO
	req := r.client.request(ctx).SetBody(body)
	if err := r.client.do(req, http.MethodPost, "/invitations/", &created); err != nil {
		return err
	}

	if created.ID != "" {
		inv.ID = created.ID
	}
	return nil
}

func (r *InvitationRepository) Update(ctx context.Context, inv *domainInvitation.Invitation) error {
	if !inv.Status.IsValid() {
		return fmt.Errorf("%w: %q", domainInvitation.ErrUnknownStatus, inv.Status)
	}
	req := r.client.request(ctx).
		SetPathParam("id", inv.ID).
		SetBody(toInvitationDTO(inv))
	if err := r.client.do(req, http.MethodPut, "/invitations/{id}", nil); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return domainInvitation.ErrInvitationNotFound
		}
		return err
	}
	return nil
}

func (r *InvitationRepository) Delete(ctx context.Context, invitationID string) error {
	req := r.client.request(ctx).SetPathParam("id", invitationID)
	if err := r.client.do(req, http.MethodDelete, "/invitations/{id}", nil); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return domainInvitation.ErrInvitationNotFound
		}
		return err
	}
	return nil
}

func toInvitationDTO(inv *domainInvitation.Invitation) *invitationDTO {
	createdAt := inv.CreatedAt
	return &invitationDTO{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		CreatedAt:      NewTimestamp(&createdAt),
		AcceptedAt:     NewTimestamp(inv.AcceptedAt),
		Code:           inv.Code,
		RecipientName:  inv.RecipientName,
		RecipientEmail: inv.RecipientEmail,
		Status:         string(inv.Status),
	}
}

func toInvitationEntity(dto *invitationDTO) (*domainInvitation.Invitation, error) {
	status := domainInvitation.Status(dto.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domainInvitation.ErrUnknownStatus, dto.Status)
	}
	inv := &domainInvitation.Invitation{
		ID:             dto.ID,
		CompanyID:      dto.CompanyID,
		RecipientName:  dto.RecipientName,
		RecipientEmail: dto.RecipientEmail,
		Code:           dto.Code,
		Status:         status,
		AcceptedAt:     dto.AcceptedAt.Time,
	}
	if dto.CreatedAt.Time != nil {
		inv.CreatedAt = *dto.CreatedAt.Time
	}
	return inv, nil
}
