package invitation

import (
	"time"

	domainInvitation "drivebuddy-admin/internal/domain/invitation"
)

type IssueInvitationRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type InvitationResponse struct {
	ID             string                  `json:"id"`
	CompanyID      string                  `json:"company_id"`
	RecipientName  string                  `json:"recipient_name"`
	RecipientEmail string                  `json:"recipient_email"`
	InvitationCode string                  `json:"invitation_code"`
	Status         domainInvitation.Status `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	AcceptedAt     *time.Time              `json:"accepted_at"`
	Cancellable    bool                    `json:"cancellable"`
}

type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
	Pending     int                  `json:"pending"`
}

type MetricsResponse struct {
	Issued              int64      `json:"issued"`
	DeliveryFailures    int64      `json:"delivery_failures"`
	PersistenceFailures int64      `json:"persistence_failures"`
	Cancelled           int64      `json:"cancelled"`
	Accepted            int64      `json:"accepted"`
	LastIssuedAt        *time.Time `json:"last_issued_at"`
}

func ToInvitationResponse(inv *domainInvitation.Invitation) *InvitationResponse {
	return &InvitationResponse{
		ID:             inv.ID,
		CompanyID:      inv.CompanyID,
		RecipientName:  inv.RecipientName,
		RecipientEmail: inv.RecipientEmail,
		InvitationCode: inv.Code,
		Status:         inv.Status,
		CreatedAt:      inv.CreatedAt,
		AcceptedAt:     inv.AcceptedAt,
		Cancellable:    inv.IsLive(),
	}
}

func ToMetricsResponse(m IssuanceMetrics) *MetricsResponse {
	resp := &MetricsResponse{
		Issued:              m.Issued,
		DeliveryFailures:    m.DeliveryFailures,
		PersistenceFailures: m.PersistenceFailures,
		Cancelled:           m.Cancelled,
		Accepted:            m.Accepted,
	}
	if !m.LastIssuedAt.IsZero() {
		t := m.LastIssuedAt
		resp.LastIssuedAt = &t
	}
	return resp
}
