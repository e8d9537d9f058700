package invitation

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository defines record store access to invitations
type Repository interface {
	ListByCompany(ctx context.Context, companyID string) ([]*Invitation, error)
	GetByID(ctx context.Context, companyID, invitationID string) (*Invitation, error)
	// GetByCode resolves code within companyID. An empty companyID searches
	// every company; a pending invitation is preferred over accepted ones.
	GetByCode(ctx context.Context, companyID, code string) (*Invitation, error)
	Create(ctx context.Context, inv *Invitation) error
	Update(ctx context.Context, inv *Invitation) error
	Delete(ctx context.Context, invitationID string) error
}

// Message is what the recipient needs to sign up.
type Message struct {
	Email string
	Name  string
	Code  string
}

// Notifier delivers an invitation to its recipient. Send blocks until the
// provider accepts or rejects the message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Event names published for invitation lifecycle changes.
const (
	EventIssued    = "invitation.issued"
	EventCancelled = "invitation.cancelled"
	EventAccepted  = "invitation.accepted"
)

// Event describes a lifecycle change of one invitation
type Event struct {
	Name           string    `json:"event"`
	InvitationID   string    `json:"invitation_id"`
	CompanyID      string    `json:"company_id"`
	RecipientEmail string    `json:"recipient_email"`
	Status         Status    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewEvent builds an event from the invitation's current state.
func NewEvent(name string, inv *Invitation, at time.Time) Event {
	return Event{
		Name:           name,
		InvitationID:   inv.ID,
		CompanyID:      inv.CompanyID,
		RecipientEmail: inv.RecipientEmail,
		Status:         inv.Status,
		OccurredAt:     at.UTC(),
	}
}

// EventPublisher fans lifecycle events out to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
