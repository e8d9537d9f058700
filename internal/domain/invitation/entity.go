package invitation

import "time"

// Status is the invitation lifecycle state
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusAccepted
}

// Invitation asks a recipient to sign up as a driver of a company
type Invitation struct {
	ID             string
	CompanyID      string
	RecipientName  string
	RecipientEmail string
	Code           string
	Status         Status
	CreatedAt      time.Time
	AcceptedAt     *time.Time
}

// IsLive reports whether the invitation can still be accepted or cancelled.
func (i *Invitation) IsLive() bool {
	return i.Status == StatusPending
}

// Accept moves a pending invitation to accepted. AcceptedAt is set once.
func (i *Invitation) Accept(at time.Time) error {
	if err := ValidateStatusTransition(i.Status, StatusAccepted); err != nil {
		return err
	}
	if i.AcceptedAt != nil {
		return ErrAlreadyAccepted
	}
	at = at.UTC()
	i.Status = StatusAccepted
	i.AcceptedAt = &at
	return nil
}
