package invitation

import "errors"

var (
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrAlreadyAccepted     = errors.New("invitation has already been accepted")
	ErrInvalidTransition   = errors.New("invalid invitation status transition")
	ErrUnknownStatus       = errors.New("unknown invitation status")
	ErrPendingInvitation   = errors.New("a pending invitation already exists for this email")
	ErrInvitationsNotFound = errors.New("no invitations available for company")
)
