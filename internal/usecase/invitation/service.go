package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"drivebuddy-admin/internal/config"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/logger"
	appErrors "drivebuddy-admin/pkg/errors"
	"drivebuddy-admin/pkg/utils"

	"go.uber.org/zap"
)

// Service implements invitation use cases
type Service struct {
	invitationRepo  domainInvitation.Repository
	notifier        domainInvitation.Notifier
	publisher       domainInvitation.EventPublisher
	duplicatePolicy string
	metrics         *MetricsTracker

	generateCode func() (string, error)
	now          func() time.Time
}

func NewService(
	invitationRepo domainInvitation.Repository,
	notifier domainInvitation.Notifier,
	publisher domainInvitation.EventPublisher,
	duplicatePolicy string,
) *Service {
	if publisher == nil {
		publisher = domainInvitation.NopPublisher{}
	}
	if duplicatePolicy == "" {
		duplicatePolicy = config.DuplicateAllow
	}
	return &Service{
		invitationRepo:  invitationRepo,
		notifier:        notifier,
		publisher:       publisher,
		duplicatePolicy: duplicatePolicy,
		metrics:         NewMetricsTracker(),
		generateCode:    GenerateInvitationCode,
		now:             time.Now,
	}
}

// IssueInvitation sends the invitation email and records the invitation only
// after the send succeeded.
func (s *Service) IssueInvitation(ctx context.Context, sess session.Session, req *IssueInvitationRequest) (*InvitationResponse, error) {
	if err := sess.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Missing company context", err)
	}

	req.Name = utils.SanitizeName(req.Name)
	req.Email = utils.SanitizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Name and a valid email are required", err)
	}

	superseded, err := s.applyDuplicatePolicy(ctx, sess.CompanyID, req.Email)
	if err != nil {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeNotificationDelivery, "Failed to generate invitation code", err)
	}

	log := logger.WithCompany(sess.CompanyID, sess.AdminID)

	msg := domainInvitation.Message{Email: req.Email, Name: req.Name, Code: code}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.metrics.Update(sess.CompanyID, func(m *IssuanceMetrics) { m.DeliveryFailures++ })
		log.Warn("Invitation email could not be sent",
			zap.String("recipient_email", req.Email),
			zap.Error(err),
			zap.String("event", "invitation_notification_failed"),
		)
		return nil, appErrors.NewAppError(appErrors.CodeNotificationDelivery, "Email could not be sent", err)
	}

	inv := &domainInvitation.Invitation{
		CompanyID:      sess.CompanyID,
		RecipientName:  req.Name,
		RecipientEmail: req.Email,
		Code:           code,
		Status:         domainInvitation.StatusPending,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		s.metrics.Update(sess.CompanyID, func(m *IssuanceMetrics) { m.PersistenceFailures++ })
		log.Error("Invitation email sent but record was not stored",
			zap.String("recipient_email", req.Email),
			zap.String("invitation_code", code),
			zap.Error(err),
			zap.String("event", "invitation_persist_failed_after_send"),
		)
		return nil, appErrors.NewAppError(appErrors.CodePersistence, "Invitation email was sent but the invitation could not be saved", err)
	}

	for _, old := range superseded {
		if err := s.invitationRepo.Delete(ctx, old.ID); err != nil && !errors.Is(err, domainInvitation.ErrInvitationNotFound) {
			log.Warn("Failed to remove superseded invitation",
				zap.String("invitation_id", old.ID),
				zap.Error(err),
			)
		}
	}

	issuedAt := s.now()
	s.metrics.Update(sess.CompanyID, func(m *IssuanceMetrics) {
		m.Issued++
		m.LastIssuedAt = issuedAt.UTC()
	})

	log.Info("Invitation issued",
		zap.String("invitation_id", inv.ID),
		zap.String("recipient_email", inv.RecipientEmail),
		zap.String("event", "invitation_issued"),
	)
	s.publish(ctx, domainInvitation.EventIssued, inv)

	return ToInvitationResponse(inv), nil
}

// applyDuplicatePolicy returns the pending invitations to remove once the new
// one is stored.
func (s *Service) applyDuplicatePolicy(ctx context.Context, companyID, email string) ([]*domainInvitation.Invitation, error) {
	if s.duplicatePolicy == config.DuplicateAllow {
		return nil, nil
	}

	existing, err := s.listCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var pending []*domainInvitation.Invitation
	for _, inv := range existing {
		if inv.IsLive() && inv.RecipientEmail == email {
			pending = append(pending, inv)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	if s.duplicatePolicy == config.DuplicateReject {
		return nil, appErrors.NewAppError(appErrors.CodeConflict, "A pending invitation already exists for this email", domainInvitation.ErrPendingInvitation)
	}
	return pending, nil
}

// CancelInvitation deletes a pending invitation of the session's company.
func (s *Service) CancelInvitation(ctx context.Context, sess session.Session, invitationID string) error {
	inv, err := s.invitationRepo.GetByID(ctx, sess.CompanyID, invitationID)
	if err != nil {
		return mapRepoError(err)
	}
	if inv.CompanyID != "" && inv.CompanyID != sess.CompanyID {
		return appErrors.NewAppError(appErrors.CodeNotFound, "Invitation not found", domainInvitation.ErrInvitationNotFound)
	}
	if !inv.IsLive() {
		return appErrors.NewAppError(appErrors.CodeInvalidState, "Accepted invitations cannot be cancelled", domainInvitation.ErrAlreadyAccepted)
	}

	if err := s.invitationRepo.Delete(ctx, inv.ID); err != nil {
		return mapRepoError(err)
	}

	s.metrics.Update(sess.CompanyID, func(m *IssuanceMetrics) { m.Cancelled++ })
	logger.WithCompany(sess.CompanyID, sess.AdminID).Info("Invitation cancelled",
		zap.String("invitation_id", inv.ID),
		zap.String("event", "invitation_cancelled"),
	)
	s.publish(ctx, domainInvitation.EventCancelled, inv)

	return nil
}

func (s *Service) GetInvitationByCode(ctx context.Context, sess session.Session, code string) (*InvitationResponse, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	inv, err := s.invitationRepo.GetByCode(ctx, sess.CompanyID, code)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if inv.CompanyID != sess.CompanyID {
		return nil, appErrors.NewAppError(appErrors.CodeNotFound, "Invitation not found", domainInvitation.ErrInvitationNotFound)
	}
	return ToInvitationResponse(inv), nil
}

// AcceptInvitation records a completed driver signup. It has no admin
// session; the signup flow is trusted to have verified the code owner.
func (s *Service) AcceptInvitation(ctx context.Context, code string, acceptedAt time.Time) error {
	code, err := normalizeCode(code)
	if err != nil {
		return err
	}

	inv, err := s.invitationRepo.GetByCode(ctx, "", code)
	if err != nil {
		return mapRepoError(err)
	}

	if err := inv.Accept(acceptedAt); err != nil {
		return appErrors.NewAppError(appErrors.CodeInvalidState, "Invitation cannot be accepted", err)
	}

	if err := s.invitationRepo.Update(ctx, inv); err != nil {
		return mapRepoError(err)
	}

	s.metrics.Update(inv.CompanyID, func(m *IssuanceMetrics) { m.Accepted++ })
	logger.Info("Invitation accepted",
		zap.String("invitation_id", inv.ID),
		zap.String("company_id", inv.CompanyID),
		zap.String("event", "invitation_accepted"),
	)
	s.publish(ctx, domainInvitation.EventAccepted, inv)

	return nil
}

// ListInvitations returns the company's invitations, pending ones first.
func (s *Service) ListInvitations(ctx context.Context, sess session.Session) (*InvitationListResponse, error) {
	invitations, err := s.listCompany(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}

	resp := &InvitationListResponse{
		Invitations: make([]InvitationResponse, 0, len(invitations)),
		Total:       len(invitations),
	}
	for _, inv := range invitations {
		if inv.IsLive() {
			resp.Invitations = append(resp.Invitations, *ToInvitationResponse(inv))
			resp.Pending++
		}
	}
	for _, inv := range invitations {
		if !inv.IsLive() {
			resp.Invitations = append(resp.Invitations, *ToInvitationResponse(inv))
		}
	}
	return resp, nil
}

// Metrics reports the issuance counters of the session's company only.
func (s *Service) Metrics(sess session.Session) (*MetricsResponse, error) {
	if err := sess.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Missing company context", err)
	}
	return ToMetricsResponse(s.metrics.Snapshot(sess.CompanyID)), nil
}

func (s *Service) listCompany(ctx context.Context, companyID string) ([]*domainInvitation.Invitation, error) {
	invitations, err := s.invitationRepo.ListByCompany(ctx, companyID)
	if errors.Is(err, domainInvitation.ErrInvitationsNotFound) {
		return nil, nil
	}
	return invitations, err
}

func (s *Service) publish(ctx context.Context, name string, inv *domainInvitation.Invitation) {
	if err := s.publisher.Publish(ctx, domainInvitation.NewEvent(name, inv, s.now())); err != nil {
		logger.Warn("Failed to publish invitation event",
			zap.String("event_name", name),
			zap.String("invitation_id", inv.ID),
			zap.Error(err),
		)
	}
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !utils.IsValidInvitationCode(code) {
		return "", appErrors.NewAppError(appErrors.CodeValidation, "Invitation code must be 6 letters or digits", appErrors.ErrInvalidInput)
	}
	return code, nil
}

// mapRepoError tags store errors with the taxonomy. Transport errors from
// the backend client already carry a code and pass through.
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, domainInvitation.ErrInvitationNotFound), errors.Is(err, domainInvitation.ErrInvitationsNotFound):
		return appErrors.NewAppError(appErrors.CodeNotFound, "Invitation not found", err)
	case errors.Is(err, domainInvitation.ErrAlreadyAccepted):
		return appErrors.NewAppError(appErrors.CodeInvalidState, "Invitation has already been accepted", err)
	case appErrors.CodeOf(err) != "":
		return err
	default:
		return appErrors.NewAppError(appErrors.CodePersistence, "Invitation store request failed", err)
	}
}
