package roster

import (
	"context"
	"errors"

	domainDriver "drivebuddy-admin/internal/domain/driver"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/logger"
	appErrors "drivebuddy-admin/pkg/errors"
	"drivebuddy-admin/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Roster is the merged view plus its status counts. Degraded is set when
// the invitation collection was absent and only drivers are shown.
type Roster struct {
	Entries        []Entry
	Total          int
	PendingCount   int
	AcceptedCount  int
	UninvitedCount int
	Degraded       bool
}

// Service implements the roster use cases
type Service struct {
	driverRepo     domainDriver.Repository
	invitationRepo domainInvitation.Repository
}

func NewService(driverRepo domainDriver.Repository, invitationRepo domainInvitation.Repository) *Service {
	return &Service{
		driverRepo:     driverRepo,
		invitationRepo: invitationRepo,
	}
}

// BuildRoster fetches drivers and invitations concurrently and merges them.
// It performs no writes.
func (s *Service) BuildRoster(ctx context.Context, sess session.Session) (*Roster, error) {
	if err := sess.Validate(); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Missing company context", err)
	}

	var (
		drivers     []*domainDriver.Driver
		invitations []*domainInvitation.Invitation
		degraded    bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drivers, err = s.driverRepo.ListByCompany(gctx, sess.CompanyID)
		if err != nil {
			return wrapStoreError("Failed to load drivers", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		invitations, err = s.invitationRepo.ListByCompany(gctx, sess.CompanyID)
		if errors.Is(err, domainInvitation.ErrInvitationsNotFound) {
			invitations, degraded = nil, true
			return nil
		}
		if err != nil {
			return wrapStoreError("Failed to load invitations", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log := logger.WithCompany(sess.CompanyID, sess.AdminID)
	if degraded {
		log.Warn("Invitations unavailable, showing drivers only",
			zap.Int("drivers", len(drivers)),
			zap.String("event", "roster_degraded"),
		)
	}

	r := newRoster(Merge(drivers, invitations))
	r.Degraded = degraded

	log.Debug("Roster built",
		zap.Int("entries", r.Total),
		zap.Int("pending", r.PendingCount),
		zap.String("event", "roster_built"),
	)
	return r, nil
}

func (s *Service) GetRoster(ctx context.Context, sess session.Session, req *RosterRequest) (*RosterResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid pagination", err)
	}

	r, err := s.BuildRoster(ctx, sess)
	if err != nil {
		return nil, err
	}
	return ToRosterResponse(r, req.Page, req.PageSize), nil
}

// Export renders the full roster as an XLSX workbook.
func (s *Service) Export(ctx context.Context, sess session.Session) ([]byte, error) {
	r, err := s.BuildRoster(ctx, sess)
	if err != nil {
		return nil, err
	}
	return ExportXLSX(r.Entries)
}

func newRoster(entries []Entry) *Roster {
	r := &Roster{Entries: entries, Total: len(entries)}
	for i := range entries {
		switch {
		case entries[i].Invitation == nil:
			r.UninvitedCount++
		case entries[i].Invitation.Status == domainInvitation.StatusAccepted:
			r.AcceptedCount++
		case entries[i].Invitation.Status == domainInvitation.StatusPending:
			r.PendingCount++
		}
	}
	return r
}

func wrapStoreError(msg string, err error) error {
	if appErrors.CodeOf(err) != "" {
		return err
	}
	return appErrors.NewAppError(appErrors.CodePersistence, msg, err)
}
