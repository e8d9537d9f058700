package notification

import (
	"context"
	"fmt"

	"drivebuddy-admin/internal/config"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Dialer is the part of gomail.Dialer the notifier uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends the invitation email directly over SMTP.
type SMTPNotifier struct {
	dialer   Dialer
	from     string
	fromName string
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, msg domainInvitation.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := n.buildMessage(msg)
	if err != nil {
		return err
	}

	if err := n.dialer.DialAndSend(m); err != nil {
		logger.Warn("SMTP delivery failed", zap.String("email", msg.Email), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Debug("Invitation email sent", zap.String("email", msg.Email))
	return nil
}

func (n *SMTPNotifier) buildMessage(msg domainInvitation.Message) (*gomail.Message, error) {
	body, err := renderInvitation(msg.Name, msg.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to render invitation email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.fromName)
	m.SetHeader("To", msg.Email)
	m.SetHeader("Subject", invitationSubject)
	m.SetBody("text/html", body)
	return m, nil
}
