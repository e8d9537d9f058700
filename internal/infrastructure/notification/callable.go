// Package notification delivers invitation emails through the configured
// provider.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	"drivebuddy-admin/internal/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrDeliveryRejected = errors.New("notification provider rejected the message")

type callableRequest struct {
	Data callablePayload `json:"data"`
}

type callablePayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

type callableResponse struct {
	Result *struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// CallableNotifier invokes the sendDriverInvitation HTTPS callable function.
type CallableNotifier struct {
	httpClient *resty.Client
	url        string
}

func NewCallableNotifier(url string, timeout time.Duration) *CallableNotifier {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &CallableNotifier{
		httpClient: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json"),
		url: url,
	}
}

func (n *CallableNotifier) Send(ctx context.Context, msg domainInvitation.Message) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(callableRequest{Data: callablePayload{Email: msg.Email, Name: msg.Name, Code: msg.Code}}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to call notification function: %w", err)
	}

	var body callableResponse
	_ = json.Unmarshal(resp.Body(), &body)

	if resp.IsError() || body.Error != nil {
		reason := fmt.Sprintf("status %d", resp.StatusCode())
		if body.Error != nil && body.Error.Message != "" {
			reason = body.Error.Message
		}
		logger.Warn("Notification function failed",
			zap.String("email", msg.Email),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("reason", reason),
		)
		return fmt.Errorf("%w: %s", ErrDeliveryRejected, reason)
	}

	if body.Result != nil && !body.Result.Success {
		return fmt.Errorf("%w: %s", ErrDeliveryRejected, body.Result.Message)
	}

	logger.Debug("Invitation email sent", zap.String("email", msg.Email))
	return nil
}
