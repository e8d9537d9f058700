package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"drivebuddy-admin/internal/logger"
	pkgmqtt "drivebuddy-admin/pkg/mqtt"

	"go.uber.org/zap"
)

// SignupMessage is published by the driver signup flow once a driver
// completes registration with an invitation code.
type SignupMessage struct {
	InvitationCode string     `json:"invitation_code"`
	AcceptedAt     *time.Time `json:"accepted_at"`
}

// Acceptor marks an invitation accepted.
type Acceptor interface {
	AcceptInvitation(ctx context.Context, code string, acceptedAt time.Time) error
}

// Subscriber is the subscribing half of pkg/mqtt.Client.
type Subscriber interface {
	Connect() error
	Subscribe(topic string, qos byte, handler pkgmqtt.MessageHandler) error
	Unsubscribe(topics ...string) error
	Disconnect()
}

// SignupConsumer turns signup messages into invitation acceptances.
type SignupConsumer struct {
	client   Subscriber
	acceptor Acceptor
	topic    string
	qos      byte
	timeout  time.Duration

	mu      sync.Mutex
	started bool
}

func NewSignupConsumer(client Subscriber, acceptor Acceptor, topic string, qos byte) *SignupConsumer {
	return &SignupConsumer{
		client:   client,
		acceptor: acceptor,
		topic:    topic,
		qos:      qos,
		timeout:  10 * time.Second,
	}
}

// Start subscribes to the signup topic. The caller owns the connection.
func (c *SignupConsumer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}
	if c.topic == "" {
		return errors.New("no MQTT signup topic configured")
	}

	if err := c.client.Subscribe(c.topic, c.qos, c.handleSignup); err != nil {
		return fmt.Errorf("subscribe failed for topic %s: %w", c.topic, err)
	}

	c.started = true
	return nil
}

func (c *SignupConsumer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}
	if err := c.client.Unsubscribe(c.topic); err != nil {
		logger.Warn("Failed to unsubscribe from signup topic", zap.String("topic", c.topic), zap.Error(err))
	}
	c.started = false
}

func (c *SignupConsumer) handleSignup(topic string, payload []byte) {
	msg, err := ParseSignupMessage(payload)
	if err != nil {
		logger.Warn("Invalid signup payload", zap.String("topic", topic), zap.Error(err))
		return
	}

	acceptedAt := time.Now().UTC()
	if msg.AcceptedAt != nil {
		acceptedAt = *msg.AcceptedAt
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.acceptor.AcceptInvitation(ctx, msg.InvitationCode, acceptedAt); err != nil {
		logger.Error("Failed to accept invitation",
			zap.String("invitation_code", msg.InvitationCode),
			zap.Error(err),
		)
	}
}

func ParseSignupMessage(payload []byte) (*SignupMessage, error) {
	var msg SignupMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("decode signup message: %w", err)
	}
	msg.InvitationCode = strings.ToUpper(strings.TrimSpace(msg.InvitationCode))
	if msg.InvitationCode == "" {
		return nil, errors.New("invitation_code is required")
	}
	return &msg, nil
}
