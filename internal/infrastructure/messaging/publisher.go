// Package messaging carries invitation lifecycle events over MQTT.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	pkgmqtt "drivebuddy-admin/pkg/mqtt"
)

// EventPublisher publishes invitation events to {topic}/{company_id}.
type EventPublisher struct {
	client pkgmqtt.Publisher
	topic  string
	qos    byte
}

func NewEventPublisher(client pkgmqtt.Publisher, topic string, qos byte) *EventPublisher {
	return &EventPublisher{
		client: client,
		topic:  strings.TrimSuffix(topic, "/"),
		qos:    qos,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event domainInvitation.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Name, err)
	}

	topic := p.topic + "/" + event.CompanyID
	if err := p.client.Publish(ctx, topic, p.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", event.Name, topic, err)
	}
	return nil
}
