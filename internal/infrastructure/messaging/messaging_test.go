package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	pkgmqtt "drivebuddy-admin/pkg/mqtt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeBroker struct {
	published  []published
	publishErr error
	handlers   map[string]pkgmqtt.MessageHandler
	unsubbed   []string
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{handlers: map[string]pkgmqtt.MessageHandler{}}
}

func (b *fakeBroker) Publish(_ context.Context, topic string, qos byte, _ bool, payload []byte) error {
	b.published = append(b.published, published{topic: topic, qos: qos, payload: payload})
	return b.publishErr
}

func (b *fakeBroker) Connect() error { return nil }

func (b *fakeBroker) Subscribe(topic string, _ byte, handler pkgmqtt.MessageHandler) error {
	b.handlers[topic] = handler
	return nil
}

func (b *fakeBroker) Unsubscribe(topics ...string) error {
	b.unsubbed = append(b.unsubbed, topics...)
	return nil
}

func (b *fakeBroker) Disconnect() {}

type acceptCall struct {
	code string
	at   time.Time
}

type fakeAcceptor struct {
	calls []acceptCall
	err   error
}

func (a *fakeAcceptor) AcceptInvitation(_ context.Context, code string, at time.Time) error {
	a.calls = append(a.calls, acceptCall{code: code, at: at})
	return a.err
}

func TestEventPublisher_PublishesPerCompanyTopic(t *testing.T) {
	broker := newFakeBroker()
	pub := NewEventPublisher(broker, "drivebuddy/invitations/", 1)

	inv := &domainInvitation.Invitation{ID: "i1", CompanyID: "c1", RecipientEmail: "ann@x.com", Status: domainInvitation.StatusPending}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Publish(context.Background(), domainInvitation.NewEvent(domainInvitation.EventIssued, inv, at)))

	require.Len(t, broker.published, 1)
	assert.Equal(t, "drivebuddy/invitations/c1", broker.published[0].topic)
	assert.Equal(t, byte(1), broker.published[0].qos)

	var body map[string]any
	require.NoError(t, json.Unmarshal(broker.published[0].payload, &body))
	assert.Equal(t, "invitation.issued", body["event"])
	assert.Equal(t, "i1", body["invitation_id"])
	assert.Equal(t, "pending", body["status"])
}

func TestEventPublisher_WrapsBrokerError(t *testing.T) {
	broker := newFakeBroker()
	broker.publishErr = errors.New("not connected")
	pub := NewEventPublisher(broker, "drivebuddy/invitations", 0)

	err := pub.Publish(context.Background(), domainInvitation.Event{Name: domainInvitation.EventCancelled, CompanyID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestSignupConsumer_AcceptsInvitation(t *testing.T) {
	broker := newFakeBroker()
	acceptor := &fakeAcceptor{}
	consumer := NewSignupConsumer(broker, acceptor, "drivebuddy/signups", 1)
	require.NoError(t, consumer.Start())

	handler := broker.handlers["drivebuddy/signups"]
	require.NotNil(t, handler)

	handler("drivebuddy/signups", []byte(`{"invitation_code":" ab12cd ","accepted_at":"2024-05-02T08:30:00Z"}`))
	handler("drivebuddy/signups", []byte(`not json`))
	handler("drivebuddy/signups", []byte(`{"invitation_code":""}`))

	require.Len(t, acceptor.calls, 1)
	assert.Equal(t, "AB12CD", acceptor.calls[0].code)
	assert.Equal(t, time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC), acceptor.calls[0].at.UTC())

	consumer.Stop()
	assert.Equal(t, []string{"drivebuddy/signups"}, broker.unsubbed)
}

func TestSignupConsumer_AcceptErrorIsNotFatal(t *testing.T) {
	broker := newFakeBroker()
	acceptor := &fakeAcceptor{err: domainInvitation.ErrAlreadyAccepted}
	consumer := NewSignupConsumer(broker, acceptor, "drivebuddy/signups", 1)
	require.NoError(t, consumer.Start())

	assert.NotPanics(t, func() {
		broker.handlers["drivebuddy/signups"]("drivebuddy/signups", []byte(`{"invitation_code":"AB12CD"}`))
	})
	require.Len(t, acceptor.calls, 1)
	assert.False(t, acceptor.calls[0].at.IsZero())
}

func TestSignupConsumer_RequiresTopic(t *testing.T) {
	consumer := NewSignupConsumer(newFakeBroker(), &fakeAcceptor{}, "", 1)
	assert.Error(t, consumer.Start())
}
