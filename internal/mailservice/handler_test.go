package mailservice

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/abrabant/brabantapi/internal/common"
)

func TestSendContactEmail(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)

	payload, err := json.Marshal(ContactMessage{
		Email:   "visitor@example.com",
		Name:    "Visitor",
		Message: "Hello there",
	})
	assert.NoError(t, err)

	msgs := make(chan amqp.Delivery, 1)
	msgs <- amqp.Delivery{Body: payload}

	var deliveries <-chan amqp.Delivery = msgs
	mockMC.On("Consume", common.ContactMessageKey, common.ContactExchange, common.ContactMessageQueue).Return(deliveries, nil)

	expectedArgs := []interface{}{slog.Attr{Key: "email", Value: slog.StringValue("visitor@example.com")}}
	mockLogger.On("Info", "contact email sent", expectedArgs).Return(nil)
	// the Cleanup below cancels the context, which makes the consumer
	// goroutine emit a shutdown log; allow it so the mock does not panic
	mockLogger.On("Info", "stopping SendContactEmail due to context cancellation", mock.Anything).Return(nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:        mockMC,
		m:         mockMailer,
		recipient: "owner@example.com",
		logger:    mockLogger,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.SendContactEmail()

	time.Sleep(1 * time.Second)

	assert.True(t, mockMailer.IsCalled(), "expected the mailer to be invoked")
	// the notification goes to the site owner, never to the address the
	// visitor typed into the form
	assert.Equal(t, "owner@example.com", mockMailer.GetEmail(), "expected email to be sent to the site owner")

	mockMC.AssertExpectations(t)
	mockLogger.AssertExpectations(t)

	t.Cleanup(func() {
		s.Close()
	})
}

func TestSendContactEmailBadPayload(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)

	msgs := make(chan amqp.Delivery, 1)
	msgs <- amqp.Delivery{Body: []byte("not json")}

	var deliveries <-chan amqp.Delivery = msgs
	mockMC.On("Consume", common.ContactMessageKey, common.ContactExchange, common.ContactMessageQueue).Return(deliveries, nil)
	mockLogger.On("Error", "could not unmarshal message", mock.Anything).Return(nil)
	mockLogger.On("Info", "stopping SendContactEmail due to context cancellation", mock.Anything).Return(nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:        mockMC,
		m:         mockMailer,
		recipient: "owner@example.com",
		logger:    mockLogger,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.SendContactEmail()

	time.Sleep(1 * time.Second)

	assert.False(t, mockMailer.IsCalled(), "a malformed payload must not reach the mailer")

	mockMC.AssertExpectations(t)
	mockLogger.AssertExpectations(t)

	t.Cleanup(func() {
		s.Close()
	})
}

// TestSendContactEmailBrokerRoundTrip publishes through a real broker and
// asserts the consumer picks the message up and addresses the owner.
func TestSendContactEmailBrokerRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping broker round-trip test in short mode")
	}

	connURL := common.TestRabbitMQ(t)

	broker, err := common.NewMessageBroker(connURL)
	assert.NoError(t, err)

	err = common.SetupContactExchange(broker)
	assert.NoError(t, err)

	mockMailer := new(MockMailer)

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:        broker,
		m:         mockMailer,
		recipient: "owner@example.com",
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:       ctx,
		cancel:    cancel,
	}

	s.SendContactEmail()

	payload, err := json.Marshal(ContactMessage{
		Email:   "visitor@example.com",
		Name:    "Visitor",
		Message: "Hello there",
	})
	assert.NoError(t, err)

	err = broker.Publish(context.Background(), payload, common.ContactMessageKey, common.ContactExchange)
	assert.NoError(t, err)

	assert.Eventually(t, mockMailer.IsCalled, 10*time.Second, 100*time.Millisecond, "expected the published message to reach the mailer")
	assert.Equal(t, "owner@example.com", mockMailer.GetEmail(), "expected email to be sent to the site owner")

	t.Cleanup(func() {
		s.Close()
		broker.Close()
	})
}
