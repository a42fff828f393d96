package service

import (
	"context"
	"fmt"
	"time"

	"retail-assistant-be/internal/model"
	"retail-assistant-be/internal/pkg/logger"
	"retail-assistant-be/internal/pkg/mailer"
	"retail-assistant-be/internal/websocket"
	"retail-assistant-be/pkg/events"
	pktNats "retail-assistant-be/pkg/nats"
)

// NotificationService reacts to customer registration events: it sends
// the welcome email and pushes a notification to connected ops
// dashboards.
type NotificationService struct {
	subscriber   *pktNats.Subscriber
	hub          *websocket.Hub
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotificationService(
	subscriber *pktNats.Subscriber,
	hub *websocket.Hub,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		subscriber:   subscriber,
		hub:          hub,
		emailService: emailService,
		logger:       log,
	}
}

// Start subscribes to the event bus. Blocking failures are logged, not
// fatal; the assistant works without the notification side channel.
func (s *NotificationService) Start() {
	subject := fmt.Sprintf("events.%s", events.CustomerRegisteredType)
	err := s.subscriber.Subscribe(subject, "notification-service", s.handleCustomerRegistered)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to subscribe to registration events", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	}
}

func (s *NotificationService) handleCustomerRegistered(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	nombre, _ := payload["nombre"].(string)
	email, _ := payload["email"].(string)
	identificacion, _ := payload["identificacion"].(string)

	if email != "" {
		if err := s.emailService.SendWelcome(email, nombre); err != nil {
			s.logger.Warn("NotificationService", "Failed to send welcome email", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
			// Don't retry the whole event just for the email.
		}
	}

	s.hub.Broadcast(model.Notification{
		TypeCode: events.CustomerRegisteredType,
		Title:    "Nuevo cliente registrado",
		Message:  fmt.Sprintf("%s completó su registro.", nombre),
		Metadata: map[string]interface{}{
			"identificacion": identificacion,
		},
		CreatedAt: time.Now(),
	})

	return nil
}
