package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/profile-service/internal/config"
	"github.com/spec-kit/profile-service/internal/events"
)

// NotificationService handles outbound delivery for domain events. SMS and
// webhook delivery are stubs; the real gateways live outside this service.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCodeSent, n.handleCodeSent)
	n.dispatcher.Subscribe(events.EventPhoneVerified, n.handlePhoneVerified)
	n.dispatcher.Subscribe(events.EventProfileUpdateFailed, n.handleProfileUpdateFailed)
	n.dispatcher.Subscribe(events.EventOrganizationCreated, n.handleOrganizationCreated)
}

func (n *NotificationService) handleCodeSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CodeSentPayload)
	if !ok {
		return nil
	}
	n.logger.Info("CodeSent",
		zap.String("user_id", event.UserID),
		zap.String("phone_number", maskPhone(payload.PhoneNumber)))
	n.sendSMSStub(ctx, payload.PhoneNumber, payload.Code)
	return nil
}

func (n *NotificationService) handlePhoneVerified(ctx context.Context, event events.Event) error {
	n.logger.Info("PhoneVerified", zap.String("user_id", event.UserID))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProfileUpdateFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("ProfileUpdateFailed", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOrganizationCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrganizationCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendSMSStub(_ context.Context, phoneNumber, code string) {
	if strings.TrimSpace(n.cfg.SMSSenderID) == "" {
		return
	}
	n.logger.Debug("sendSMSStub",
		zap.String("sender", n.cfg.SMSSenderID),
		zap.String("phone_number", maskPhone(phoneNumber)),
		zap.Int("code_length", len(code)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))
}

// maskPhone keeps the prefix and last two digits for logs.
func maskPhone(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[:2] + strings.Repeat("*", len(number)-4) + number[len(number)-2:]
}
