package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/praceando/event-platform/internal/events"
)

// AuditService writes a structured log entry for every authentication
// decision the platform makes. Rejection reasons stay server-side.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to auth events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginRejected, a.handleLoginRejected)
	a.dispatcher.Subscribe(events.EventTokenRejected, a.handleTokenRejected)
	a.dispatcher.Subscribe(events.EventAccessDenied, a.handleAccessDenied)
}

func (a *AuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	a.logger.Info("LoginSucceeded", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLoginRejected(_ context.Context, event events.Event) error {
	a.logger.Warn("LoginRejected", zap.String("subject", event.Subject), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleTokenRejected(_ context.Context, event events.Event) error {
	a.logger.Warn("TokenRejected", zap.String("path", event.Path), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleAccessDenied(_ context.Context, event events.Event) error {
	a.logger.Warn("AccessDenied",
		zap.String("subject", event.Subject),
		zap.String("path", event.Path),
		zap.Any("payload", event.Payload),
	)
	return nil
}
