package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/project-dashboard/internal/config"
	"github.com/spec-kit/project-dashboard/internal/events"
	"github.com/spec-kit/project-dashboard/internal/persistence"
)

// NotificationService fans domain events out to a Redis channel so dashboard
// clients and side services can react without polling.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redis,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventProjectCreated, n.handleProjectCreated)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	n.publishToChannel(ctx, event)
	return nil
}

func (n *NotificationService) handleProjectCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ProjectCreated", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	n.publishToChannel(ctx, event)
	return nil
}

func (n *NotificationService) publishToChannel(ctx context.Context, event events.Event) {
	if n.redis == nil || n.cfg.Channel == "" {
		return
	}
	raw, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, n.cfg.Channel, raw); err != nil {
		n.logger.Warn("publish event",
			zap.String("channel", n.cfg.Channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
