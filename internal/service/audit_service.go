package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/events"
)

const (
	auditTrailKey = "employee:audit"
	auditTrailMax = 1000
)

// AuditService records employee lifecycle events. Entries go to the log and,
// when Redis is available, to a capped audit list. Failures here never fail
// the originating request.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *redis.Client
}

// NewAuditService creates the service. The redis client may be nil.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, redisClient *redis.Client) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redisClient,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventEmployeeCreated, a.record)
	a.dispatcher.Subscribe(events.EventEmployeeUpdated, a.record)
	a.dispatcher.Subscribe(events.EventEmployeeDeactivated, a.record)
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.Int64("employee_id", event.EmployeeID),
		zap.Int64("actor_id", event.Actor.UserID),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload),
	)

	if a.redis == nil {
		return nil
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	pipe := a.redis.Pipeline()
	pipe.LPush(ctx, auditTrailKey, raw)
	pipe.LTrim(ctx, auditTrailKey, 0, auditTrailMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		a.logger.Debug("audit trail write failed", zap.Error(err))
	}
	return nil
}
