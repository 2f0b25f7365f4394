package worker

import (
	"github.com/spec-kit/employee-service/internal/service"
)

// StartAuditWorker registers audit handlers for employee lifecycle events.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
