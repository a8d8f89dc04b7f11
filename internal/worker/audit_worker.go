package worker

import (
	"github.com/praceando/event-platform/internal/service"
)

// StartAuditWorker registers audit handlers for auth events.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
