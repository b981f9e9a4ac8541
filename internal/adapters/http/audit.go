package web

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"fringe/internal/adapters/http/middleware"
	"fringe/internal/domain/audit"
)

// recordAudit writes an audit event for the current request, best-effort.
// A failed write never fails the request.
func recordAudit(r *http.Request, category audit.Category, action audit.Action, resourceType, resourceID, description string) {
	event := audit.Event{
		ID:           generateID(),
		Timestamp:    timeNow(),
		Category:     category,
		Action:       action,
		Severity:     audit.SeverityInfo,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Description:  description,
		IPAddress:    r.RemoteAddr,
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		event.ActorID = sess.AccountID
		event.ActorEmail = sess.Email
	}
	if err := stores.AuditStore.Record(r.Context(), event); err != nil {
		log.Error().Err(err).Str("action", string(action)).Msg("audit record failed")
	}
}
