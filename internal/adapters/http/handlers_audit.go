package web

import (
	"net/http"
	"time"

	auditStore "fringe/internal/adapters/storage/audit"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
)

func handleAuditList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"category", "action", "actor_id"})
	filter := auditStore.ListFilter{
		Category: audit.Category(params.Filters["category"]),
		Action:   audit.Action(params.Filters["action"]),
		ActorID:  params.Filters["actor_id"],
		Limit:    params.PerPage,
		Offset:   (params.Page - 1) * params.PerPage,
	}

	q := r.URL.Query()
	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid 'from' timestamp")
			return
		}
		filter.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid 'to' timestamp")
			return
		}
		filter.To = t
	}

	events, err := stores.AuditStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.AuditStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, events, listutil.NewPageInfo(params.Page, params.PerPage, total))
}
