package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	outboxStore "fringe/internal/adapters/storage/outbox"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
)

func handleOutboxList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"status"})
	filter := outboxStore.ListFilter{
		Status: params.Filters["status"],
		Limit:  params.PerPage,
		Offset: (params.Page - 1) * params.PerPage,
	}

	entries, err := stores.OutboxStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.OutboxStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, entries, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleOutboxRetry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := outboxRunner.ProcessSingle(r.Context(), id); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	entry, err := stores.OutboxStore.GetByID(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategorySystem, audit.ActionUpdate, "outbox", id, "retried outbox entry")
	respondOK(w, entry, "entry processed")
}

func handleOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := outboxRunner.AbandonEntry(r.Context(), id); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	entry, err := stores.OutboxStore.GetByID(r.Context(), id)
	if err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategorySystem, audit.ActionUpdate, "outbox", id, "abandoned outbox entry")
	respondOK(w, entry, "entry abandoned")
}
