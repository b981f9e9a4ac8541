package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	contactStore "fringe/internal/adapters/storage/contact"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
)

func handleContactList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"status"})
	filter := contactStore.ListFilter{
		Status: params.Filters["status"],
		Search: params.Search,
		Limit:  params.PerPage,
		Offset: (params.Page - 1) * params.PerPage,
	}

	messages, err := stores.ContactStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.ContactStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, messages, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

// handleContactGet returns a message and marks it read on first open.
func handleContactGet(w http.ResponseWriter, r *http.Request) {
	msg, err := stores.ContactStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}
	if msg.ReadAt.IsZero() {
		msg.MarkRead(timeNow())
		if err := stores.ContactStore.Save(r.Context(), msg); err != nil {
			internalError(w, err)
			return
		}
	}
	respondOK(w, msg, "")
}

func handleContactMarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := stores.ContactStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}
	msg.MarkRead(timeNow())
	if err := stores.ContactStore.Save(r.Context(), msg); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEngagement, audit.ActionUpdate, "contact", msg.ID, "marked message read")
	respondOK(w, msg, "message marked read")
}

func handleContactMarkReplied(w http.ResponseWriter, r *http.Request) {
	msg, err := stores.ContactStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}
	msg.MarkReplied(timeNow())
	if err := stores.ContactStore.Save(r.Context(), msg); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEngagement, audit.ActionUpdate, "contact", msg.ID, "marked message replied")
	respondOK(w, msg, "message marked replied")
}

func handleContactDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.ContactStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "message not found")
		return
	}
	if err := stores.ContactStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEngagement, audit.ActionDelete, "contact", id, "deleted message")
	respondOK(w, nil, "message deleted")
}
