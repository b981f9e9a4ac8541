package web

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fringe/internal/adapters/http/middleware"
	subscriberStore "fringe/internal/adapters/storage/subscriber"
	"fringe/internal/application/listutil"
	"fringe/internal/application/orchestrators"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/subscriber"
)

func handleSubscriberList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"status", "source"})
	filter := subscriberStore.ListFilter{
		Status: params.Filters["status"],
		Source: params.Filters["source"],
		Search: params.Search,
		Limit:  params.PerPage,
		Offset: (params.Page - 1) * params.PerPage,
	}

	subs, err := stores.SubscriberStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.SubscriberStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, subs, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

// subscriberRequest is the JSON body for a manual add from the console.
type subscriberRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func handleSubscriberCreate(w http.ResponseWriter, r *http.Request) {
	var req subscriberRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := orchestrators.ExecuteSubscribe(r.Context(), orchestrators.SubscribeInput{
		Email:  req.Email,
		Name:   req.Name,
		Source: subscriber.SourceManual,
	}, orchestrators.SubscribeDeps{
		SubscriberStore: stores.SubscriberStore,
		FireTrigger:     fireTriggerDeps(),
		GenerateID:      generateID,
		Now:             timeNow,
	})
	if err == orchestrators.ErrAlreadySubscribed {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	recordAudit(r, audit.CategoryEngagement, audit.ActionCreate, "subscriber", sub.ID, "added subscriber "+sub.Email)
	respondCreated(w, sub, "subscriber added")
}

func handleSubscriberDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.SubscriberStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "subscriber not found")
		return
	}
	if err := stores.SubscriberStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEngagement, audit.ActionDelete, "subscriber", id, "deleted subscriber")
	respondOK(w, nil, "subscriber deleted")
}

// handleSubscriberExport streams the filtered subscriber list as CSV.
func handleSubscriberExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := subscriberStore.ListFilter{
		Status: q.Get("status"),
		Source: q.Get("source"),
	}
	subs, err := stores.SubscriberStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}

	filename := fmt.Sprintf("subscribers-%s.csv", timeNow().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "EMAIL", "NAME", "STATUS", "SOURCE", "SUBSCRIBED_AT"})
	for _, s := range subs {
		subscribedAt := ""
		if !s.SubscribedAt.IsZero() {
			subscribedAt = s.SubscribedAt.Format("2006-01-02")
		}
		_ = cw.Write([]string{s.ID, s.Email, s.Name, s.Status, s.Source, subscribedAt})
	}
	cw.Flush()

	recordAudit(r, audit.CategoryEngagement, audit.ActionExport, "subscriber", "", fmt.Sprintf("exported %d subscribers", len(subs)))
}

// handleSubscriberImport accepts a CSV upload, either as a multipart "file"
// part or as the raw request body.
func handleSubscriberImport(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = r.Body
	if err := r.ParseMultipartForm(10 << 20); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing file upload")
			return
		}
		defer file.Close()
		reader = file
	}

	actorID := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		actorID = sess.AccountID
	}

	q := r.URL.Query()
	result, err := orchestrators.ExecuteImportSubscribers(r.Context(), orchestrators.ImportSubscribersInput{
		Reader:     reader,
		ActorID:    actorID,
		DryRun:     q.Get("dry_run") == "true",
		UpdateMode: q.Get("update") == "true",
	}, orchestrators.ImportSubscribersDeps{
		SubscriberStore: stores.SubscriberStore,
		GenerateID:      generateID,
		Now:             timeNow,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !result.DryRun {
		recordAudit(r, audit.CategoryEngagement, audit.ActionImport, "subscriber", "",
			fmt.Sprintf("imported subscribers: %d created, %d updated, %d skipped", result.Created, result.Updated, result.Skipped))
	}
	respondOK(w, result, "import complete")
}
