package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fringe/internal/adapters/http/middleware"
	reviewStore "fringe/internal/adapters/storage/review"
	"fringe/internal/application/listutil"
	"fringe/internal/application/orchestrators"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/review"
)

func handleReviewList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"status", "subject", "subject_id"})
	filter := reviewStore.ListFilter{
		Status:    params.Filters["status"],
		Subject:   params.Filters["subject"],
		SubjectID: params.Filters["subject_id"],
		Limit:     params.PerPage,
		Offset:    (params.Page - 1) * params.PerPage,
	}

	reviews, err := stores.ReviewStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.ReviewStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, reviews, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleReviewGet(w http.ResponseWriter, r *http.Request) {
	rev, err := stores.ReviewStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "review not found")
		return
	}
	respondOK(w, rev, "")
}

func handleReviewApprove(w http.ResponseWriter, r *http.Request) {
	moderateReview(w, r, orchestrators.DecisionApprove)
}

func handleReviewReject(w http.ResponseWriter, r *http.Request) {
	moderateReview(w, r, orchestrators.DecisionReject)
}

func moderateReview(w http.ResponseWriter, r *http.Request, decision orchestrators.ModerationDecision) {
	moderatorID := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		moderatorID = sess.AccountID
	}

	rev, err := orchestrators.ExecuteModerateReview(r.Context(), orchestrators.ModerateReviewInput{
		ReviewID:    chi.URLParam(r, "id"),
		Decision:    decision,
		ModeratorID: moderatorID,
	}, orchestrators.ModerateReviewDeps{
		ReviewStore: stores.ReviewStore,
		FireTrigger: fireTriggerDeps(),
		Now:         timeNow,
	})
	if errors.Is(err, review.ErrNotPending) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "review not found")
		return
	}

	action := audit.ActionApprove
	message := "review approved"
	if decision == orchestrators.DecisionReject {
		action = audit.ActionReject
		message = "review rejected"
	}
	recordAudit(r, audit.CategoryEngagement, action, "review", rev.ID, message)
	respondOK(w, rev, message)
}

func handleReviewDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.ReviewStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "review not found")
		return
	}
	if err := stores.ReviewStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEngagement, audit.ActionDelete, "review", id, "deleted review")
	respondOK(w, nil, "review deleted")
}
