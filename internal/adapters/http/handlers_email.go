package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fringe/internal/adapters/http/middleware"
	templateStore "fringe/internal/adapters/storage/emailtemplate"
	"fringe/internal/application/listutil"
	"fringe/internal/application/orchestrators"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/emailtemplate"
)

// templateRequest is the JSON body for create/update.
type templateRequest struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Active  bool   `json:"active"`
}

func handleTemplateList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"active"})
	filter := templateStore.ListFilter{
		ActiveOnly: params.Filters["active"] == "true",
		Limit:      params.PerPage,
		Offset:     (params.Page - 1) * params.PerPage,
	}

	templates, err := stores.TemplateStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.TemplateStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, templates, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleTemplateGet(w http.ResponseWriter, r *http.Request) {
	tpl, err := stores.TemplateStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	respondOK(w, tpl, "")
}

func handleTemplateCreate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tpl := emailtemplate.Template{
		ID:        generateID(),
		Key:       req.Key,
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
		Active:    req.Active,
		CreatedAt: timeNow(),
	}
	if err := tpl.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := stores.TemplateStore.GetByKey(r.Context(), tpl.Key); err == nil {
		respondError(w, http.StatusConflict, "key is already in use")
		return
	}
	if err := stores.TemplateStore.Save(r.Context(), tpl); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryEmail, audit.ActionCreate, "template", tpl.ID, "created template "+tpl.Key)
	respondCreated(w, tpl, "template created")
}

func handleTemplateUpdate(w http.ResponseWriter, r *http.Request) {
	tpl, err := stores.TemplateStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}

	var req templateRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl.Key = req.Key
	tpl.Name = req.Name
	tpl.Subject = req.Subject
	tpl.Body = req.Body
	tpl.Active = req.Active
	tpl.UpdatedAt = timeNow()

	if err := tpl.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if existing, err := stores.TemplateStore.GetByKey(r.Context(), tpl.Key); err == nil && existing.ID != tpl.ID {
		respondError(w, http.StatusConflict, "key is already in use")
		return
	}
	if err := stores.TemplateStore.Save(r.Context(), tpl); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryEmail, audit.ActionUpdate, "template", tpl.ID, "updated template "+tpl.Key)
	respondOK(w, tpl, "template updated")
}

func handleTemplateDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.TemplateStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if err := stores.TemplateStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEmail, audit.ActionDelete, "template", id, "deleted template")
	respondOK(w, nil, "template deleted")
}

// triggerRequest is the JSON body for create/update.
type triggerRequest struct {
	Event       string `json:"event"`
	TemplateKey string `json:"template_key"`
	Recipient   string `json:"recipient"`
	Enabled     bool   `json:"enabled"`
}

func handleTriggerList(w http.ResponseWriter, r *http.Request) {
	triggers, err := stores.TriggerStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondOK(w, triggers, "")
}

func handleTriggerCreate(w http.ResponseWriter, r *http.Request) {
	var req triggerRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trg := emailtemplate.Trigger{
		ID:          generateID(),
		Event:       req.Event,
		TemplateKey: req.TemplateKey,
		Recipient:   req.Recipient,
		Enabled:     req.Enabled,
		CreatedAt:   timeNow(),
	}
	if err := trg.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := stores.TemplateStore.GetByKey(r.Context(), trg.TemplateKey); err != nil {
		respondError(w, http.StatusBadRequest, "template_key does not match any template")
		return
	}
	if err := stores.TriggerStore.Save(r.Context(), trg); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryEmail, audit.ActionCreate, "trigger", trg.ID, "created trigger for "+trg.Event)
	respondCreated(w, trg, "trigger created")
}

func handleTriggerUpdate(w http.ResponseWriter, r *http.Request) {
	trg, err := stores.TriggerStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "trigger not found")
		return
	}

	var req triggerRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trg.Event = req.Event
	trg.TemplateKey = req.TemplateKey
	trg.Recipient = req.Recipient
	trg.Enabled = req.Enabled
	trg.UpdatedAt = timeNow()

	if err := trg.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := stores.TemplateStore.GetByKey(r.Context(), trg.TemplateKey); err != nil {
		respondError(w, http.StatusBadRequest, "template_key does not match any template")
		return
	}
	if err := stores.TriggerStore.Save(r.Context(), trg); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryEmail, audit.ActionUpdate, "trigger", trg.ID, "updated trigger for "+trg.Event)
	respondOK(w, trg, "trigger updated")
}

func handleTriggerDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.TriggerStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "trigger not found")
		return
	}
	if err := stores.TriggerStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEmail, audit.ActionDelete, "trigger", id, "deleted trigger")
	respondOK(w, nil, "trigger deleted")
}

// campaignRequest is the JSON body for a campaign send.
type campaignRequest struct {
	TemplateKey string `json:"template_key"`
}

func handleCampaignSend(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		actorID = sess.AccountID
	}

	result, err := orchestrators.ExecuteSendCampaign(r.Context(), orchestrators.SendCampaignInput{
		TemplateKey: req.TemplateKey,
		ActorID:     actorID,
	}, orchestrators.SendCampaignDeps{
		TemplateStore:   stores.TemplateStore,
		SubscriberStore: stores.SubscriberStore,
		OutboxStore:     stores.OutboxStore,
		GenerateID:      generateID,
		Now:             timeNow,
		ReplyTo:         emailReplyTo,
	})
	switch {
	case errors.Is(err, orchestrators.ErrTemplateInactive), errors.Is(err, orchestrators.ErrNoSubscribers):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusNotFound, "template not found")
		return
	}

	recordAudit(r, audit.CategoryEmail, audit.ActionSend, "campaign", req.TemplateKey, "queued campaign send")
	respondOK(w, result, "campaign queued")
}
