package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	offerStore "fringe/internal/adapters/storage/offer"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/offer"
)

// offerRequest is the JSON body for create/update.
type offerRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	DiscountPct int    `json:"discount_pct"`
	Target      string `json:"target"`
	TargetID    string `json:"target_id"`
	ValidFrom   string `json:"valid_from"`  // RFC 3339; empty clears
	ValidUntil  string `json:"valid_until"` // RFC 3339; empty clears
	Active      bool   `json:"active"`
}

func handleOfferList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"target", "active"})
	filter := offerStore.ListFilter{
		Target:     params.Filters["target"],
		ActiveOnly: params.Filters["active"] == "true",
		Limit:      params.PerPage,
		Offset:     (params.Page - 1) * params.PerPage,
	}

	offers, err := stores.OfferStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.OfferStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, offers, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleOfferGet(w http.ResponseWriter, r *http.Request) {
	o, err := stores.OfferStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "offer not found")
		return
	}
	respondOK(w, o, "")
}

func handleOfferCreate(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o := offer.Offer{
		ID:        generateID(),
		CreatedAt: timeNow(),
	}
	if err := applyOfferRequest(&o, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if existing, err := stores.OfferStore.GetByCode(r.Context(), o.Code); err == nil && existing.ID != o.ID {
		respondError(w, http.StatusConflict, "code is already in use")
		return
	}
	if err := stores.OfferStore.Save(r.Context(), o); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionCreate, "offer", o.ID, "created offer "+o.Code)
	respondCreated(w, o, "offer created")
}

func handleOfferUpdate(w http.ResponseWriter, r *http.Request) {
	o, err := stores.OfferStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "offer not found")
		return
	}

	var req offerRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := applyOfferRequest(&o, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	o.UpdatedAt = timeNow()

	if existing, err := stores.OfferStore.GetByCode(r.Context(), o.Code); err == nil && existing.ID != o.ID {
		respondError(w, http.StatusConflict, "code is already in use")
		return
	}
	if err := stores.OfferStore.Save(r.Context(), o); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "offer", o.ID, "updated offer "+o.Code)
	respondOK(w, o, "offer updated")
}

func handleOfferDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.OfferStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "offer not found")
		return
	}
	if err := stores.OfferStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionDelete, "offer", id, "deleted offer")
	respondOK(w, nil, "offer deleted")
}

// applyOfferRequest copies request fields onto the offer and validates it.
func applyOfferRequest(o *offer.Offer, req offerRequest) error {
	o.Title = req.Title
	o.Description = req.Description
	o.Code = req.Code
	o.DiscountPct = req.DiscountPct
	o.Target = req.Target
	o.TargetID = req.TargetID
	o.Active = req.Active

	o.ValidFrom = time.Time{}
	if req.ValidFrom != "" {
		t, err := time.Parse(time.RFC3339, req.ValidFrom)
		if err != nil {
			return err
		}
		o.ValidFrom = t
	}
	o.ValidUntil = time.Time{}
	if req.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			return err
		}
		o.ValidUntil = t
	}
	return o.Validate()
}
