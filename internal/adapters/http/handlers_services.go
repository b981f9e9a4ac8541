package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	serviceStore "fringe/internal/adapters/storage/service"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/category"
	"fringe/internal/domain/service"
)

// serviceSortColumns are the sort keys the list endpoint accepts.
var serviceSortColumns = []string{"title", "price", "status", "created_at"}

// serviceRequest is the JSON body for create/update.
type serviceRequest struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	CategoryID      string `json:"category_id"`
	Description     string `json:"description"`
	PriceCents      int    `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	ImageURL        string `json:"image_url"`
	Status          string `json:"status"`
	Featured        bool   `json:"featured"`
}

func handleServiceList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), serviceSortColumns, []string{"category_id", "status"})
	filter := serviceStore.ListFilter{
		CategoryID: params.Filters["category_id"],
		Status:     params.Filters["status"],
		Search:     params.Search,
		Sort:       params.Sort,
		Dir:        params.Dir,
		Limit:      params.PerPage,
		Offset:     (params.Page - 1) * params.PerPage,
	}

	services, err := stores.ServiceStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.ServiceStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, services, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleServiceGet(w http.ResponseWriter, r *http.Request) {
	svc, err := stores.ServiceStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	respondOK(w, svc, "")
}

func handleServiceCreate(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc := service.Service{
		ID:        generateID(),
		CreatedAt: timeNow(),
	}
	if err := applyServiceRequest(&svc, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := stores.ServiceStore.GetBySlug(r.Context(), svc.Slug); err == nil {
		respondError(w, http.StatusConflict, "slug is already in use")
		return
	}
	if err := stores.ServiceStore.Save(r.Context(), svc); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionCreate, "service", svc.ID, "created service "+svc.Title)
	respondCreated(w, svc, "service created")
}

func handleServiceUpdate(w http.ResponseWriter, r *http.Request) {
	svc, err := stores.ServiceStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}

	var req serviceRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := applyServiceRequest(&svc, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	svc.UpdatedAt = timeNow()

	if existing, err := stores.ServiceStore.GetBySlug(r.Context(), svc.Slug); err == nil && existing.ID != svc.ID {
		respondError(w, http.StatusConflict, "slug is already in use")
		return
	}
	if err := stores.ServiceStore.Save(r.Context(), svc); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "service", svc.ID, "updated service "+svc.Title)
	respondOK(w, svc, "service updated")
}

func handleServiceDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.ServiceStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	if err := stores.ServiceStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionDelete, "service", id, "deleted service")
	respondOK(w, nil, "service deleted")
}

// applyServiceRequest copies request fields onto the service and validates it.
func applyServiceRequest(svc *service.Service, req serviceRequest) error {
	svc.Title = req.Title
	if req.Slug != "" {
		svc.Slug = req.Slug
	} else if svc.Slug == "" {
		svc.Slug = category.Slugify(req.Title)
	}
	svc.CategoryID = req.CategoryID
	svc.Description = req.Description
	svc.PriceCents = req.PriceCents
	svc.DurationMinutes = req.DurationMinutes
	svc.ImageURL = req.ImageURL
	if req.Status == "" {
		req.Status = service.StatusDraft
	}
	svc.Status = req.Status
	svc.Featured = req.Featured
	return svc.Validate()
}
