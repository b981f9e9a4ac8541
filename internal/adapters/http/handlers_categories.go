package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	categoryStore "fringe/internal/adapters/storage/category"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/category"
)

// categoryRequest is the JSON body for create/update.
type categoryRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Kind         string `json:"kind"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	Active       bool   `json:"active"`
}

func handleCategoryList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"kind", "active"})
	filter := categoryStore.ListFilter{
		Kind:       params.Filters["kind"],
		ActiveOnly: params.Filters["active"] == "true",
		Limit:      params.PerPage,
		Offset:     (params.Page - 1) * params.PerPage,
	}

	categories, err := stores.CategoryStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.CategoryStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, categories, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleCategoryGet(w http.ResponseWriter, r *http.Request) {
	cat, err := stores.CategoryStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondOK(w, cat, "")
}

func handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = category.Slugify(req.Name)
	}
	cat := category.Category{
		ID:           generateID(),
		Name:         req.Name,
		Slug:         slug,
		Kind:         req.Kind,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		Active:       req.Active,
		CreatedAt:    timeNow(),
	}
	if err := cat.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := stores.CategoryStore.GetBySlug(r.Context(), cat.Slug); err == nil {
		respondError(w, http.StatusConflict, "slug is already in use")
		return
	}
	if err := stores.CategoryStore.Save(r.Context(), cat); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionCreate, "category", cat.ID, "created category "+cat.Name)
	respondCreated(w, cat, "category created")
}

func handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	cat, err := stores.CategoryStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat.Name = req.Name
	if req.Slug != "" {
		cat.Slug = req.Slug
	}
	cat.Kind = req.Kind
	cat.Description = req.Description
	cat.DisplayOrder = req.DisplayOrder
	cat.Active = req.Active
	cat.UpdatedAt = timeNow()

	if err := cat.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if existing, err := stores.CategoryStore.GetBySlug(r.Context(), cat.Slug); err == nil && existing.ID != cat.ID {
		respondError(w, http.StatusConflict, "slug is already in use")
		return
	}
	if err := stores.CategoryStore.Save(r.Context(), cat); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "category", cat.ID, "updated category "+cat.Name)
	respondOK(w, cat, "category updated")
}

func handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.CategoryStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	if err := stores.CategoryStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionDelete, "category", id, "deleted category")
	respondOK(w, nil, "category deleted")
}
