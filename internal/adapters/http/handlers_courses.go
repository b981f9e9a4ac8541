package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	courseStore "fringe/internal/adapters/storage/course"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/category"
	"fringe/internal/domain/course"
)

// courseSortColumns are the sort keys the list endpoint accepts.
var courseSortColumns = []string{"title", "price", "start_date", "status", "created_at"}

// courseRequest is the JSON body for create/update.
type courseRequest struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	CategoryID    string `json:"category_id"`
	Description   string `json:"description"`
	PriceCents    int    `json:"price_cents"`
	DurationWeeks int    `json:"duration_weeks"`
	Level         string `json:"level"`
	Capacity      int    `json:"capacity"`
	StartDate     string `json:"start_date"` // RFC 3339; empty clears
	ImageURL      string `json:"image_url"`
	Featured      bool   `json:"featured"`
}

func handleCourseList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), courseSortColumns, []string{"category_id", "status", "level"})
	filter := courseStore.ListFilter{
		CategoryID: params.Filters["category_id"],
		Status:     params.Filters["status"],
		Level:      params.Filters["level"],
		Search:     params.Search,
		Sort:       params.Sort,
		Dir:        params.Dir,
		Limit:      params.PerPage,
		Offset:     (params.Page - 1) * params.PerPage,
	}

	courses, err := stores.CourseStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.CourseStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, courses, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleCourseGet(w http.ResponseWriter, r *http.Request) {
	c, err := stores.CourseStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}
	respondOK(w, c, "")
}

func handleCourseCreate(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := course.Course{
		ID:        generateID(),
		Status:    course.StatusDraft,
		CreatedAt: timeNow(),
	}
	if err := applyCourseRequest(&c, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := stores.CourseStore.GetBySlug(r.Context(), c.Slug); err == nil {
		respondError(w, http.StatusConflict, "slug is already in use")
		return
	}
	if err := stores.CourseStore.Save(r.Context(), c); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionCreate, "course", c.ID, "created course "+c.Title)
	respondCreated(w, c, "course created")
}

func handleCourseUpdate(w http.ResponseWriter, r *http.Request) {
	c, err := stores.CourseStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}

	var req courseRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := applyCourseRequest(&c, req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.UpdatedAt = timeNow()

	if existing, err := stores.CourseStore.GetBySlug(r.Context(), c.Slug); err == nil && existing.ID != c.ID {
		respondError(w, http.StatusConflict, "slug is already in use")
		return
	}
	if err := stores.CourseStore.Save(r.Context(), c); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "course", c.ID, "updated course "+c.Title)
	respondOK(w, c, "course updated")
}

func handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.CourseStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}
	if err := stores.CourseStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionDelete, "course", id, "deleted course")
	respondOK(w, nil, "course deleted")
}

func handleCoursePublish(w http.ResponseWriter, r *http.Request) {
	c, err := stores.CourseStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}
	if err := c.Publish(timeNow()); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	c.UpdatedAt = timeNow()
	if err := stores.CourseStore.Save(r.Context(), c); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "course", c.ID, "published course "+c.Title)
	respondOK(w, c, "course published")
}

func handleCourseArchive(w http.ResponseWriter, r *http.Request) {
	c, err := stores.CourseStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "course not found")
		return
	}
	if err := c.Archive(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	c.UpdatedAt = timeNow()
	if err := stores.CourseStore.Save(r.Context(), c); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "course", c.ID, "archived course "+c.Title)
	respondOK(w, c, "course archived")
}

// applyCourseRequest copies request fields onto the course and validates it.
func applyCourseRequest(c *course.Course, req courseRequest) error {
	c.Title = req.Title
	if req.Slug != "" {
		c.Slug = req.Slug
	} else if c.Slug == "" {
		c.Slug = category.Slugify(req.Title)
	}
	c.CategoryID = req.CategoryID
	c.Description = req.Description
	c.PriceCents = req.PriceCents
	c.DurationWeeks = req.DurationWeeks
	if req.Level == "" {
		req.Level = course.LevelAllLevels
	}
	c.Level = req.Level
	c.Capacity = req.Capacity
	c.ImageURL = req.ImageURL
	c.Featured = req.Featured
	if req.StartDate != "" {
		t, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return err
		}
		c.StartDate = t
	} else {
		c.StartDate = time.Time{}
	}
	return c.Validate()
}
