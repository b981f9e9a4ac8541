package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	faqStore "fringe/internal/adapters/storage/faq"
	testimonialStore "fringe/internal/adapters/storage/testimonial"
	"fringe/internal/application/listutil"
	"fringe/internal/domain/audit"
	"fringe/internal/domain/faq"
	"fringe/internal/domain/testimonial"
)

// faqRequest is the JSON body for create/update.
type faqRequest struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	Section      string `json:"section"`
	DisplayOrder int    `json:"display_order"`
	Published    bool   `json:"published"`
}

func handleFAQList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"section", "published"})
	filter := faqStore.ListFilter{
		Section:       params.Filters["section"],
		PublishedOnly: params.Filters["published"] == "true",
		Limit:         params.PerPage,
		Offset:        (params.Page - 1) * params.PerPage,
	}

	faqs, err := stores.FAQStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.FAQStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, faqs, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleFAQGet(w http.ResponseWriter, r *http.Request) {
	f, err := stores.FAQStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "faq not found")
		return
	}
	respondOK(w, f, "")
}

func handleFAQCreate(w http.ResponseWriter, r *http.Request) {
	var req faqRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f := faq.FAQ{
		ID:           generateID(),
		Question:     req.Question,
		Answer:       req.Answer,
		Section:      req.Section,
		DisplayOrder: req.DisplayOrder,
		Published:    req.Published,
		CreatedAt:    timeNow(),
	}
	if err := f.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := stores.FAQStore.Save(r.Context(), f); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionCreate, "faq", f.ID, "created faq")
	respondCreated(w, f, "faq created")
}

func handleFAQUpdate(w http.ResponseWriter, r *http.Request) {
	f, err := stores.FAQStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "faq not found")
		return
	}

	var req faqRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	f.Question = req.Question
	f.Answer = req.Answer
	f.Section = req.Section
	f.DisplayOrder = req.DisplayOrder
	f.Published = req.Published
	f.UpdatedAt = timeNow()

	if err := f.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := stores.FAQStore.Save(r.Context(), f); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryCatalogue, audit.ActionUpdate, "faq", f.ID, "updated faq")
	respondOK(w, f, "faq updated")
}

func handleFAQDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.FAQStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "faq not found")
		return
	}
	if err := stores.FAQStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryCatalogue, audit.ActionDelete, "faq", id, "deleted faq")
	respondOK(w, nil, "faq deleted")
}

// testimonialRequest is the JSON body for create/update.
type testimonialRequest struct {
	Author       string `json:"author"`
	Affiliation  string `json:"affiliation"`
	Quote        string `json:"quote"`
	Rating       int    `json:"rating"`
	Approved     bool   `json:"approved"`
	Featured     bool   `json:"featured"`
	DisplayOrder int    `json:"display_order"`
}

func handleTestimonialList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"approved", "featured"})
	filter := testimonialStore.ListFilter{
		ApprovedOnly: params.Filters["approved"] == "true",
		FeaturedOnly: params.Filters["featured"] == "true",
		Limit:        params.PerPage,
		Offset:       (params.Page - 1) * params.PerPage,
	}

	testimonials, err := stores.TestimonialStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.TestimonialStore.Count(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondList(w, testimonials, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleTestimonialGet(w http.ResponseWriter, r *http.Request) {
	t, err := stores.TestimonialStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "testimonial not found")
		return
	}
	respondOK(w, t, "")
}

func handleTestimonialCreate(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t := testimonial.Testimonial{
		ID:           generateID(),
		Author:       req.Author,
		Affiliation:  req.Affiliation,
		Quote:        req.Quote,
		Rating:       req.Rating,
		Approved:     req.Approved,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    timeNow(),
	}
	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := stores.TestimonialStore.Save(r.Context(), t); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryEngagement, audit.ActionCreate, "testimonial", t.ID, "created testimonial by "+t.Author)
	respondCreated(w, t, "testimonial created")
}

func handleTestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	t, err := stores.TestimonialStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "testimonial not found")
		return
	}

	var req testimonialRequest
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.Author = req.Author
	t.Affiliation = req.Affiliation
	t.Quote = req.Quote
	t.Rating = req.Rating
	t.Approved = req.Approved
	t.Featured = req.Featured
	t.DisplayOrder = req.DisplayOrder
	t.UpdatedAt = timeNow()

	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := stores.TestimonialStore.Save(r.Context(), t); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategoryEngagement, audit.ActionUpdate, "testimonial", t.ID, "updated testimonial")
	respondOK(w, t, "testimonial updated")
}

func handleTestimonialDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := stores.TestimonialStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "testimonial not found")
		return
	}
	if err := stores.TestimonialStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryEngagement, audit.ActionDelete, "testimonial", id, "deleted testimonial")
	respondOK(w, nil, "testimonial deleted")
}
