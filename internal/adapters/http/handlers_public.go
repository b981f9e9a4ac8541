package web

import (
	"errors"
	"net/http"

	courseStore "fringe/internal/adapters/storage/course"
	faqStore "fringe/internal/adapters/storage/faq"
	serviceStore "fringe/internal/adapters/storage/service"
	testimonialStore "fringe/internal/adapters/storage/testimonial"
	"fringe/internal/application/listutil"
	"fringe/internal/application/orchestrators"
	"fringe/internal/domain/course"
	"fringe/internal/domain/review"
	"fringe/internal/domain/service"
)

// contactSubmission is the public contact form body.
type contactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func handlePublicContact(w http.ResponseWriter, r *http.Request) {
	var req contactSubmission
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Body:    req.Message,
	}, orchestrators.SubmitContactDeps{
		ContactStore: stores.ContactStore,
		FireTrigger:  fireTriggerDeps(),
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondCreated(w, map[string]string{"id": msg.ID}, "thanks, we'll be in touch")
}

// subscribeSubmission is the public newsletter signup body.
type subscribeSubmission struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func handlePublicSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeSubmission
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := orchestrators.ExecuteSubscribe(r.Context(), orchestrators.SubscribeInput{
		Email: req.Email,
		Name:  req.Name,
	}, orchestrators.SubscribeDeps{
		SubscriberStore: stores.SubscriberStore,
		FireTrigger:     fireTriggerDeps(),
		GenerateID:      generateID,
		Now:             timeNow,
	})
	if errors.Is(err, orchestrators.ErrAlreadySubscribed) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondCreated(w, map[string]string{"id": sub.ID}, "you're subscribed")
}

func handlePublicUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeSubmission
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Don't reveal whether the address was on the list.
	_ = orchestrators.ExecuteUnsubscribe(r.Context(), req.Email, orchestrators.UnsubscribeDeps{
		SubscriberStore: stores.SubscriberStore,
		Now:             timeNow,
	})
	respondOK(w, nil, "you're unsubscribed")
}

// reviewSubmission is the public review form body.
type reviewSubmission struct {
	Subject   string `json:"subject"`
	SubjectID string `json:"subject_id"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// handlePublicReviewSubmit stores a review as pending moderation.
func handlePublicReviewSubmit(w http.ResponseWriter, r *http.Request) {
	var req reviewSubmission
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rev := review.Review{
		ID:          generateID(),
		Subject:     req.Subject,
		SubjectID:   req.SubjectID,
		Author:      req.Author,
		Email:       req.Email,
		Rating:      req.Rating,
		Title:       req.Title,
		Body:        req.Body,
		Status:      review.StatusPending,
		SubmittedAt: timeNow(),
	}
	if err := rev.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := stores.ReviewStore.Save(r.Context(), rev); err != nil {
		internalError(w, err)
		return
	}
	respondCreated(w, map[string]string{"id": rev.ID}, "review submitted for moderation")
}

func handlePublicCourses(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"category_id", "level"})
	filter := courseStore.ListFilter{
		CategoryID: params.Filters["category_id"],
		Level:      params.Filters["level"],
		Status:     course.StatusPublished,
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

func handlePublicServices(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"category_id"})
	filter := serviceStore.ListFilter{
		CategoryID: params.Filters["category_id"],
		Status:     service.StatusPublished,
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

func handlePublicFAQs(w http.ResponseWriter, r *http.Request) {
	filter := faqStore.ListFilter{
		Section:       r.URL.Query().Get("section"),
		PublishedOnly: true,
	}
	faqs, err := stores.FAQStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondOK(w, faqs, "")
}

func handlePublicTestimonials(w http.ResponseWriter, r *http.Request) {
	filter := testimonialStore.ListFilter{
		ApprovedOnly: true,
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}
	testimonials, err := stores.TestimonialStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondOK(w, testimonials, "")
}
