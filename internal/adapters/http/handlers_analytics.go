package web

import (
	"net/http"

	"fringe/internal/application/projections"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := projections.GetDashboard(r.Context(), projections.DashboardDeps{
		CourseStore:     stores.CourseStore,
		ServiceStore:    stores.ServiceStore,
		ContactStore:    stores.ContactStore,
		SubscriberStore: stores.SubscriberStore,
		ReviewStore:     stores.ReviewStore,
		AuditStore:      stores.AuditStore,
		Now:             timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	respondOK(w, dashboard, "")
}
