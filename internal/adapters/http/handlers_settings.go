package web

import (
	"net/http"

	"fringe/internal/domain/audit"
	settingsDomain "fringe/internal/domain/settings"
)

func handleSettingsList(w http.ResponseWriter, r *http.Request) {
	all, err := stores.SettingsStore.All(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondOK(w, all, "")
}

// handleSettingsUpdate accepts a key/value map and upserts the known keys
// in a single transaction. Unknown keys reject the whole request.
func handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req) == 0 {
		respondError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	now := timeNow()
	values := make([]settingsDomain.Setting, 0, len(req))
	for key, value := range req {
		s := settingsDomain.Setting{Key: key, Value: value, UpdatedAt: now}
		if err := s.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error()+": "+key)
			return
		}
		values = append(values, s)
	}

	if err := stores.SettingsStore.UpsertMany(r.Context(), values); err != nil {
		internalError(w, err)
		return
	}

	recordAudit(r, audit.CategorySettings, audit.ActionUpdate, "settings", "", "updated site settings")

	all, err := stores.SettingsStore.All(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	respondOK(w, all, "settings updated")
}
