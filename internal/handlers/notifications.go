package handlers

import (
	"net/http"
	"strconv"

	"github.com/geula-list/registry/internal/notify"
)

func (a *API) ListNotifications(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseUint(r.URL.Query().Get("personId"), 10, 32)
	if err != nil || personID == 0 {
		writeError(w, http.StatusBadRequest, "personId query parameter required")
		return
	}
	items, err := notify.ListForPerson(a.DB, uint(personID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := notify.MarkRead(a.DB, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}
