package handlers

import (
	"net/http"
	"time"

	"github.com/geula-list/registry/internal/hebdate"
)

// Dates reports today's date on both calendars.
func (a *API) Dates(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]string{
		"gregorianDate": now.Format("2006-01-02"),
		"hebrewDate":    hebdate.Label(now),
	})
}
