package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/geula-list/registry/internal/export"
	"github.com/geula-list/registry/internal/models"
)

type exportRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// ExportPersons streams an xlsx workbook with the selected person rows.
func (a *API) ExportPersons(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var persons []models.Person
	if err := a.DB.Where("id IN ?", req.IDs).Find(&persons).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	if len(persons) == 0 {
		writeError(w, http.StatusNotFound, "no persons found for the given ids")
		return
	}

	f, err := export.Workbook(persons)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("handlers: close workbook: %v", err)
		}
	}()

	filename := "members-" + uuid.NewString() + ".xlsx"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(w); err != nil {
		log.Printf("handlers: write workbook: %v", err)
	}
}
