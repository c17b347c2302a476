package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/geula-list/registry/internal/models"
	"github.com/geula-list/registry/internal/relations"
)

func (a *API) ListRelationTypes(w http.ResponseWriter, r *http.Request) {
	types, err := relations.ListTypes(a.DB)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

type externalPersonPayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FatherName   string `json:"fatherName"`
	BirthDate    string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Sex          string `json:"sex" validate:"omitempty,oneof=male female"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email" validate:"omitempty,email"`
	Notes        string `json:"notes"`
	IsDeceased   bool   `json:"isDeceased"`
}

func (p *externalPersonPayload) info() *models.ExternalPersonInfo {
	info := &models.ExternalPersonInfo{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FatherName:   p.FatherName,
		Sex:          p.Sex,
		MobileNumber: p.MobileNumber,
		Email:        p.Email,
		Notes:        p.Notes,
		IsDeceased:   p.IsDeceased,
	}
	if p.BirthDate != "" {
		d, _ := time.Parse("2006-01-02", p.BirthDate)
		info.BirthDate = &d
	}
	return info
}

type createRelationRequest struct {
	PersonID          uint                   `json:"personId" validate:"required"`
	RelatedPersonID   *uint                  `json:"relatedPersonId"`
	RelationType      string                 `json:"relationType" validate:"required"`
	RelatedPersonInfo *externalPersonPayload `json:"relatedPersonInfo"`
	Notes             string                 `json:"notes"`
	CreateReverse     *bool                  `json:"createReverse"`
	CheckDuplicates   bool                   `json:"checkDuplicates"`
}

func (a *API) CreateRelation(w http.ResponseWriter, r *http.Request) {
	var req createRelationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	createReverse := true // default, matching the registration flow
	if req.CreateReverse != nil {
		createReverse = *req.CreateReverse
	}
	create := relations.CreateRequest{
		OwnerID:         req.PersonID,
		RelationType:    req.RelationType,
		RelatedPersonID: req.RelatedPersonID,
		Notes:           req.Notes,
		CreateReverse:   createReverse,
		CheckDuplicates: req.CheckDuplicates,
	}
	if req.RelatedPersonInfo != nil {
		create.External = req.RelatedPersonInfo.info()
	}

	rel, err := a.Relations.Create(create)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

type updateRelationRequest struct {
	RelationType *string `json:"relationType"`
	Notes        *string `json:"notes"`
}

func (a *API) UpdateRelation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid relation id")
		return
	}
	var req updateRelationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rel, err := a.Relations.Update(id, relations.UpdateRequest{
		RelationType: req.RelationType,
		Notes:        req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

func (a *API) DeleteRelation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid relation id")
		return
	}
	deleteReverse := r.URL.Query().Get("deleteReverse") != "0"
	if err := a.Relations.Delete(id, deleteReverse); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "relation deleted"})
}

type linkRelationRequest struct {
	RelatedPersonID uint  `json:"relatedPersonId" validate:"required"`
	CreateReverse   *bool `json:"createReverse"`
}

func (a *API) LinkRelation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid relation id")
		return
	}
	var req linkRelationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	createReverse := true
	if req.CreateReverse != nil {
		createReverse = *req.CreateReverse
	}
	rel, err := a.Relations.LinkExternal(id, req.RelatedPersonID, createReverse)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

func (a *API) ListPersonRelations(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return
	}
	details := r.URL.Query().Get("details") != "0"
	views, err := a.Relations.ListForPerson(id, details)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (a *API) FamilyTree(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return
	}
	depth := relations.DefaultTreeDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 6 {
			writeError(w, http.StatusBadRequest, "depth must be between 1 and 6")
			return
		}
		depth = d
	}
	tree, err := a.Relations.BuildTree(id, depth)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

type relativeSearchRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

// SearchRelatives returns existing external-relative records matching the
// given name, for pre-insert duplicate checks driven by the client.
func (a *API) SearchRelatives(w http.ResponseWriter, r *http.Request) {
	var req relativeSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var birth *time.Time
	if req.BirthDate != "" {
		d, _ := time.Parse("2006-01-02", req.BirthDate)
		birth = &d
	}
	candidates, err := a.Relations.FindExternalDuplicates(req.FirstName, req.LastName, birth)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if candidates == nil {
		candidates = []relations.DuplicateCandidate{}
	}
	writeJSON(w, http.StatusOK, candidates)
}
