package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/geula-list/registry/internal/directory"
	"github.com/geula-list/registry/internal/models"
)

type personRequest struct {
	FirstName     string               `json:"firstName" validate:"required"`
	LastName      string               `json:"lastName" validate:"required"`
	FatherName    string               `json:"fatherName"`
	BirthDate     string               `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Sex           string               `json:"sex" validate:"omitempty,oneof=male female"`
	MobileNumber  string               `json:"mobileNumber"`
	Email         string               `json:"email" validate:"omitempty,email"`
	Address       models.Address       `json:"address"`
	ReligiousInfo models.ReligiousInfo `json:"religiousInfo"`
	Notes         string               `json:"notes"`
}

func (req *personRequest) fields() directory.Fields {
	f := directory.Fields{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		FatherName:    req.FatherName,
		Sex:           req.Sex,
		MobileNumber:  req.MobileNumber,
		Email:         req.Email,
		Address:       req.Address,
		ReligiousInfo: req.ReligiousInfo,
		Notes:         req.Notes,
	}
	if req.BirthDate != "" {
		// Format already validated.
		d, _ := time.Parse("2006-01-02", req.BirthDate)
		f.BirthDate = &d
	}
	return f
}

func (a *API) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := a.Directory.Create(req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := a.Directory.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

func (a *API) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return
	}
	p, err := a.Directory.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return
	}
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := a.Directory.Update(id, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid person id")
		return
	}
	if err := a.Directory.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "person deleted"})
}

type personSearchRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
}

func (a *API) SearchPersons(w http.ResponseWriter, r *http.Request) {
	var req personSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var birth *time.Time
	if req.BirthDate != "" {
		d, _ := time.Parse("2006-01-02", req.BirthDate)
		birth = &d
	}
	persons, err := a.Directory.Search(req.FirstName, req.LastName, birth)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// PersonQR serves a QR PNG that opens the person's profile when scanned.
func (a *API) PersonQR(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := a.Directory.Get(id); err != nil {
		http.NotFound(w, r)
		return
	}

	url := "http://" + r.Host + "/api/persons/" + chi.URLParam(r, "id")
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
