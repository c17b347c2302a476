package web

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/geula-list/registry/internal/handlers"
)

func Router(api *handlers.API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handlers.Health)

	// QR image (scannable profile link)
	r.Get("/persons/{id}/qr.png", api.PersonQR)

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/date", api.Dates)

		// Person directory
		ar.Post("/persons", api.CreatePerson)
		ar.Get("/persons", api.ListPersons)
		ar.Post("/persons/search", api.SearchPersons)
		ar.Get("/persons/{id}", api.GetPerson)
		ar.Put("/persons/{id}", api.UpdatePerson)
		ar.Delete("/persons/{id}", api.DeletePerson)

		// Relation graph
		ar.Get("/persons/{id}/relations", api.ListPersonRelations)
		ar.Get("/persons/{id}/tree", api.FamilyTree)
		ar.Get("/relations/types", api.ListRelationTypes)
		ar.Post("/relations", api.CreateRelation)
		ar.Post("/relations/search", api.SearchRelatives)
		ar.Put("/relations/{id}", api.UpdateRelation)
		ar.Delete("/relations/{id}", api.DeleteRelation)
		ar.Post("/relations/{id}/link", api.LinkRelation)

		// Notifications
		ar.Get("/notifications", api.ListNotifications)
		ar.Post("/notifications/{id}/read", api.MarkNotificationRead)

		// Spreadsheet export
		ar.Post("/export", api.ExportPersons)
	})

	return r
}
