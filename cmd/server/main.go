package main

import (
	"log"
	"net/http"
	"os"

	"github.com/geula-list/registry/internal/db"
	"github.com/geula-list/registry/internal/directory"
	"github.com/geula-list/registry/internal/handlers"
	"github.com/geula-list/registry/internal/relations"
	"github.com/geula-list/registry/internal/scheduler"
	"github.com/geula-list/registry/internal/web"
)

func main() {
	// Init DB (creates registry.db in working dir unless REGISTRY_DB is set)
	if err := db.Init(); err != nil {
		log.Fatalf("db init: %v", err)
	}
	gdb := db.Conn()

	if err := relations.EnsureSeeded(gdb); err != nil {
		log.Fatalf("seed relation types: %v", err)
	}

	dir := directory.NewService(gdb)
	rel := relations.NewService(gdb)
	scheduler.Start(gdb, dir)

	api := handlers.New(gdb, dir, rel)
	r := web.Router(api)

	addr := getEnv("ADDR", ":8080")
	log.Printf("community registry listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
