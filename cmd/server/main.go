package main

import (
	"log"

	"github.com/alumni-connect/connect-api/internal/config"
	"github.com/alumni-connect/connect-api/internal/server"
	"github.com/alumni-connect/connect-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := store.NewGormStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer db.Close()

	srv := server.NewServer(cfg, db).NewHTTPServer()
	log.Printf("listening on %s", cfg.BindAddr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
