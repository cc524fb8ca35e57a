package main

import (
	"log"

	"github.com/addressparser/internal/config"
	"github.com/addressparser/internal/gazetteer"
	"github.com/addressparser/internal/parser"
	"github.com/addressparser/internal/web"
)

func main() {
	config.LoadEnv()

	store, err := gazetteer.OpenPostgres()
	if err != nil {
		log.Fatalf("Failed to connect to gazetteer database: %v", err)
	}
	defer store.Close()

	p, err := parser.New(store, config.FromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize parser: %v", err)
	}

	server := web.NewServer(web.Config{
		Host: config.GetEnv("WEB_HOST", "localhost"),
		Port: config.GetEnvInt("WEB_PORT", 8080),
	}, p)

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
