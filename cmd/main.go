package main

import (
	"context"
	"log"

	"taskpro/api/app"
	"taskpro/api/config"
)

func main() {
	cfg := config.Load()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if err := application.Run(context.Background()); err != nil {
		log.Printf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
