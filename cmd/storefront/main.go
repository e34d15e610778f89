package main

import (
	"log"

	"github.com/avc/maya-storefront/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, переменные окружения процесса имеют приоритет
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	application, err := app.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}
