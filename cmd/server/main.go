package main

import (
	"log"

	"github.com/joho/godotenv"

	"quotedesk/go_backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("main: no .env file, using process environment")
	}
	app.Run()
}
