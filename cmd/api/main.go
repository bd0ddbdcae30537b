package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/milsabores/pasteleria-golang/internal/assistant"
	"github.com/milsabores/pasteleria-golang/internal/cart"
	"github.com/milsabores/pasteleria-golang/internal/database"
	"github.com/milsabores/pasteleria-golang/internal/handlers"
	"github.com/milsabores/pasteleria-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Main Database Connection (Read/Write) ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to primary database: %v", err)
	}
	defer db.Close()

	// 2. --- Shop Assistant (optional) ---
	// The assistant needs a Gemini key and a read-only DB user. The bakery
	// must keep selling without either, so missing config only disables it.
	var shopAssistant *assistant.Service
	geminiKey := os.Getenv("GEMINI_API_KEY")
	readOnlyDSN := os.Getenv("DB_DSN_READONLY")
	if geminiKey != "" && readOnlyDSN != "" {
		dbReadOnly, err := database.OpenDBWithDSN(readOnlyDSN)
		if err != nil {
			log.Fatalf("Failed to connect to assistant read-only database: %v", err)
		}
		defer dbReadOnly.Close()

		shopAssistant, err = assistant.NewService(geminiKey, dbReadOnly)
		if err != nil {
			log.Fatalf("Failed to initialize shop assistant: %v", err)
		}
		log.Println("Shop assistant enabled")
	} else {
		log.Println("WARNING: GEMINI_API_KEY or DB_DSN_READONLY not set. Shop assistant disabled.")
	}

	// --- Application Setup ---
	// We inject all dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:        db,
		Carts:     cart.NewStore(),
		Assistant: shopAssistant,
	}

	// 3. --- Background Worker ---
	// Abandoned guest carts live only in memory; sweep them periodically so
	// the map does not grow forever.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		log.Println("Background worker started: purging idle carts...")

		for range ticker.C {
			if purged := app.Carts.Purge(2 * time.Hour); purged > 0 {
				log.Printf("Purged %d idle cart(s)", purged)
			}
		}
	}()

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting Pasteleria Mil Sabores API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
