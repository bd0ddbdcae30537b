package handlers

import (
	"database/sql"

	"github.com/milsabores/pasteleria-golang/internal/assistant"
	"github.com/milsabores/pasteleria-golang/internal/cart"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB            // Primary Read/Write connection
	Carts     *cart.Store        // In-memory session carts
	Assistant *assistant.Service // Optional; nil when no API key is configured
}
