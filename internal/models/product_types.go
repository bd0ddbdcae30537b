package models

import (
	"time"
)

// Product is the model for the 'products' table.
// Prices are integer Chilean pesos (CLP has no cents).
type Product struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	CategoryCode string `json:"categoryCode" db:"category_code"` // e.g. "TC" = Tortas Cuadradas

	// --- Pricing & Stock ---
	Price         int `json:"price" db:"price"`
	StockQuantity int `json:"stock" db:"stock_quantity"`

	// --- Configuration ---
	// Personalizable products accept size/message/glaze options at add-to-cart.
	Personalizable bool   `json:"personalizable" db:"personalizable"`
	Status         string `json:"status" db:"status"` // 'active' or 'discontinued'

	// --- Media ---
	ImageURL *string `json:"imageUrl,omitempty" db:"image_url"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Flattened field for UI convenience (populated manually if needed)
	CategoryName string `json:"categoryName,omitempty" db:"-"`
}
