package models

import (
	"time"
)

// GuestEmail marks orders placed without a logged-in account.
const GuestEmail = "invitado"

// Order is the model for the 'orders' table
type Order struct {
	ID            int64  `json:"id" db:"id"`
	CustomerEmail string `json:"customerEmail" db:"customer_email"` // account email, or GuestEmail
	Status        string `json:"status" db:"status"`                // e.g. recibido, en-preparacion, entregado, cancelado
	Total         int    `json:"total" db:"total"`

	// --- Delivery form snapshot ---
	RecipientName string    `json:"recipientName" db:"recipient_name"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	Address       string    `json:"address" db:"address"`
	DeliveryDate  time.Time `json:"deliveryDate" db:"delivery_date"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (Not in DB table, populated manually)
	Items []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is the model for the 'order_items' table.
// Product name and price are snapshotted at purchase time so later catalog
// edits never rewrite order history.
type OrderItem struct {
	ID          int64  `json:"id" db:"id"`
	OrderID     int64  `json:"orderId" db:"order_id"`
	ProductID   int64  `json:"productId" db:"product_id"`
	ProductName string `json:"productName" db:"product_name"`
	Quantity    int    `json:"quantity" db:"quantity"`
	UnitPrice   int    `json:"unitPrice" db:"unit_price"`

	// --- Personalization snapshot (Pointers = Clean JSON) ---
	Size       *string `json:"size,omitempty" db:"size"`
	Message    *string `json:"message,omitempty" db:"message"`
	GlazeColor *string `json:"glazeColor,omitempty" db:"glaze_color"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
