package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milsabores/pasteleria-golang/internal/models"
)

//
// --- Checkout & Order Handlers ---
//

// CheckoutInput is the delivery form. Validation is done field by field in
// validateCheckout so the UI gets per-field messages, not one bind error.
type CheckoutInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	DeliveryDate string `json:"deliveryDate"` // YYYY-MM-DD
}

// Checkout is the handler for POST /pedidos.
// Validation runs first and aborts with no side effects on failure. The
// session cart is then snapshotted into an order inside one transaction,
// and the cart is cleared only after the commit succeeds, so a failed
// submission never loses the shopper's cart.
func (h *Handlers) Checkout(c *gin.Context) {
	// 1. --- Bind JSON ---
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Validate Form Fields (no DB work before this passes) ---
	if fieldErrors := validateCheckout(input, time.Now()); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	// 3. --- Read the Session Cart ---
	ck := h.sessionCart(c)
	lines := ck.Lines()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}
	total := ck.Subtotal()

	// 4. --- Resolve the Customer ---
	// Logged-in shoppers get the order bound to their account email;
	// anonymous checkouts carry the guest marker.
	customerEmail := models.GuestEmail
	if userID_raw, ok := c.Get("userID"); ok {
		var email string
		err := h.DB.QueryRow("SELECT email FROM users WHERE id = ?", userID_raw.(int64)).Scan(&email)
		if err == nil {
			customerEmail = email
		}
	}

	deliveryDate, _ := time.Parse("2006-01-02", input.DeliveryDate) // validated above

	// 5. --- Begin Transaction ---
	tx, err := h.DB.BeginTx(c, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback() // Safety net

	// 6. --- Re-check Stock Under Lock ---
	for _, line := range lines {
		var stock int
		err := tx.QueryRow("SELECT stock_quantity FROM products WHERE id = ? AND status = 'active' FOR UPDATE", line.ProductID).Scan(&stock)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Product %q is no longer available", line.Name)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check stock"})
			return
		}
		if stock < line.Quantity {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Not enough stock for %q", line.Name)})
			return
		}
	}

	// 7. --- Create the Order ---
	now := time.Now()
	orderQuery := `
		INSERT INTO orders
		(customer_email, status, total, recipient_name, phone, email, address, delivery_date, created_at, updated_at)
		VALUES (?, 'recibido', ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.Exec(orderQuery,
		customerEmail, total, input.Name, input.Phone, input.Email,
		input.Address, deliveryDate, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new order ID"})
		return
	}

	// 8. --- Snapshot Items & Deduct Stock ---
	itemQuery := `
		INSERT INTO order_items
		(order_id, product_id, product_name, quantity, unit_price, size, message, glaze_color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stockQuery := "UPDATE products SET stock_quantity = stock_quantity - ? WHERE id = ?"

	for _, line := range lines {
		size := nullableString(line.Personalization.Size)
		message := nullableString(line.Personalization.Message)
		glaze := nullableString(line.Personalization.GlazeColor)

		_, err := tx.Exec(itemQuery, orderID, line.ProductID, line.Name,
			line.Quantity, line.UnitPrice, size, message, glaze, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order item"})
			return
		}

		if _, err := tx.Exec(stockQuery, line.Quantity, line.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deduct stock"})
			return
		}
	}

	// 9. --- Commit, Then Clear the Cart ---
	// On any failure above the rollback leaves cart, order table and stock
	// untouched, so the shopper can simply retry.
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit order"})
		return
	}
	ck.Clear()

	// 10. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order": gin.H{
			"id":            orderID,
			"status":        "recibido",
			"total":         total,
			"customerEmail": customerEmail,
			"deliveryDate":  input.DeliveryDate,
		},
	})
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// GetOrders is the handler for GET /pedidos.
// Admins see every order and may filter with ?usuario=<email>; customers
// only ever see their own, whatever the query says.
func (h *Handlers) GetOrders(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	var role, email string
	err := h.DB.QueryRow("SELECT role, email FROM users WHERE id = ?", userID).Scan(&role, &email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	query := `
		SELECT id, customer_email, status, total, recipient_name, phone, email, address, delivery_date, created_at, updated_at
		FROM orders`
	args := []interface{}{}

	if role == "admin" {
		if filter := c.Query("usuario"); filter != "" {
			query += " WHERE customer_email = ?"
			args = append(args, filter)
		}
	} else {
		query += " WHERE customer_email = ?"
		args = append(args, email)
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerEmail, &o.Status, &o.Total, &o.RecipientName,
			&o.Phone, &o.Email, &o.Address, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order data"})
			return
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating order rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /pedidos/:id.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)
	orderID := c.Param("id")

	var role, email string
	err := h.DB.QueryRow("SELECT role, email FROM users WHERE id = ?", userID).Scan(&role, &email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	// --- Fetch Order ---
	var o models.Order
	queryOrder := `
		SELECT id, customer_email, status, total, recipient_name, phone, email, address, delivery_date, created_at, updated_at
		FROM orders WHERE id = ?`

	err = h.DB.QueryRow(queryOrder, orderID).Scan(
		&o.ID, &o.CustomerEmail, &o.Status, &o.Total, &o.RecipientName,
		&o.Phone, &o.Email, &o.Address, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// --- Verify Ownership ---
	if role != "admin" && o.CustomerEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this order"})
		return
	}

	// --- Fetch Items ---
	queryItems := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, size, message, glaze_color, created_at
		FROM order_items WHERE order_id = ?`

	rows, err := h.DB.Query(queryItems, o.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Size, &item.Message,
			&item.GlazeColor, &item.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order item"})
			return
		}
		o.Items = append(o.Items, item)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating order items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

// UpdateOrderStatusInput defines the JSON for the admin status update.
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

var validOrderStatuses = map[string]bool{
	"recibido":       true,
	"en-preparacion": true,
	"entregado":      true,
	"cancelado":      true,
}

// UpdateOrderStatus is the handler for PATCH /pedidos/:id (admin only).
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validOrderStatuses[input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	result, err := h.DB.Exec(
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		input.Status, time.Now(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
