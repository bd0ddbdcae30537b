package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milsabores/pasteleria-golang/internal/format"
	"github.com/milsabores/pasteleria-golang/internal/models"
)

//
// --- Catalog Handlers ---
//

// scanProduct reads one product row in the canonical column order.
func scanProduct(row interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CategoryCode,
		&p.Price,
		&p.StockQuantity,
		&p.Personalizable,
		&p.Status,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == nil {
		p.CategoryName = format.CategoryName(p.CategoryCode)
	}
	return p, err
}

const productColumns = `id, name, description, category_code, price, stock_quantity, personalizable, status, image_url, created_at, updated_at`

// GetAllProducts is the handler for GET /productos.
// Supports an optional ?categoria=<code> filter.
func (h *Handlers) GetAllProducts(c *gin.Context) {
	// 1. --- Build Query ---
	query := "SELECT " + productColumns + " FROM products WHERE status = 'active'"
	args := []interface{}{}

	if category := c.Query("categoria"); category != "" {
		query += " AND category_code = ?"
		args = append(args, category)
	}
	query += " ORDER BY name ASC"

	// 2. --- Execute Query ---
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	// 3. --- Scan Rows into Slice ---
	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan product row"})
			return
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating product rows"})
		return
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct is the handler for GET /productos/:id.
// A missing id is a not-found response for the UI, never a fault.
func (h *Handlers) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	row := h.DB.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", productID)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p})
}

// ProductInput defines the JSON for creating or editing a product.
type ProductInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	CategoryCode   string  `json:"categoryCode" binding:"required"`
	Price          int     `json:"price" binding:"required,gt=0"`
	StockQuantity  int     `json:"stock" binding:"gte=0"`
	Personalizable bool    `json:"personalizable"`
	ImageURL       *string `json:"imageUrl"`
}

// CreateProduct is the handler for POST /productos (admin only).
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	query := `
		INSERT INTO products
		(name, description, category_code, price, stock_quantity, personalizable, status, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'active', ?, ?, ?)`

	result, err := h.DB.Exec(query,
		input.Name, input.Description, input.CategoryCode, input.Price,
		input.StockQuantity, input.Personalizable, input.ImageURL, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	productID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new product ID"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Product created successfully",
		"productId": productID,
	})
}

// UpdateProductInput uses pointers so PATCH can tell "absent" from "zero".
type UpdateProductInput struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	CategoryCode   *string `json:"categoryCode"`
	Price          *int    `json:"price"`
	StockQuantity  *int    `json:"stock"`
	Personalizable *bool   `json:"personalizable"`
	Status         *string `json:"status"`
	ImageURL       *string `json:"imageUrl"`
}

// UpdateProduct is the handler for PATCH /productos/:id (admin only).
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Build the SET clause from the fields actually present.
	setClauses := []string{}
	args := []interface{}{}

	appendSet := func(clause string, value interface{}) {
		setClauses = append(setClauses, clause)
		args = append(args, value)
	}

	if input.Name != nil {
		appendSet("name = ?", *input.Name)
	}
	if input.Description != nil {
		appendSet("description = ?", *input.Description)
	}
	if input.CategoryCode != nil {
		appendSet("category_code = ?", *input.CategoryCode)
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		appendSet("price = ?", *input.Price)
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		appendSet("stock_quantity = ?", *input.StockQuantity)
	}
	if input.Personalizable != nil {
		appendSet("personalizable = ?", *input.Personalizable)
	}
	if input.Status != nil {
		if *input.Status != "active" && *input.Status != "discontinued" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be 'active' or 'discontinued'"})
			return
		}
		appendSet("status = ?", *input.Status)
	}
	if input.ImageURL != nil {
		appendSet("image_url = ?", *input.ImageURL)
	}

	if len(setClauses) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	appendSet("updated_at = ?", time.Now())
	args = append(args, productID)

	query := "UPDATE products SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = ?"

	result, err := h.DB.Exec(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct is the handler for DELETE /productos/:id (admin only).
// Order items keep their snapshot, so deleting a product never rewrites
// order history.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
