package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milsabores/pasteleria-golang/internal/cart"
	"github.com/milsabores/pasteleria-golang/internal/format"
)

//
// --- Cart Handlers (session-scoped, guests welcome) ---
//
// The cart lives in memory keyed by the X-Cart-Token session header; see
// internal/cart. The DB is only consulted when adding, to snapshot the
// product and check stock.
//

// sessionCart returns the cart bound to this request's session token.
// CartSession middleware guarantees the token exists.
func (h *Handlers) sessionCart(c *gin.Context) *cart.Cart {
	token := c.GetString("cartToken")
	return h.Carts.Get(token)
}

// cartResponse renders the full cart state, including the current toast
// notice (nil once it has expired or been dismissed).
func cartResponse(ck *cart.Cart) gin.H {
	lines := ck.Lines()
	subtotal := ck.Subtotal()
	return gin.H{
		"items":             lines,
		"subtotal":          subtotal,
		"subtotalFormatted": format.Price(subtotal),
		"totalItems":        ck.TotalItems(),
		"notice":            ck.Notice(),
	}
}

// GetCart is the handler for GET /carrito.
func (h *Handlers) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(h.sessionCart(c)))
}

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID       int64                `json:"productId" binding:"required"`
	Quantity        int                  `json:"quantity" binding:"required,gt=0"`
	Personalization cart.Personalization `json:"personalization"`
}

// AddToCart is the handler for POST /carrito/items.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// Snapshot the product and make sure it is sellable.
	var (
		name           string
		price          int
		stock          int
		personalizable bool
		imageURL       sql.NullString
	)
	query := "SELECT name, price, stock_quantity, personalizable, image_url FROM products WHERE id = ? AND status = 'active'"
	err := h.DB.QueryRow(query, input.ProductID).Scan(&name, &price, &stock, &personalizable, &imageURL)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or not active"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if stock < input.Quantity {
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
		return
	}

	if input.Personalization.Signature() != "" && !personalizable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This product does not accept personalization"})
		return
	}

	ck := h.sessionCart(c)
	ck.AddItem(cart.ProductSnapshot{
		ID:        input.ProductID,
		Name:      name,
		UnitPrice: price,
		ImageURL:  imageURL.String,
	}, input.Quantity, input.Personalization)

	c.JSON(http.StatusCreated, cartResponse(ck))
}

// UpdateCartItemInput defines the JSON for updating an item's quantity.
// gte=0 allows setting quantity to 0, which removes the line. The
// personalization fields address the exact line: two lines can share a base
// product id and differ only by signature.
type UpdateCartItemInput struct {
	Quantity        *int                 `json:"quantity" binding:"required,gte=0"`
	Personalization cart.Personalization `json:"personalization"`
}

// UpdateCartItem is the handler for PUT /carrito/items/:product_id.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ck := h.sessionCart(c)
	if !ck.UpdateQuantity(productID, input.Personalization, *input.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(ck))
}

// DeleteCartItem is the handler for DELETE /carrito/items/:product_id.
// It removes every line for the base product id, personalized or not.
// Removing an id that is not in the cart is a no-op.
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	ck := h.sessionCart(c)
	ck.RemoveItem(productID)
	c.JSON(http.StatusOK, cartResponse(ck))
}

// ClearCart is the handler for DELETE /carrito.
func (h *Handlers) ClearCart(c *gin.Context) {
	ck := h.sessionCart(c)
	ck.Clear()
	c.JSON(http.StatusOK, cartResponse(ck))
}
