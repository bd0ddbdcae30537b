package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milsabores/pasteleria-golang/internal/cart"
	"github.com/milsabores/pasteleria-golang/internal/handlers"
	"github.com/milsabores/pasteleria-golang/internal/middleware"
	"github.com/milsabores/pasteleria-golang/internal/routes"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// newCartTestServer wires the real router around an in-memory cart store.
// Cart reads and mutations never touch the database, so h.DB stays nil.
func newCartTestServer() (*handlers.Handlers, *gin.Engine) {
	h := &handlers.Handlers{Carts: cart.NewStore()}
	return h, routes.SetupRouter(h)
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.CartTokenHeader, token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetCartMintsSessionToken(t *testing.T) {
	_, router := newCartTestServer()

	w := doJSON(router, http.MethodGet, "/carrito", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.CartTokenHeader))

	var resp struct {
		Items      []cart.Line `json:"items"`
		Subtotal   int         `json:"subtotal"`
		TotalItems int         `json:"totalItems"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Subtotal)
}

func TestGetCartEchoesExistingToken(t *testing.T) {
	h, router := newCartTestServer()

	h.Carts.Get("session-1").AddItem(
		cart.ProductSnapshot{ID: 1, Name: "Torta", UnitPrice: 1000}, 2, cart.Personalization{})

	w := doJSON(router, http.MethodGet, "/carrito", "session-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-1", w.Header().Get(middleware.CartTokenHeader))

	var resp struct {
		Items             []cart.Line `json:"items"`
		Subtotal          int         `json:"subtotal"`
		SubtotalFormatted string      `json:"subtotalFormatted"`
		TotalItems        int         `json:"totalItems"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2000, resp.Subtotal)
	assert.Equal(t, "$2.000", resp.SubtotalFormatted)
	assert.Equal(t, 2, resp.TotalItems)
}

func TestUpdateCartItemQuantity(t *testing.T) {
	h, router := newCartTestServer()
	h.Carts.Get("s").AddItem(
		cart.ProductSnapshot{ID: 7, Name: "Empanada", UnitPrice: 2000}, 1, cart.Personalization{})

	qty := 4
	w := doJSON(router, http.MethodPut, "/carrito/items/7", "s",
		map[string]interface{}{"quantity": qty})
	require.Equal(t, http.StatusOK, w.Code)

	lines := h.Carts.Get("s").Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, qty, lines[0].Quantity)
}

func TestUpdateCartItemToZeroRemoves(t *testing.T) {
	h, router := newCartTestServer()
	h.Carts.Get("s").AddItem(
		cart.ProductSnapshot{ID: 7, Name: "Empanada", UnitPrice: 2000}, 1, cart.Personalization{})

	w := doJSON(router, http.MethodPut, "/carrito/items/7", "s",
		map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, h.Carts.Get("s").Lines())
}

func TestUpdateUnknownCartItemIs404(t *testing.T) {
	_, router := newCartTestServer()

	w := doJSON(router, http.MethodPut, "/carrito/items/99", "s",
		map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCartItemDropsAllVariants(t *testing.T) {
	h, router := newCartTestServer()
	ck := h.Carts.Get("s")
	snap := cart.ProductSnapshot{ID: 3, Name: "Torta Especial", UnitPrice: 55000}
	ck.AddItem(snap, 1, cart.Personalization{})
	ck.AddItem(snap, 1, cart.Personalization{Message: "Feliz Aniversario"})

	w := doJSON(router, http.MethodDelete, "/carrito/items/3", "s", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ck.Lines())
}

func TestClearCart(t *testing.T) {
	h, router := newCartTestServer()
	ck := h.Carts.Get("s")
	ck.AddItem(cart.ProductSnapshot{ID: 1, Name: "Torta", UnitPrice: 1000}, 2, cart.Personalization{})

	w := doJSON(router, http.MethodDelete, "/carrito", "s", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ck.Lines())
	assert.Equal(t, 0, ck.TotalItems())
}

func TestCartResponseCarriesNotice(t *testing.T) {
	h, router := newCartTestServer()
	h.Carts.Get("s").AddItem(
		cart.ProductSnapshot{ID: 1, Name: "Torta", UnitPrice: 1000}, 2, cart.Personalization{})

	w := doJSON(router, http.MethodGet, "/carrito", "s", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notice *cart.Notice `json:"notice"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notice)
	assert.Equal(t, cart.SeveritySuccess, resp.Notice.Severity)
	assert.Contains(t, resp.Notice.Message, "Torta")
}

func TestCheckoutValidationFailureMakesNoDBCall(t *testing.T) {
	// h.DB is nil: if checkout touched the database before validation
	// passed, this request would panic instead of returning 400.
	h, router := newCartTestServer()
	h.Carts.Get("s").AddItem(
		cart.ProductSnapshot{ID: 1, Name: "Torta", UnitPrice: 1000}, 1, cart.Personalization{})

	w := doJSON(router, http.MethodPost, "/pedidos", "s", map[string]interface{}{
		"name":         "Maria123", // digits are rejected
		"phone":        "123",
		"email":        "not-an-email",
		"address":      "",
		"deliveryDate": "yesterday",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "phone")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "address")
	assert.Contains(t, resp.Errors, "deliveryDate")

	// The cart survives a failed submission for retry.
	assert.Len(t, h.Carts.Get("s").Lines(), 1)
}
