package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CartSession())
	r.GET("/t", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": c.GetString("cartToken")})
	})
	return r
}

func TestCartSessionMintsToken(t *testing.T) {
	r := newSessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))

	require.Equal(t, http.StatusOK, w.Code)
	minted := w.Header().Get(CartTokenHeader)
	assert.NotEmpty(t, minted)
}

func TestCartSessionKeepsClientToken(t *testing.T) {
	r := newSessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(CartTokenHeader, "my-existing-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "my-existing-token", w.Header().Get(CartTokenHeader))
}
