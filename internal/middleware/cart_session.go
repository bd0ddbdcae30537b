package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartTokenHeader carries the shopper's cart session token. The client
// stores whatever value the server echoes back and resends it, so guests
// keep their cart across requests without logging in.
const CartTokenHeader = "X-Cart-Token"

// CartSession reads the cart token from the request, minting a fresh one
// for first-time visitors, and makes it available to handlers. The token is
// always echoed in the response so the client can persist it.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(CartTokenHeader)
		if token == "" {
			token = uuid.NewString()
		}

		c.Set("cartToken", token)
		c.Header(CartTokenHeader, token)
		c.Next()
	}
}
