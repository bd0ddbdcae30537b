package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/milsabores/pasteleria-golang/internal/models"
)

//
// --- Blog Handlers (Public) ---
//

// GetBlogPosts is the handler for GET /blog, newest first.
func (h *Handlers) GetBlogPosts(c *gin.Context) {
	query := `
		SELECT id, title, author, body, published_at
		FROM blog_posts
		ORDER BY published_at DESC`

	rows, err := h.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		var post models.BlogPost
		if err := rows.Scan(&post.ID, &post.Title, &post.Author, &post.Body, &post.PublishedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan blog post"})
			return
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating blog posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetBlogPost is the handler for GET /blog/:id.
func (h *Handlers) GetBlogPost(c *gin.Context) {
	postID := c.Param("id")

	var post models.BlogPost
	query := "SELECT id, title, author, body, published_at FROM blog_posts WHERE id = ?"
	err := h.DB.QueryRow(query, postID).Scan(&post.ID, &post.Title, &post.Author, &post.Body, &post.PublishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}
