package models

import "time"

// BlogPost is the model for the 'blog_posts' table
type BlogPost struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Body        string    `json:"body" db:"body"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
}
