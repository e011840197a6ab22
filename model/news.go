package model

import (
	"time"
)

// NewsItem represents a single department news article.
//
// Slug is unique and URL-safe, PublishedAt/UpdatedAt and ViewCount are
// store-assigned, and IsPublished gates inclusion in public listings.
type NewsItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      *string   `json:"summary"`
	Content      string    `json:"content"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	Author       *string   `json:"author"`
	Category     *string   `json:"category"`
	PublishedAt  time.Time `json:"publishedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	IsPublished  bool      `json:"isPublished"`
	ViewCount    int64     `json:"viewCount"`
	Tags         []string  `json:"tags"`
}

// NewsPage is one window of a paginated news listing. Total counts every
// row matching the filter, not just the returned window.
type NewsPage struct {
	Items      []NewsItem `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}
