package model

import (
	"time"
)

// PageContent holds the editable body of a static page. Pages are
// addressed by slug, not by id; writes are upserts keyed on slug.
type PageContent struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MetaDescription *string   `json:"metaDescription"`
	MetaKeywords    *string   `json:"metaKeywords"`
	SidebarContent  *string   `json:"sidebarContent"`
	UpdatedBy       *string   `json:"updatedBy"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
