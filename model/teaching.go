package model

import (
	"time"
)

// Course represents a taught course listed on the teaching pages.
type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	Instructor  string    `json:"instructor"`
	Code        *string   `json:"code"`
	Credits     *int      `json:"credits"`
	Semester    *string   `json:"semester"`
	SortOrder   int       `json:"sortOrder"`
	IsVisible   bool      `json:"isVisible"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Laboratory represents a teaching or research lab.
type Laboratory struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Equipment    string    `json:"equipment"`
	OpeningHours string    `json:"openingHours"`
	Description  *string   `json:"description"`
	Director     *string   `json:"director"`
	SortOrder    int       `json:"sortOrder"`
	IsVisible    bool      `json:"isVisible"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Resource represents a downloadable teaching resource. CourseID is an
// optional loose reference to a Course; it is accepted as-is and not
// enforced at this layer.
type Resource struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	DownloadURL string    `json:"downloadUrl"`
	Description *string   `json:"description"`
	FileType    *string   `json:"fileType"`
	FileSize    *int64    `json:"fileSize"`
	CourseID    *int64    `json:"courseId"`
	SortOrder   int       `json:"sortOrder"`
	IsVisible   bool      `json:"isVisible"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
