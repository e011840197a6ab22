package model

import (
	"time"
)

// FacultyMember represents one entry on the faculty roster.
//
// SortOrder is the default ordering key for listings; IsVisible hides a
// member from public listings without deleting the row.
type FacultyMember struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	NameEn            *string   `json:"nameEn"`
	Title             string    `json:"title"`
	Category          string    `json:"category"`
	PhotoURL          *string   `json:"photoUrl"`
	Email             *string   `json:"email"`
	Phone             *string   `json:"phone"`
	Office            *string   `json:"office"`
	ResearchInterests []string  `json:"researchInterests"`
	Education         *string   `json:"education"`
	Biography         *string   `json:"biography"`
	Publications      *string   `json:"publications"`
	Projects          *string   `json:"projects"`
	Awards            *string   `json:"awards"`
	SortOrder         int       `json:"sortOrder"`
	IsVisible         bool      `json:"isVisible"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
