package model

// NavItem is one entry of the site navigation. ParentID self-references
// another NavItem; Children is computed at read time and never stored.
type NavItem struct {
	ID          int64      `json:"id"`
	Label       string     `json:"label"`
	URL         string     `json:"url"`
	ParentID    *int64     `json:"parentId"`
	SortOrder   int        `json:"sortOrder"`
	IsVisible   bool       `json:"isVisible"`
	Icon        *string    `json:"icon"`
	Description *string    `json:"description"`
	Children    []*NavItem `json:"children,omitempty"`
}
