package database

import (
	"database/sql"
	"fmt"

	"github.com/deptweb/site-api/model"
)

const pageContentColumns = "id, slug, title, content, meta_description, meta_keywords, sidebar_content, updated_by, updated_at"

// PageContentWrite is a full page write. A page is addressed by slug;
// absent optionals overwrite the stored value with NULL.
type PageContentWrite struct {
	Title           string
	Content         string
	MetaDescription *string
	MetaKeywords    *string
	SidebarContent  *string
	UpdatedBy       *string
}

// ListPageContent returns every stored page ordered by slug.
func (s *PostgreSQLStore) ListPageContent() ([]model.PageContent, error) {
	query := fmt.Sprintf("SELECT %s FROM page_content ORDER BY slug ASC", pageContentColumns)

	rows, err := s.Execute(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []model.PageContent{}
	for rows.Next() {
		page := new(model.PageContent)
		if err := scanIntoPageContent(rows, page); err != nil {
			return nil, wrapError("failed to scan page content row", err)
		}
		pages = append(pages, *page)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("page content listing failed", err)
	}

	return pages, nil
}

// GetPageContent returns the page for a slug, or nil when none exists.
func (s *PostgreSQLStore) GetPageContent(slug string) (*model.PageContent, error) {
	query := fmt.Sprintf("SELECT %s FROM page_content WHERE slug = $1", pageContentColumns)

	page := new(model.PageContent)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoPageContent(rows, page)
	}, query, slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return page, nil
}

// UpsertPageContent writes a page in a single atomic statement:
// insert-or-update keyed on slug, one round trip, no check-then-act
// window for concurrent first writers to race through.
func (s *PostgreSQLStore) UpsertPageContent(slug string, in PageContentWrite) (*model.PageContent, error) {
	query := fmt.Sprintf(`INSERT INTO page_content (slug, title, content, meta_description, meta_keywords, sidebar_content, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			meta_description = EXCLUDED.meta_description,
			meta_keywords = EXCLUDED.meta_keywords,
			sidebar_content = EXCLUDED.sidebar_content,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING %s`, pageContentColumns)

	page := new(model.PageContent)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoPageContent(rows, page)
	}, query, slug, in.Title, in.Content, in.MetaDescription, in.MetaKeywords, in.SidebarContent, in.UpdatedBy)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "page content upsert returned no row", Err: sql.ErrNoRows}
	}
	return page, nil
}

// DeletePageContent removes a page by slug and reports whether one
// existed.
func (s *PostgreSQLStore) DeletePageContent(slug string) (bool, error) {
	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, "DELETE FROM page_content WHERE slug = $1 RETURNING id", slug)
	if err != nil {
		return false, err
	}
	return found, nil
}

func scanIntoPageContent(rows *sql.Rows, page *model.PageContent) error {
	return rows.Scan(
		&page.ID,
		&page.Slug,
		&page.Title,
		&page.Content,
		&page.MetaDescription,
		&page.MetaKeywords,
		&page.SidebarContent,
		&page.UpdatedBy,
		&page.UpdatedAt,
	)
}
