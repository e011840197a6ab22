package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/deptweb/site-api/model"
	queryHelper "github.com/deptweb/site-api/utils/query"
)

const newsColumns = "id, title, slug, summary, content, thumbnail_url, author, category, published_at, updated_at, is_published, view_count, tags"

// NewsFilter narrows a news listing. Page is 1-based; PageSize is
// clamped by the handler to [1,100] before it reaches this layer.
type NewsFilter struct {
	Category           string
	Search             string
	Page               int
	PageSize           int
	IncludeUnpublished bool
}

// NewsCreate carries a full insert. Nil optionals become NULL.
type NewsCreate struct {
	Title        string
	Slug         string
	Content      string
	Summary      *string
	ThumbnailURL *string
	Author       *string
	Category     *string
	IsPublished  *bool
	Tags         []string
}

// NewsUpdate carries a partial update. Nil means "leave unchanged".
type NewsUpdate struct {
	Title        *string
	Slug         *string
	Summary      *string
	Content      *string
	ThumbnailURL *string
	Author       *string
	Category     *string
	IsPublished  *bool
	Tags         *[]string
}

// ListNews returns one page of news plus the total matching-row count.
// The page and the count come from a single statement (COUNT(*) OVER()),
// so they are always consistent with each other.
func (s *PostgreSQLStore) ListNews(filter NewsFilter) (*model.NewsPage, error) {
	where := []string{}
	args := []interface{}{}

	if !filter.IncludeUnpublished {
		where = append(where, "is_published = TRUE")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR summary ILIKE $%d OR content ILIKE $%d)", n, n, n))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	args = append(args, pageSize)
	limitParam := len(args)
	args = append(args, offset)
	offsetParam := len(args)

	// Ties on published_at break by id descending (newest insert first).
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) OVER() AS total FROM news%s ORDER BY published_at DESC, id DESC LIMIT $%d OFFSET $%d",
		newsColumns, whereClause, limitParam, offsetParam)

	rows, err := s.Execute(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.NewsItem{}
	var total int64
	for rows.Next() {
		item, rowTotal, err := scanIntoNewsWithTotal(rows)
		if err != nil {
			return nil, wrapError("failed to scan news row", err)
		}
		total = rowTotal
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("news listing failed", err)
	}

	// A window past the last page returns no rows and loses the window
	// count; fall back to COUNT(*) under the same predicate.
	if len(items) == 0 && page > 1 {
		countQuery := "SELECT COUNT(*) FROM news" + whereClause
		countArgs := args[:len(args)-2]
		found, err := s.ExecuteOne(func(rows *sql.Rows) error {
			return rows.Scan(&total)
		}, countQuery, countArgs...)
		if err != nil {
			return nil, err
		}
		if !found {
			total = 0
		}
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &model.NewsPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetNewsByID returns the news item or nil when no row matches.
func (s *PostgreSQLStore) GetNewsByID(id int64) (*model.NewsItem, error) {
	query := fmt.Sprintf("SELECT %s FROM news WHERE id = $1", newsColumns)

	item := new(model.NewsItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNews(rows, item)
	}, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return item, nil
}

// GetNewsBySlug returns the published news item for a slug, or nil.
func (s *PostgreSQLStore) GetNewsBySlug(slug string) (*model.NewsItem, error) {
	query := fmt.Sprintf("SELECT %s FROM news WHERE slug = $1 AND is_published = TRUE", newsColumns)

	item := new(model.NewsItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNews(rows, item)
	}, query, slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return item, nil
}

// CreateNews inserts a full row and returns it with store-assigned id,
// timestamps and counters. IsPublished defaults to true when nil.
func (s *PostgreSQLStore) CreateNews(in NewsCreate) (*model.NewsItem, error) {
	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	query := fmt.Sprintf(`INSERT INTO news (title, slug, summary, content, thumbnail_url, author, category, is_published, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING %s`, newsColumns)

	item := new(model.NewsItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNews(rows, item)
	}, query, in.Title, in.Slug, in.Summary, in.Content, in.ThumbnailURL, in.Author, in.Category, isPublished, pq.Array(tags))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "news insert returned no row", Err: sql.ErrNoRows}
	}
	return item, nil
}

// UpdateNews applies a partial update. With no set fields it degrades to
// a plain read and does not bump updated_at. Returns nil when no row
// matches the id.
func (s *PostgreSQLStore) UpdateNews(id int64, diff NewsUpdate) (*model.NewsItem, error) {
	fields := queryHelper.NewFieldDiff()
	if diff.Title != nil {
		fields.Set("title", *diff.Title)
	}
	if diff.Slug != nil {
		fields.Set("slug", *diff.Slug)
	}
	if diff.Summary != nil {
		fields.Set("summary", *diff.Summary)
	}
	if diff.Content != nil {
		fields.Set("content", *diff.Content)
	}
	if diff.ThumbnailURL != nil {
		fields.Set("thumbnail_url", *diff.ThumbnailURL)
	}
	if diff.Author != nil {
		fields.Set("author", *diff.Author)
	}
	if diff.Category != nil {
		fields.Set("category", *diff.Category)
	}
	if diff.IsPublished != nil {
		fields.Set("is_published", *diff.IsPublished)
	}
	if diff.Tags != nil {
		fields.Set("tags", pq.Array(*diff.Tags))
	}

	if fields.Empty() {
		return s.GetNewsByID(id)
	}

	fields.SetExpr("updated_at", "now()")
	query, values := queryHelper.BuildUpdate("news", fields, "id", id, newsColumns)

	item := new(model.NewsItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNews(rows, item)
	}, query, values...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return item, nil
}

// DeleteNews removes a row by id and reports whether one existed.
func (s *PostgreSQLStore) DeleteNews(id int64) (bool, error) {
	query := "DELETE FROM news WHERE id = $1 RETURNING id"

	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, query, id)
	if err != nil {
		return false, err
	}
	return found, nil
}

// IncrementNewsViewCount bumps the view counter atomically at the store,
// independent of any concurrent full update.
func (s *PostgreSQLStore) IncrementNewsViewCount(id int64) error {
	query := "UPDATE news SET view_count = view_count + 1 WHERE id = $1"
	_, err := s.db.Exec(query, id)
	if err != nil {
		return wrapError("failed to increment view count", err)
	}
	return nil
}

func scanIntoNews(rows *sql.Rows, item *model.NewsItem) error {
	var tags pq.StringArray
	err := rows.Scan(
		&item.ID,
		&item.Title,
		&item.Slug,
		&item.Summary,
		&item.Content,
		&item.ThumbnailURL,
		&item.Author,
		&item.Category,
		&item.PublishedAt,
		&item.UpdatedAt,
		&item.IsPublished,
		&item.ViewCount,
		&tags,
	)
	if err != nil {
		return err
	}
	item.Tags = tags
	return nil
}

func scanIntoNewsWithTotal(rows *sql.Rows) (*model.NewsItem, int64, error) {
	item := new(model.NewsItem)
	var tags pq.StringArray
	var total int64
	err := rows.Scan(
		&item.ID,
		&item.Title,
		&item.Slug,
		&item.Summary,
		&item.Content,
		&item.ThumbnailURL,
		&item.Author,
		&item.Category,
		&item.PublishedAt,
		&item.UpdatedAt,
		&item.IsPublished,
		&item.ViewCount,
		&tags,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}
	item.Tags = tags
	return item, total, nil
}
