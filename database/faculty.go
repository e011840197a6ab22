package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/deptweb/site-api/model"
	queryHelper "github.com/deptweb/site-api/utils/query"
)

const facultyColumns = "id, name, name_en, title, category, photo_url, email, phone, office, research_interests, education, biography, publications, projects, awards, sort_order, is_visible, created_at, updated_at"

// FacultyFilter narrows a faculty listing.
type FacultyFilter struct {
	Category      string
	Search        string
	IncludeHidden bool
}

type FacultyCreate struct {
	Name              string
	Title             string
	Category          string
	NameEn            *string
	PhotoURL          *string
	Email             *string
	Phone             *string
	Office            *string
	ResearchInterests []string
	Education         *string
	Biography         *string
	Publications      *string
	Projects          *string
	Awards            *string
	SortOrder         *int
	IsVisible         *bool
}

type FacultyUpdate struct {
	Name              *string
	NameEn            *string
	Title             *string
	Category          *string
	PhotoURL          *string
	Email             *string
	Phone             *string
	Office            *string
	ResearchInterests *[]string
	Education         *string
	Biography         *string
	Publications      *string
	Projects          *string
	Awards            *string
	SortOrder         *int
	IsVisible         *bool
}

// ListFaculty returns visible members ordered by sort_order then name.
// Search matches name, name_en, title and research interests without
// case sensitivity.
func (s *PostgreSQLStore) ListFaculty(filter FacultyFilter) ([]model.FacultyMember, error) {
	where := []string{}
	args := []interface{}{}

	if !filter.IncludeHidden {
		where = append(where, "is_visible = TRUE")
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR name_en ILIKE $%d OR title ILIKE $%d OR array_to_string(research_interests, ' ') ILIKE $%d)",
			n, n, n, n))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM faculty%s ORDER BY sort_order ASC, name ASC", facultyColumns, whereClause)

	rows, err := s.Execute(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []model.FacultyMember{}
	for rows.Next() {
		member := new(model.FacultyMember)
		if err := scanIntoFaculty(rows, member); err != nil {
			return nil, wrapError("failed to scan faculty row", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("faculty listing failed", err)
	}

	return members, nil
}

// GetFacultyByID returns the member or nil when no row matches.
func (s *PostgreSQLStore) GetFacultyByID(id int64) (*model.FacultyMember, error) {
	query := fmt.Sprintf("SELECT %s FROM faculty WHERE id = $1", facultyColumns)

	member := new(model.FacultyMember)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoFaculty(rows, member)
	}, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return member, nil
}

// CreateFaculty inserts a full row. SortOrder defaults to 0 and
// IsVisible to true when unspecified.
func (s *PostgreSQLStore) CreateFaculty(in FacultyCreate) (*model.FacultyMember, error) {
	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}
	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}
	interests := in.ResearchInterests
	if interests == nil {
		interests = []string{}
	}

	query := fmt.Sprintf(`INSERT INTO faculty (name, name_en, title, category, photo_url, email, phone, office, research_interests, education, biography, publications, projects, awards, sort_order, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING %s`, facultyColumns)

	member := new(model.FacultyMember)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoFaculty(rows, member)
	}, query, in.Name, in.NameEn, in.Title, in.Category, in.PhotoURL, in.Email, in.Phone, in.Office,
		pq.Array(interests), in.Education, in.Biography, in.Publications, in.Projects, in.Awards, sortOrder, isVisible)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "faculty insert returned no row", Err: sql.ErrNoRows}
	}
	return member, nil
}

// UpdateFaculty applies a partial update, or degrades to a plain read
// when no fields are set.
func (s *PostgreSQLStore) UpdateFaculty(id int64, diff FacultyUpdate) (*model.FacultyMember, error) {
	fields := queryHelper.NewFieldDiff()
	if diff.Name != nil {
		fields.Set("name", *diff.Name)
	}
	if diff.NameEn != nil {
		fields.Set("name_en", *diff.NameEn)
	}
	if diff.Title != nil {
		fields.Set("title", *diff.Title)
	}
	if diff.Category != nil {
		fields.Set("category", *diff.Category)
	}
	if diff.PhotoURL != nil {
		fields.Set("photo_url", *diff.PhotoURL)
	}
	if diff.Email != nil {
		fields.Set("email", *diff.Email)
	}
	if diff.Phone != nil {
		fields.Set("phone", *diff.Phone)
	}
	if diff.Office != nil {
		fields.Set("office", *diff.Office)
	}
	if diff.ResearchInterests != nil {
		fields.Set("research_interests", pq.Array(*diff.ResearchInterests))
	}
	if diff.Education != nil {
		fields.Set("education", *diff.Education)
	}
	if diff.Biography != nil {
		fields.Set("biography", *diff.Biography)
	}
	if diff.Publications != nil {
		fields.Set("publications", *diff.Publications)
	}
	if diff.Projects != nil {
		fields.Set("projects", *diff.Projects)
	}
	if diff.Awards != nil {
		fields.Set("awards", *diff.Awards)
	}
	if diff.SortOrder != nil {
		fields.Set("sort_order", *diff.SortOrder)
	}
	if diff.IsVisible != nil {
		fields.Set("is_visible", *diff.IsVisible)
	}

	if fields.Empty() {
		return s.GetFacultyByID(id)
	}

	fields.SetExpr("updated_at", "now()")
	query, values := queryHelper.BuildUpdate("faculty", fields, "id", id, facultyColumns)

	member := new(model.FacultyMember)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoFaculty(rows, member)
	}, query, values...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return member, nil
}

// DeleteFaculty removes a row by id and reports whether one existed.
func (s *PostgreSQLStore) DeleteFaculty(id int64) (bool, error) {
	query := "DELETE FROM faculty WHERE id = $1 RETURNING id"

	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, query, id)
	if err != nil {
		return false, err
	}
	return found, nil
}

func scanIntoFaculty(rows *sql.Rows, member *model.FacultyMember) error {
	var interests pq.StringArray
	err := rows.Scan(
		&member.ID,
		&member.Name,
		&member.NameEn,
		&member.Title,
		&member.Category,
		&member.PhotoURL,
		&member.Email,
		&member.Phone,
		&member.Office,
		&interests,
		&member.Education,
		&member.Biography,
		&member.Publications,
		&member.Projects,
		&member.Awards,
		&member.SortOrder,
		&member.IsVisible,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return err
	}
	member.ResearchInterests = interests
	return nil
}
