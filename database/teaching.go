package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/deptweb/site-api/model"
	queryHelper "github.com/deptweb/site-api/utils/query"
)

const courseColumns = "id, name, description, schedule, instructor, code, credits, semester, sort_order, is_visible, created_at, updated_at"
const laboratoryColumns = "id, name, location, equipment, opening_hours, description, director, sort_order, is_visible, created_at, updated_at"
const resourceColumns = "id, title, download_url, description, file_type, file_size, course_id, sort_order, is_visible, created_at, updated_at"

// TeachingFilter narrows course and laboratory listings.
type TeachingFilter struct {
	Search        string
	IncludeHidden bool
}

// ResourceFilter narrows resource listings. CourseID filters resources
// attached to one course.
type ResourceFilter struct {
	Search        string
	CourseID      int64
	IncludeHidden bool
}

type CourseCreate struct {
	Name        string
	Description string
	Schedule    string
	Instructor  string
	Code        *string
	Credits     *int
	Semester    *string
	SortOrder   *int
	IsVisible   *bool
}

type CourseUpdate struct {
	Name        *string
	Description *string
	Schedule    *string
	Instructor  *string
	Code        *string
	Credits     *int
	Semester    *string
	SortOrder   *int
	IsVisible   *bool
}

type LaboratoryCreate struct {
	Name         string
	Location     string
	Equipment    string
	OpeningHours string
	Description  *string
	Director     *string
	SortOrder    *int
	IsVisible    *bool
}

type LaboratoryUpdate struct {
	Name         *string
	Location     *string
	Equipment    *string
	OpeningHours *string
	Description  *string
	Director     *string
	SortOrder    *int
	IsVisible    *bool
}

type ResourceCreate struct {
	Title       string
	DownloadURL string
	Description *string
	FileType    *string
	FileSize    *int64
	CourseID    *int64
	SortOrder   *int
	IsVisible   *bool
}

type ResourceUpdate struct {
	Title       *string
	DownloadURL *string
	Description *string
	FileType    *string
	FileSize    *int64
	CourseID    *int64
	SortOrder   *int
	IsVisible   *bool
}

// ---------- Courses ----------

func (s *PostgreSQLStore) ListCourses(filter TeachingFilter) ([]model.Course, error) {
	where := []string{}
	args := []interface{}{}

	if !filter.IncludeHidden {
		where = append(where, "is_visible = TRUE")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR instructor ILIKE $%d)", n, n, n))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM courses%s ORDER BY sort_order ASC, name ASC", courseColumns, whereClause)

	rows, err := s.Execute(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course := new(model.Course)
		if err := scanIntoCourse(rows, course); err != nil {
			return nil, wrapError("failed to scan course row", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("course listing failed", err)
	}

	return courses, nil
}

func (s *PostgreSQLStore) GetCourseByID(id int64) (*model.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)

	course := new(model.Course)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoCourse(rows, course)
	}, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return course, nil
}

func (s *PostgreSQLStore) CreateCourse(in CourseCreate) (*model.Course, error) {
	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}
	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}

	query := fmt.Sprintf(`INSERT INTO courses (name, description, schedule, instructor, code, credits, semester, sort_order, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING %s`, courseColumns)

	course := new(model.Course)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoCourse(rows, course)
	}, query, in.Name, in.Description, in.Schedule, in.Instructor, in.Code, in.Credits, in.Semester, sortOrder, isVisible)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "course insert returned no row", Err: sql.ErrNoRows}
	}
	return course, nil
}

func (s *PostgreSQLStore) UpdateCourse(id int64, diff CourseUpdate) (*model.Course, error) {
	fields := queryHelper.NewFieldDiff()
	if diff.Name != nil {
		fields.Set("name", *diff.Name)
	}
	if diff.Description != nil {
		fields.Set("description", *diff.Description)
	}
	if diff.Schedule != nil {
		fields.Set("schedule", *diff.Schedule)
	}
	if diff.Instructor != nil {
		fields.Set("instructor", *diff.Instructor)
	}
	if diff.Code != nil {
		fields.Set("code", *diff.Code)
	}
	if diff.Credits != nil {
		fields.Set("credits", *diff.Credits)
	}
	if diff.Semester != nil {
		fields.Set("semester", *diff.Semester)
	}
	if diff.SortOrder != nil {
		fields.Set("sort_order", *diff.SortOrder)
	}
	if diff.IsVisible != nil {
		fields.Set("is_visible", *diff.IsVisible)
	}

	if fields.Empty() {
		return s.GetCourseByID(id)
	}

	fields.SetExpr("updated_at", "now()")
	query, values := queryHelper.BuildUpdate("courses", fields, "id", id, courseColumns)

	course := new(model.Course)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoCourse(rows, course)
	}, query, values...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return course, nil
}

func (s *PostgreSQLStore) DeleteCourse(id int64) (bool, error) {
	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, "DELETE FROM courses WHERE id = $1 RETURNING id", id)
	if err != nil {
		return false, err
	}
	return found, nil
}

// ---------- Laboratories ----------

func (s *PostgreSQLStore) ListLaboratories(filter TeachingFilter) ([]model.Laboratory, error) {
	where := []string{}
	args := []interface{}{}

	if !filter.IncludeHidden {
		where = append(where, "is_visible = TRUE")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR location ILIKE $%d OR equipment ILIKE $%d)", n, n, n))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM laboratories%s ORDER BY sort_order ASC, name ASC", laboratoryColumns, whereClause)

	rows, err := s.Execute(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labs := []model.Laboratory{}
	for rows.Next() {
		lab := new(model.Laboratory)
		if err := scanIntoLaboratory(rows, lab); err != nil {
			return nil, wrapError("failed to scan laboratory row", err)
		}
		labs = append(labs, *lab)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("laboratory listing failed", err)
	}

	return labs, nil
}

func (s *PostgreSQLStore) GetLaboratoryByID(id int64) (*model.Laboratory, error) {
	query := fmt.Sprintf("SELECT %s FROM laboratories WHERE id = $1", laboratoryColumns)

	lab := new(model.Laboratory)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoLaboratory(rows, lab)
	}, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return lab, nil
}

func (s *PostgreSQLStore) CreateLaboratory(in LaboratoryCreate) (*model.Laboratory, error) {
	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}
	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}

	query := fmt.Sprintf(`INSERT INTO laboratories (name, location, equipment, opening_hours, description, director, sort_order, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING %s`, laboratoryColumns)

	lab := new(model.Laboratory)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoLaboratory(rows, lab)
	}, query, in.Name, in.Location, in.Equipment, in.OpeningHours, in.Description, in.Director, sortOrder, isVisible)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "laboratory insert returned no row", Err: sql.ErrNoRows}
	}
	return lab, nil
}

func (s *PostgreSQLStore) UpdateLaboratory(id int64, diff LaboratoryUpdate) (*model.Laboratory, error) {
	fields := queryHelper.NewFieldDiff()
	if diff.Name != nil {
		fields.Set("name", *diff.Name)
	}
	if diff.Location != nil {
		fields.Set("location", *diff.Location)
	}
	if diff.Equipment != nil {
		fields.Set("equipment", *diff.Equipment)
	}
	if diff.OpeningHours != nil {
		fields.Set("opening_hours", *diff.OpeningHours)
	}
	if diff.Description != nil {
		fields.Set("description", *diff.Description)
	}
	if diff.Director != nil {
		fields.Set("director", *diff.Director)
	}
	if diff.SortOrder != nil {
		fields.Set("sort_order", *diff.SortOrder)
	}
	if diff.IsVisible != nil {
		fields.Set("is_visible", *diff.IsVisible)
	}

	if fields.Empty() {
		return s.GetLaboratoryByID(id)
	}

	fields.SetExpr("updated_at", "now()")
	query, values := queryHelper.BuildUpdate("laboratories", fields, "id", id, laboratoryColumns)

	lab := new(model.Laboratory)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoLaboratory(rows, lab)
	}, query, values...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return lab, nil
}

func (s *PostgreSQLStore) DeleteLaboratory(id int64) (bool, error) {
	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, "DELETE FROM laboratories WHERE id = $1 RETURNING id", id)
	if err != nil {
		return false, err
	}
	return found, nil
}

// ---------- Resources ----------

func (s *PostgreSQLStore) ListResources(filter ResourceFilter) ([]model.Resource, error) {
	where := []string{}
	args := []interface{}{}

	if !filter.IncludeHidden {
		where = append(where, "is_visible = TRUE")
	}
	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		where = append(where, fmt.Sprintf("course_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf("SELECT %s FROM resources%s ORDER BY sort_order ASC, title ASC", resourceColumns, whereClause)

	rows, err := s.Execute(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		resource := new(model.Resource)
		if err := scanIntoResource(rows, resource); err != nil {
			return nil, wrapError("failed to scan resource row", err)
		}
		resources = append(resources, *resource)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("resource listing failed", err)
	}

	return resources, nil
}

func (s *PostgreSQLStore) GetResourceByID(id int64) (*model.Resource, error) {
	query := fmt.Sprintf("SELECT %s FROM resources WHERE id = $1", resourceColumns)

	resource := new(model.Resource)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoResource(rows, resource)
	}, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return resource, nil
}

func (s *PostgreSQLStore) CreateResource(in ResourceCreate) (*model.Resource, error) {
	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}
	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}

	query := fmt.Sprintf(`INSERT INTO resources (title, download_url, description, file_type, file_size, course_id, sort_order, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING %s`, resourceColumns)

	resource := new(model.Resource)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoResource(rows, resource)
	}, query, in.Title, in.DownloadURL, in.Description, in.FileType, in.FileSize, in.CourseID, sortOrder, isVisible)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "resource insert returned no row", Err: sql.ErrNoRows}
	}
	return resource, nil
}

func (s *PostgreSQLStore) UpdateResource(id int64, diff ResourceUpdate) (*model.Resource, error) {
	fields := queryHelper.NewFieldDiff()
	if diff.Title != nil {
		fields.Set("title", *diff.Title)
	}
	if diff.DownloadURL != nil {
		fields.Set("download_url", *diff.DownloadURL)
	}
	if diff.Description != nil {
		fields.Set("description", *diff.Description)
	}
	if diff.FileType != nil {
		fields.Set("file_type", *diff.FileType)
	}
	if diff.FileSize != nil {
		fields.Set("file_size", *diff.FileSize)
	}
	if diff.CourseID != nil {
		fields.Set("course_id", *diff.CourseID)
	}
	if diff.SortOrder != nil {
		fields.Set("sort_order", *diff.SortOrder)
	}
	if diff.IsVisible != nil {
		fields.Set("is_visible", *diff.IsVisible)
	}

	if fields.Empty() {
		return s.GetResourceByID(id)
	}

	fields.SetExpr("updated_at", "now()")
	query, values := queryHelper.BuildUpdate("resources", fields, "id", id, resourceColumns)

	resource := new(model.Resource)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoResource(rows, resource)
	}, query, values...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return resource, nil
}

func (s *PostgreSQLStore) DeleteResource(id int64) (bool, error) {
	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, "DELETE FROM resources WHERE id = $1 RETURNING id", id)
	if err != nil {
		return false, err
	}
	return found, nil
}

func scanIntoCourse(rows *sql.Rows, course *model.Course) error {
	return rows.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Schedule,
		&course.Instructor,
		&course.Code,
		&course.Credits,
		&course.Semester,
		&course.SortOrder,
		&course.IsVisible,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
}

func scanIntoLaboratory(rows *sql.Rows, lab *model.Laboratory) error {
	return rows.Scan(
		&lab.ID,
		&lab.Name,
		&lab.Location,
		&lab.Equipment,
		&lab.OpeningHours,
		&lab.Description,
		&lab.Director,
		&lab.SortOrder,
		&lab.IsVisible,
		&lab.CreatedAt,
		&lab.UpdatedAt,
	)
}

func scanIntoResource(rows *sql.Rows, resource *model.Resource) error {
	return rows.Scan(
		&resource.ID,
		&resource.Title,
		&resource.DownloadURL,
		&resource.Description,
		&resource.FileType,
		&resource.FileSize,
		&resource.CourseID,
		&resource.SortOrder,
		&resource.IsVisible,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
}
