package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/deptweb/site-api/config"
	"github.com/deptweb/site-api/model"
)

// ErrDuplicate marks a uniqueness violation reported by the store.
// Callers test for it with errors.Is and map it to 409.
var ErrDuplicate = errors.New("duplicate value violates a unique constraint")

// DatabaseError wraps a driver error with a human-readable message.
type DatabaseError struct {
	Message string
	Err     error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// wrapError classifies driver errors by SQLSTATE instead of message
// text. 23505 is unique_violation.
func wrapError(message string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &DatabaseError{Message: message, Err: ErrDuplicate}
	}
	return &DatabaseError{Message: message, Err: err}
}

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Raw DB access (*sql.DB for PostgreSQLStore)
	GetDB() interface{}

	// News
	ListNews(filter NewsFilter) (*model.NewsPage, error)
	GetNewsByID(id int64) (*model.NewsItem, error)
	GetNewsBySlug(slug string) (*model.NewsItem, error)
	CreateNews(in NewsCreate) (*model.NewsItem, error)
	UpdateNews(id int64, diff NewsUpdate) (*model.NewsItem, error)
	DeleteNews(id int64) (bool, error)
	IncrementNewsViewCount(id int64) error

	// Faculty
	ListFaculty(filter FacultyFilter) ([]model.FacultyMember, error)
	GetFacultyByID(id int64) (*model.FacultyMember, error)
	CreateFaculty(in FacultyCreate) (*model.FacultyMember, error)
	UpdateFaculty(id int64, diff FacultyUpdate) (*model.FacultyMember, error)
	DeleteFaculty(id int64) (bool, error)

	// Teaching: courses, laboratories, resources
	ListCourses(filter TeachingFilter) ([]model.Course, error)
	GetCourseByID(id int64) (*model.Course, error)
	CreateCourse(in CourseCreate) (*model.Course, error)
	UpdateCourse(id int64, diff CourseUpdate) (*model.Course, error)
	DeleteCourse(id int64) (bool, error)

	ListLaboratories(filter TeachingFilter) ([]model.Laboratory, error)
	GetLaboratoryByID(id int64) (*model.Laboratory, error)
	CreateLaboratory(in LaboratoryCreate) (*model.Laboratory, error)
	UpdateLaboratory(id int64, diff LaboratoryUpdate) (*model.Laboratory, error)
	DeleteLaboratory(id int64) (bool, error)

	ListResources(filter ResourceFilter) ([]model.Resource, error)
	GetResourceByID(id int64) (*model.Resource, error)
	CreateResource(in ResourceCreate) (*model.Resource, error)
	UpdateResource(id int64, diff ResourceUpdate) (*model.Resource, error)
	DeleteResource(id int64) (bool, error)

	// Page content (addressed by slug)
	ListPageContent() ([]model.PageContent, error)
	GetPageContent(slug string) (*model.PageContent, error)
	UpsertPageContent(slug string, in PageContentWrite) (*model.PageContent, error)
	DeletePageContent(slug string) (bool, error)

	// Navigation
	ListNavigation() ([]model.NavItem, error)
	GetNavItemByID(id int64) (*model.NavItem, error)
	CreateNavItem(in NavItemCreate) (*model.NavItem, error)
	UpdateNavItem(id int64, diff NavItemUpdate) (*model.NavItem, error)
	DeleteNavItem(id int64) (bool, error)
}

type PostgreSQLStore struct {
	db *sql.DB
}

func Start() (*PostgreSQLStore, error) {
	getEnv, err := config.Get()

	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv.DB_HOST, getEnv.DB_PORT, getEnv.DB_USER_NAME, getEnv.DB_PASSWORD, getEnv.DB_NAME, getEnv.DB_SSL_MODE)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		fmt.Println("Unable to Start PostgresSQL Databse.")
		return nil, err
	}

	// Connection pool settings
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgresSQL Database.")
	return &PostgreSQLStore{
		db: db,
	}, nil
}

func (s *PostgreSQLStore) Init() error {
	log.Println("Initializing PostgresSQL Database.")
	err := s.Initialize()
	return err
}

func (s *PostgreSQLStore) Close() error {
	log.Println("Closing PostgresSQL Database.")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *PostgreSQLStore) HealthCheck() error {
	return s.db.Ping()
}

// GetDB returns the underlying *sql.DB for callers that need it
func (s *PostgreSQLStore) GetDB() interface{} {
	return s.db
}

// Execute runs a parameterized statement and returns its rows. Only
// positional $n placeholders are used; identifiers are never built from
// caller input.
func (s *PostgreSQLStore) Execute(query string, args ...interface{}) (*sql.Rows, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapError("query failed", err)
	}
	return rows, nil
}

// ExecuteOne runs a statement expected to return at most one row and
// hands that row to scan. Returns found=false on an empty result; a
// missing row is not an error.
func (s *PostgreSQLStore) ExecuteOne(scan func(rows *sql.Rows) error, query string, args ...interface{}) (bool, error) {
	rows, err := s.Execute(query, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return false, wrapError("row iteration failed", err)
		}
		return false, nil
	}

	if err := scan(rows); err != nil {
		return false, wrapError("row scan failed", err)
	}
	return true, nil
}
