package database

import (
	"log"
	"strings"
)

func (s *PostgreSQLStore) Initialize() error {
	// Init all tables
	log.Println("Initializing PostgresSQL Database.", "Initializing Tables")
	if err := s.InitTables(); err != nil {
		return err
	}
	return nil
}

func (s *PostgreSQLStore) InitTables() error {
	//
	// Init all the content tables (auth tables are migrated by GORM)
	//

	// news table
	news_table := `
	CREATE TABLE IF NOT EXISTS news (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title VARCHAR(512) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		summary TEXT,
		content TEXT NOT NULL,
		thumbnail_url VARCHAR(512),
		author VARCHAR(255),
		category VARCHAR(100),
		published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		view_count BIGINT NOT NULL DEFAULT 0,
		tags TEXT[]
	);
	`

	// faculty table
	faculty_table := `
	CREATE TABLE IF NOT EXISTS faculty (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		name_en VARCHAR(255),
		title VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		photo_url VARCHAR(512),
		email VARCHAR(255),
		phone VARCHAR(50),
		office VARCHAR(255),
		research_interests TEXT[],
		education TEXT,
		biography TEXT,
		publications TEXT,
		projects TEXT,
		awards TEXT,
		sort_order INT NOT NULL DEFAULT 0,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// courses table
	courses_table := `
	CREATE TABLE IF NOT EXISTS courses (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		schedule VARCHAR(255) NOT NULL,
		instructor VARCHAR(255) NOT NULL,
		code VARCHAR(50),
		credits INT,
		semester VARCHAR(50),
		sort_order INT NOT NULL DEFAULT 0,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// laboratories table
	laboratories_table := `
	CREATE TABLE IF NOT EXISTS laboratories (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		name VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		equipment TEXT NOT NULL,
		opening_hours VARCHAR(255) NOT NULL,
		description TEXT,
		director VARCHAR(255),
		sort_order INT NOT NULL DEFAULT 0,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// resources table
	resources_table := `
	CREATE TABLE IF NOT EXISTS resources (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		title VARCHAR(255) NOT NULL,
		download_url VARCHAR(512) NOT NULL,
		description TEXT,
		file_type VARCHAR(50),
		file_size BIGINT,
		course_id BIGINT,
		sort_order INT NOT NULL DEFAULT 0,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// page_content table
	page_content_table := `
	CREATE TABLE IF NOT EXISTS page_content (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		slug VARCHAR(255) UNIQUE NOT NULL,
		title VARCHAR(512) NOT NULL,
		content TEXT NOT NULL,
		meta_description TEXT,
		meta_keywords TEXT,
		sidebar_content TEXT,
		updated_by VARCHAR(255),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// navigation table
	navigation_table := `
	CREATE TABLE IF NOT EXISTS navigation (
		id BIGINT PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		label VARCHAR(255) NOT NULL,
		url VARCHAR(512) NOT NULL,
		parent_id BIGINT REFERENCES navigation(id) ON DELETE SET NULL,
		sort_order INT NOT NULL DEFAULT 0,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		icon VARCHAR(100),
		description VARCHAR(512)
	);
	`

	all_tables := strings.Join([]string{news_table, faculty_table, courses_table, laboratories_table, resources_table, page_content_table, navigation_table}, "")

	_, err := s.db.Exec(all_tables)
	return err
}
