package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/deptweb/site-api/model"
	"github.com/deptweb/site-api/utils/auth"
)

// RunSeeds populates the initial admin account and, on an empty
// navigation table, the default navigation rows. Both steps are
// idempotent.
func RunSeeds(db *gorm.DB, store Storage) error {
	if err := seedAdminUser(db); err != nil {
		return fmt.Errorf("admin user: %w", err)
	}
	if err := seedNavigation(store); err != nil {
		return fmt.Errorf("navigation: %w", err)
	}
	return nil
}

// seedAdminUser creates the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped when either is unset or the account exists.
func seedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user %s", email)
	return nil
}

// seedNavigation inserts the default menu when the table is empty.
func seedNavigation(store Storage) error {
	existing, err := store.ListNavigation()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Navigation already has %d entries, skipping", len(existing))
		return nil
	}

	intPtr := func(v int) *int { return &v }

	roots := []NavItemCreate{
		{Label: "Home", URL: "/", SortOrder: intPtr(0)},
		{Label: "News", URL: "/news", SortOrder: intPtr(1)},
		{Label: "Faculty", URL: "/faculty", SortOrder: intPtr(2)},
		{Label: "Teaching", URL: "/teaching", SortOrder: intPtr(3)},
		{Label: "About", URL: "/content/about", SortOrder: intPtr(4)},
	}

	var teachingID int64
	for _, item := range roots {
		created, err := store.CreateNavItem(item)
		if err != nil {
			return err
		}
		if created.Label == "Teaching" {
			teachingID = created.ID
		}
	}

	children := []NavItemCreate{
		{Label: "Courses", URL: "/teaching/courses", ParentID: &teachingID, SortOrder: intPtr(0)},
		{Label: "Laboratories", URL: "/teaching/laboratories", ParentID: &teachingID, SortOrder: intPtr(1)},
		{Label: "Resources", URL: "/teaching/resources", ParentID: &teachingID, SortOrder: intPtr(2)},
	}
	for _, item := range children {
		if _, err := store.CreateNavItem(item); err != nil {
			return err
		}
	}

	log.Println("Seeded default navigation")
	return nil
}
