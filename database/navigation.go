package database

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/deptweb/site-api/model"
	queryHelper "github.com/deptweb/site-api/utils/query"
)

const navigationColumns = "id, label, url, parent_id, sort_order, is_visible, icon, description"

type NavItemCreate struct {
	Label       string
	URL         string
	ParentID    *int64
	Icon        *string
	Description *string
	SortOrder   *int
	IsVisible   *bool
}

type NavItemUpdate struct {
	Label       *string
	URL         *string
	ParentID    *int64
	Icon        *string
	Description *string
	SortOrder   *int
	IsVisible   *bool
}

// ListNavigation returns all visible navigation rows as a flat list
// ordered by sort_order. Tree assembly happens in BuildNavigationTree.
func (s *PostgreSQLStore) ListNavigation() ([]model.NavItem, error) {
	query := fmt.Sprintf("SELECT %s FROM navigation WHERE is_visible = TRUE ORDER BY sort_order ASC, id ASC", navigationColumns)

	rows, err := s.Execute(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.NavItem{}
	for rows.Next() {
		item := new(model.NavItem)
		if err := scanIntoNavItem(rows, item); err != nil {
			return nil, wrapError("failed to scan navigation row", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("navigation listing failed", err)
	}

	return items, nil
}

func (s *PostgreSQLStore) GetNavItemByID(id int64) (*model.NavItem, error) {
	query := fmt.Sprintf("SELECT %s FROM navigation WHERE id = $1", navigationColumns)

	item := new(model.NavItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNavItem(rows, item)
	}, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return item, nil
}

func (s *PostgreSQLStore) CreateNavItem(in NavItemCreate) (*model.NavItem, error) {
	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}
	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}

	query := fmt.Sprintf(`INSERT INTO navigation (label, url, parent_id, sort_order, is_visible, icon, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING %s`, navigationColumns)

	item := new(model.NavItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNavItem(rows, item)
	}, query, in.Label, in.URL, in.ParentID, sortOrder, isVisible, in.Icon, in.Description)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &DatabaseError{Message: "navigation insert returned no row", Err: sql.ErrNoRows}
	}
	return item, nil
}

func (s *PostgreSQLStore) UpdateNavItem(id int64, diff NavItemUpdate) (*model.NavItem, error) {
	fields := queryHelper.NewFieldDiff()
	if diff.Label != nil {
		fields.Set("label", *diff.Label)
	}
	if diff.URL != nil {
		fields.Set("url", *diff.URL)
	}
	if diff.ParentID != nil {
		fields.Set("parent_id", *diff.ParentID)
	}
	if diff.SortOrder != nil {
		fields.Set("sort_order", *diff.SortOrder)
	}
	if diff.IsVisible != nil {
		fields.Set("is_visible", *diff.IsVisible)
	}
	if diff.Icon != nil {
		fields.Set("icon", *diff.Icon)
	}
	if diff.Description != nil {
		fields.Set("description", *diff.Description)
	}

	if fields.Empty() {
		return s.GetNavItemByID(id)
	}

	query, values := queryHelper.BuildUpdate("navigation", fields, "id", id, navigationColumns)

	item := new(model.NavItem)
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return scanIntoNavItem(rows, item)
	}, query, values...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return item, nil
}

func (s *PostgreSQLStore) DeleteNavItem(id int64) (bool, error) {
	var deletedID int64
	found, err := s.ExecuteOne(func(rows *sql.Rows) error {
		return rows.Scan(&deletedID)
	}, "DELETE FROM navigation WHERE id = $1 RETURNING id", id)
	if err != nil {
		return false, err
	}
	return found, nil
}

// BuildNavigationTree assembles flat rows into a hierarchy. A row whose
// parent is missing from the input set is promoted to the root list, so
// every input row appears exactly once. Children are re-sorted by
// (sort_order, id) within each parent; the globally sorted fetch order
// is not trusted to imply per-parent order.
func BuildNavigationTree(items []model.NavItem) []*model.NavItem {
	byID := make(map[int64]*model.NavItem, len(items))
	nodes := make([]*model.NavItem, 0, len(items))
	for i := range items {
		node := items[i]
		node.Children = nil
		byID[node.ID] = &node
		nodes = append(nodes, &node)
	}

	roots := []*model.NavItem{}
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := byID[*node.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortNavLevel(roots)
	for _, node := range nodes {
		sortNavLevel(node.Children)
	}

	return roots
}

func sortNavLevel(level []*model.NavItem) {
	sort.SliceStable(level, func(i, j int) bool {
		if level[i].SortOrder != level[j].SortOrder {
			return level[i].SortOrder < level[j].SortOrder
		}
		return level[i].ID < level[j].ID
	})
}

func scanIntoNavItem(rows *sql.Rows, item *model.NavItem) error {
	return rows.Scan(
		&item.ID,
		&item.Label,
		&item.URL,
		&item.ParentID,
		&item.SortOrder,
		&item.IsVisible,
		&item.Icon,
		&item.Description,
	)
}
