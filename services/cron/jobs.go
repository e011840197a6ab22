package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/deptweb/site-api/database"
	"github.com/deptweb/site-api/model"
	"github.com/deptweb/site-api/utils/cache"
)

// CleanupTokenBlacklist removes expired tokens from the blacklist.
// Runs every hour; an expired token can no longer validate anyway, the
// row only exists so revocation survives until expiry.
func (m *CronManager) CleanupTokenBlacklist() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jobName := "cleanup_token_blacklist"

	result := m.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete expired tokens: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired tokens", result.RowsAffected))
}

// RefreshNavigationCache rebuilds the cached navigation tree from the
// database. The cache is also invalidated on every navigation write, so
// this job only guards against drift.
func (m *CronManager) RefreshNavigationCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jobName := "refresh_navigation_cache"

	if m.cache == nil {
		m.logJobComplete(jobName, "Cache not configured, skipping")
		return
	}

	items, err := m.store.ListNavigation()
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to load navigation: %w", err))
		return
	}

	tree := database.BuildNavigationTree(items)
	if err := m.cache.SetJSON(ctx, cache.NavigationTreeKey, tree, cache.NavigationTreeTTL); err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cache navigation tree: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Cached %d navigation roots", len(tree)))
}
