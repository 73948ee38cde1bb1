package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB, driver string) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for the per-owner listing and due-date display
		{"tasks", "idx_tasks_owner_id", "owner_id"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Directory search filters on name
		{"profiles", "idx_profiles_name", "name"},
	}

	for _, idx := range indexes {
		exists, err := indexExists(db, driver, idx.table, idx.name)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if exists {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

func indexExists(db *gorm.DB, driver, table, name string) (bool, error) {
	var count int64
	var err error

	switch driver {
	case "postgres":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, table, name).Scan(&count).Error
	default:
		err = db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, table, name).Scan(&count).Error
	}

	return count > 0, err
}
