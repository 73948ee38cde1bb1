package database

import (
	"gorm.io/gorm"
)

// CreationOrder orders records oldest-first, matching the monotonic
// server-assigned creation timestamps.
func CreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
