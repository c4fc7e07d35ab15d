package gormrepo

import (
	"gorm.io/gorm"

	"github.com/phenrril/shopmarket/internal/domain"
)

// AutoMigrate creates or updates the products, users and state_snapshots tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Product{}, &domain.User{}, &StateSnapshot{})
}
