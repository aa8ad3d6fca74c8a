package migrations

import (
	"gorm.io/gorm"

	"order_studio/internal/store"
)

// RunMigrations brings the ledger schema up to date. The ledger is one
// flat table; rows persist indefinitely, so there is no drop step.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&store.Record{})
}
