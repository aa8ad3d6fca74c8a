package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormStore keeps the ledger in a single database table while
// preserving whole-table read/overwrite semantics, so it can stand in
// for the spreadsheet service without changing the repository's
// contract.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Read(ctx context.Context) ([]Record, error) {
	var rows []Record
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read ledger table: %w", err)
	}
	return rows, nil
}

func (s *GormStore) Write(ctx context.Context, rows []Record) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Record{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to write ledger table: %w", err)
	}
	return nil
}
