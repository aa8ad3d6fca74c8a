// Package store wraps the shared ledger table behind the only two
// operations the backing service supports: read the whole table and
// overwrite the whole table. There are no partial updates at this
// layer; the repository treats one read+write pair as its transaction
// boundary.
package store

import (
	"context"
)

// Record is one raw ledger row. Phone stays a string on purpose: some
// backends deliver it as a numeric and the repository normalizes the
// rendering artifacts on the way out.
type Record struct {
	ID            uint    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Date          string  `json:"date"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Details       string  `gorm:"type:text" json:"details"`
}

func (Record) TableName() string {
	return "ledger_rows"
}

// RecordStore is the seam between the order ledger and whatever holds
// the table. Write replaces the entire table with rows.
type RecordStore interface {
	Read(ctx context.Context) ([]Record, error)
	Write(ctx context.Context, rows []Record) error
}
