package repository

import (
	"context"

	"order_studio/internal/store"
)

// IDSource hands out the next order id. The rows of the current table
// are passed in so scan-based sources can work without a second read.
type IDSource interface {
	Next(ctx context.Context, rows []store.Record) (uint, error)
}

// MaxScanIDSource computes next id = max existing id + 1. This is the
// compatibility mode for backends with no counter primitive; it is only
// safe because the repository serializes Create calls around it.
type MaxScanIDSource struct{}

func (MaxScanIDSource) Next(_ context.Context, rows []store.Record) (uint, error) {
	var max uint
	for _, r := range rows {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1, nil
}

// OrderSequence is the slice of the Redis client the sequence source
// needs.
type OrderSequence interface {
	NextOrderID(ctx context.Context) (uint, error)
}

// SequenceIDSource allocates ids from an atomic external counter, so
// uniqueness holds even across multiple processes sharing the table.
type SequenceIDSource struct {
	seq OrderSequence
}

func NewSequenceIDSource(seq OrderSequence) *SequenceIDSource {
	return &SequenceIDSource{seq: seq}
}

func (s *SequenceIDSource) Next(ctx context.Context, _ []store.Record) (uint, error) {
	return s.seq.NextOrderID(ctx)
}
