package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"order_studio/internal/models"
	"order_studio/internal/phone"
	"order_studio/internal/store"
)

// ledger timestamps use the same layout the spreadsheet rows carry.
const dateLayout = "2006-01-02 15:04:05"

type OrderRepository interface {
	// Create allocates an id, stamps creation defaults and appends the
	// order. A store failure is a hard error: the caller must never
	// report an order as placed if persistence did not succeed.
	Create(ctx context.Context, order *models.Order) (uint, error)
	// All returns every order in storage order. Store failures degrade
	// to an empty result; callers cannot tell "unavailable" from
	// "nothing there yet".
	All(ctx context.Context) []models.Order
	// FindByPhoneKey filters All by canonical phone key, newest first.
	FindByPhoneKey(ctx context.Context, key string) []models.Order
	// Update applies mutate to the order with the given id and writes
	// the table back. Missing ids are a silent no-op; write failures
	// propagate.
	Update(ctx context.Context, id uint, mutate func(*models.Order)) error
}

type orderRepository struct {
	store  store.RecordStore
	ids    IDSource
	logger *zap.Logger
	now    func() time.Time

	// mu serializes every read-then-write sequence. The backing store
	// offers no isolation between reading the table and overwriting
	// it, so without this two concurrent creates can allocate the same
	// id and clobber each other's row.
	mu sync.Mutex
}

func NewOrderRepository(recordStore store.RecordStore, ids IDSource, logger *zap.Logger) OrderRepository {
	return &orderRepository{
		store:  recordStore,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.Read(ctx)
	if err != nil {
		// Writing after a failed read would overwrite rows we never
		// saw, so creation refuses rather than degrades here.
		return 0, fmt.Errorf("order create: %w", err)
	}

	id, err := r.ids.Next(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("order create: %w", err)
	}

	order.ID = id
	order.CreatedAt = r.now()
	if order.Status == "" {
		order.Status = models.StatusReceived
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentUnpaid
	}

	rec, err := encodeRecord(*order)
	if err != nil {
		return 0, fmt.Errorf("order create: %w", err)
	}

	rows = append(rows, rec)
	if err := r.store.Write(ctx, rows); err != nil {
		return 0, fmt.Errorf("order create: %w", err)
	}

	r.logger.Info("order persisted",
		zap.Uint("order_id", id),
		zap.String("line", string(order.Details.Line)),
		zap.Float64("amount", order.Amount))
	return id, nil
}

func (r *orderRepository) All(ctx context.Context) []models.Order {
	rows, err := r.store.Read(ctx)
	if err != nil {
		r.logger.Warn("ledger read failed, returning empty table", zap.Error(err))
		return nil
	}

	orders := make([]models.Order, 0, len(rows))
	for _, rec := range rows {
		orders = append(orders, decodeRecord(rec, r.logger))
	}
	return orders
}

func (r *orderRepository) FindByPhoneKey(ctx context.Context, key string) []models.Order {
	if key == "" {
		return nil
	}

	var matched []models.Order
	for _, o := range r.All(ctx) {
		if o.Phone == key {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return matched
}

func (r *orderRepository) Update(ctx context.Context, id uint, mutate func(*models.Order)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("order update: %w", err)
	}

	found := false
	for i, rec := range rows {
		if rec.ID != id {
			continue
		}
		order := decodeRecord(rec, r.logger)
		mutate(&order)
		order.ID = id // the mutator cannot reassign identity
		updated, err := encodeRecord(order)
		if err != nil {
			return fmt.Errorf("order update: %w", err)
		}
		updated.Date = rec.Date // created_at is immutable
		rows[i] = updated
		found = true
		break
	}

	if !found {
		r.logger.Debug("order update skipped, id not in ledger", zap.Uint("order_id", id))
		return nil
	}

	if err := r.store.Write(ctx, rows); err != nil {
		return fmt.Errorf("order update: %w", err)
	}
	return nil
}

func encodeRecord(o models.Order) (store.Record, error) {
	details, err := json.Marshal(o.Details)
	if err != nil {
		return store.Record{}, fmt.Errorf("failed to marshal order details: %w", err)
	}
	return store.Record{
		ID:            o.ID,
		Date:          o.CreatedAt.Format(dateLayout),
		Name:          o.CustomerName,
		Phone:         o.Phone,
		Email:         o.Email,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Amount:        o.Amount,
		Details:       string(details),
	}, nil
}

// decodeRecord tolerates the sloppiness of shared-table rows: unknown
// dates, numeric phone artifacts and malformed detail blobs all decode
// to usable zero values instead of failing the scan.
func decodeRecord(rec store.Record, logger *zap.Logger) models.Order {
	o := models.Order{
		ID:            rec.ID,
		CustomerName:  rec.Name,
		Phone:         phone.Normalize(rec.Phone),
		Email:         rec.Email,
		Status:        models.OrderStatus(rec.Status),
		PaymentStatus: models.PaymentStatus(rec.PaymentStatus),
		Amount:        rec.Amount,
	}
	if ts, err := time.ParseInLocation(dateLayout, rec.Date, time.Local); err == nil {
		o.CreatedAt = ts
	}
	if rec.Details != "" {
		if err := json.Unmarshal([]byte(rec.Details), &o.Details); err != nil {
			logger.Warn("order has unreadable details blob", zap.Uint("order_id", rec.ID), zap.Error(err))
		}
	}
	return o
}
