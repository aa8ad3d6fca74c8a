package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"order_studio/internal/lifecycle"
	"order_studio/internal/models"
	"order_studio/internal/pages"
	"order_studio/internal/phone"
	"order_studio/internal/pricing"
	"order_studio/internal/repository"
)

var (
	// ErrValidation covers bad submissions: missing required fields,
	// malformed phone, empty order attributes. Nothing is persisted.
	ErrValidation = errors.New("invalid submission")
	// ErrOrderNotFound is returned by staff operations on unknown ids.
	ErrOrderNotFound = errors.New("order not found")
)

type SubmitRequest struct {
	CustomerName string
	Phone        string
	Email        string
	Details      models.OrderDetails
}

type OrderService interface {
	// Submit validates, quotes, persists and returns the new order.
	// Notifications go out after persistence and never fail the call.
	Submit(ctx context.Context, req SubmitRequest) (*models.Order, error)
	// Track returns the customer's orders, newest first. A miss is an
	// empty slice, not an error.
	Track(ctx context.Context, rawPhone string) []models.Order
	// AttachFiles records the stored upload manifest on an order.
	AttachFiles(ctx context.Context, id uint, files []string) error
	// UpdateStatus applies a staff transition, optionally overriding
	// the amount, and notifies the customer when the new status calls
	// for it.
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, pay models.PaymentStatus, amount *float64) (*models.Order, error)
	AllOrders(ctx context.Context) []models.Order
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
}

type orderService struct {
	repo      repository.OrderRepository
	pricing   *pricing.Engine
	lifecycle *lifecycle.Engine
	notifier  Notifier
	logger    *zap.Logger
}

func NewOrderService(repo repository.OrderRepository, priceEngine *pricing.Engine, lifecycleEngine *lifecycle.Engine, notifier Notifier, logger *zap.Logger) OrderService {
	return &orderService{
		repo:      repo,
		pricing:   priceEngine,
		lifecycle: lifecycleEngine,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *orderService) Submit(ctx context.Context, req SubmitRequest) (*models.Order, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	phoneKey := phone.Normalize(req.Phone)
	if phoneKey == "" {
		return nil, fmt.Errorf("%w: a phone number is required", ErrValidation)
	}

	details := req.Details
	if err := s.resolveDetails(&details); err != nil {
		return nil, err
	}

	amount, err := s.pricing.Quote(details)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	order := &models.Order{
		CustomerName: req.CustomerName,
		Phone:        phoneKey,
		Email:        req.Email,
		Amount:       amount,
		Details:      details,
	}

	if _, err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	// The order is durable; notification runs detached from the
	// request and its cancellation.
	go s.notifier.OrderPlaced(context.Background(), *order)

	return order, nil
}

// resolveDetails fills in derived attributes before quoting: the page
// count from the textual range when the form did not carry one, and
// basic shape checks per product line.
func (s *orderService) resolveDetails(d *models.OrderDetails) error {
	switch d.Line {
	case models.LinePrint:
		if d.Print == nil {
			return fmt.Errorf("%w: print order needs print details", ErrValidation)
		}
		if d.Print.Pages <= 0 && d.Print.PageRange != "" {
			d.Print.Pages = pages.Count(d.Print.PageRange)
		}
		if d.Print.Pages <= 0 {
			return fmt.Errorf("%w: could not determine a page count", ErrValidation)
		}
	case models.LineCake:
		if d.Cake == nil {
			return fmt.Errorf("%w: cake order needs cake details", ErrValidation)
		}
		if d.Cake.WeightKg <= 0 {
			return fmt.Errorf("%w: cake weight must be positive", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown product line %q", ErrValidation, d.Line)
	}
	return nil
}

func (s *orderService) Track(ctx context.Context, rawPhone string) []models.Order {
	key := phone.Normalize(rawPhone)
	if key == "" {
		return nil
	}
	return s.repo.FindByPhoneKey(ctx, key)
}

func (s *orderService) AttachFiles(ctx context.Context, id uint, files []string) error {
	if len(files) == 0 {
		return nil
	}
	return s.repo.Update(ctx, id, func(o *models.Order) {
		o.Details.Files = files
	})
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, pay models.PaymentStatus, amount *float64) (*models.Order, error) {
	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.lifecycle.Validate(current.Status, status, current.PaymentStatus, pay); err != nil {
		return nil, err
	}
	if amount != nil && *amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}

	err = s.repo.Update(ctx, id, func(o *models.Order) {
		o.Status = status
		o.PaymentStatus = pay
		if amount != nil {
			o.Amount = *amount
		}
	})
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Status = status
	updated.PaymentStatus = pay
	if amount != nil {
		updated.Amount = *amount
	}

	if lifecycle.NotifiesCustomer(status) {
		go s.notifier.StatusChanged(context.Background(), updated)
	}

	s.logger.Info("order status updated",
		zap.Uint("order_id", id),
		zap.String("status", string(status)),
		zap.String("payment_status", string(pay)))
	return &updated, nil
}

func (s *orderService) AllOrders(ctx context.Context) []models.Order {
	return s.repo.All(ctx)
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	for _, o := range s.repo.All(ctx) {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
}
