// Package lifecycle validates status and payment transitions and
// decides which of them have to reach the customer.
package lifecycle

import (
	"errors"
	"fmt"

	"order_studio/internal/models"
)

var (
	ErrUnknownStatus     = errors.New("lifecycle: unknown status")
	ErrInvalidTransition = errors.New("lifecycle: invalid transition")
)

// statusRank orders the fulfillment states. Received and Pending share
// a rank: historically staff used them interchangeably for "not yet
// picked up by the kitchen/printer".
var statusRank = map[models.OrderStatus]int{
	models.StatusReceived:          0,
	models.StatusPending:           0,
	models.StatusWaitingForPayment: 1,
	models.StatusPrinting:          2,
	models.StatusReadyForPickup:    3,
	models.StatusCompleted:         4,
}

var paymentRank = map[models.PaymentStatus]int{
	models.PaymentUnpaid:   0,
	models.PaymentPaid:     1,
	models.PaymentRefunded: 2,
}

// Engine applies transition rules. In lenient mode staff may set any
// known state combination, matching how the shop has always operated;
// strict mode turns on the forward-only transition table.
type Engine struct {
	strict bool
}

func New(strict bool) *Engine {
	return &Engine{strict: strict}
}

// Validate checks a proposed transition. Unknown states are rejected in
// both modes; ordering rules apply only in strict mode.
func (e *Engine) Validate(fromStatus, toStatus models.OrderStatus, fromPay, toPay models.PaymentStatus) error {
	if !models.ValidStatus(toStatus) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, toStatus)
	}
	if !models.ValidPaymentStatus(toPay) {
		return fmt.Errorf("%w: payment %q", ErrUnknownStatus, toPay)
	}
	if !e.strict {
		return nil
	}

	if from, ok := statusRank[fromStatus]; ok && statusRank[toStatus] < from {
		return fmt.Errorf("%w: %s -> %s moves backwards", ErrInvalidTransition, fromStatus, toStatus)
	}
	if from, ok := paymentRank[fromPay]; ok && paymentRank[toPay] < from {
		return fmt.Errorf("%w: payment %s -> %s moves backwards", ErrInvalidTransition, fromPay, toPay)
	}
	if toStatus == models.StatusCompleted && toPay == models.PaymentUnpaid {
		return fmt.Errorf("%w: cannot complete an unpaid order", ErrInvalidTransition)
	}
	return nil
}

// NotifiesCustomer reports whether landing in status must trigger an
// outbound message: a payment request, or pickup/completion news.
func NotifiesCustomer(status models.OrderStatus) bool {
	switch status {
	case models.StatusWaitingForPayment, models.StatusReadyForPickup, models.StatusCompleted:
		return true
	}
	return false
}
