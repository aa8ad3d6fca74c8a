package models

import (
	"time"
)

// Order is one row in the shared ledger. Ids are allocated by the
// repository, never by the backing store.
type Order struct {
	ID            uint          `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	CustomerName  string        `json:"customer_name"`
	Phone         string        `json:"phone"` // digits-only canonical form
	Email         string        `json:"email"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Amount        float64       `json:"amount"`
	Details       OrderDetails  `json:"details"`
}

type OrderStatus string

const (
	StatusReceived          OrderStatus = "Received"
	StatusPending           OrderStatus = "Pending"
	StatusWaitingForPayment OrderStatus = "WaitingForPayment"
	StatusPrinting          OrderStatus = "Printing"
	StatusReadyForPickup    OrderStatus = "ReadyForPickup"
	StatusCompleted         OrderStatus = "Completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "Unpaid"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// ValidStatus reports whether s is one of the known fulfillment states.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusReceived, StatusPending, StatusWaitingForPayment,
		StatusPrinting, StatusReadyForPickup, StatusCompleted:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether p is a known payment state.
func ValidPaymentStatus(p PaymentStatus) bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
