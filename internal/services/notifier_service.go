package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"order_studio/internal/lifecycle"
	"order_studio/internal/models"
	"order_studio/internal/phone"
)

// Notifier delivers customer-facing messages. Implementations never
// block order placement and never return errors to the caller: a
// persisted order stays persisted whatever happens to the message.
type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order)
	StatusChanged(ctx context.Context, order models.Order)
}

// WhatsAppSender is the slice of the gateway client the notifier uses.
type WhatsAppSender interface {
	SendTextMessage(ctx context.Context, msisdn, message string) error
}

type NotifierConfig struct {
	CountryCode string
	OwnerPhone  string
	OwnerEmail  string
	UPIAddress  string
	UPIName     string
}

type notifierService struct {
	wa     WhatsAppSender
	mail   Mailer
	cfg    NotifierConfig
	logger *zap.Logger
}

func NewNotifierService(wa WhatsAppSender, mail Mailer, cfg NotifierConfig, logger *zap.Logger) Notifier {
	return &notifierService{wa: wa, mail: mail, cfg: cfg, logger: logger}
}

func (s *notifierService) OrderPlaced(ctx context.Context, order models.Order) {
	customerMsg := fmt.Sprintf(
		"Hi %s! Your order #%d has been received.\n%s\nEstimated amount: ₹%.2f\n\nPlease wait for a confirmation message before making any payment.",
		order.CustomerName, order.ID, summarize(order.Details), order.Amount)
	s.sendWhatsApp(ctx, order.Phone, customerMsg)

	if s.cfg.OwnerPhone != "" {
		ownerMsg := fmt.Sprintf("New %s order #%d from %s (%s), ₹%.2f",
			order.Details.Line, order.ID, order.CustomerName, order.Phone, order.Amount)
		s.sendWhatsApp(ctx, s.cfg.OwnerPhone, ownerMsg)
	}

	s.sendMail(order, fmt.Sprintf("New Order #%d: %s", order.ID, order.CustomerName),
		fmt.Sprintf("New order received.\n\nName: %s\nPhone: %s\nEmail: %s\n%s\nAmount: ₹%.2f",
			order.CustomerName, order.Phone, order.Email, summarize(order.Details), order.Amount))
}

func (s *notifierService) StatusChanged(ctx context.Context, order models.Order) {
	var msg string
	switch order.Status {
	case models.StatusWaitingForPayment:
		msg = fmt.Sprintf(
			"Your order #%d is confirmed!\nAmount due: ₹%.2f\nPay here: %s",
			order.ID, order.Amount, s.payLink(order.Amount))
	case models.StatusReadyForPickup:
		msg = fmt.Sprintf("Good news %s! Order #%d is ready for pickup.", order.CustomerName, order.ID)
	case models.StatusCompleted:
		msg = fmt.Sprintf("Order #%d is completed. Thank you for choosing us!", order.ID)
	default:
		if !lifecycle.NotifiesCustomer(order.Status) {
			return
		}
		msg = fmt.Sprintf("Order #%d is now %s.", order.ID, order.Status)
	}
	s.sendWhatsApp(ctx, order.Phone, msg)
}

func (s *notifierService) sendWhatsApp(ctx context.Context, rawPhone, message string) {
	if s.wa == nil || rawPhone == "" {
		return
	}
	msisdn := phone.ForWhatsApp(rawPhone, s.cfg.CountryCode)
	if err := s.wa.SendTextMessage(ctx, msisdn, message); err != nil {
		s.logger.Warn("whatsapp notification failed", zap.String("msisdn", msisdn), zap.Error(err))
	}
}

func (s *notifierService) sendMail(order models.Order, subject, body string) {
	if s.mail == nil {
		return
	}
	to := make([]string, 0, 2)
	if s.cfg.OwnerEmail != "" {
		to = append(to, s.cfg.OwnerEmail)
	}
	if order.Email != "" {
		to = append(to, order.Email)
	}
	if len(to) == 0 {
		return
	}
	if err := s.mail.Send(to, subject, body); err != nil {
		s.logger.Warn("email notification failed", zap.Uint("order_id", order.ID), zap.Error(err))
	}
}

func (s *notifierService) payLink(amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		url.QueryEscape(s.cfg.UPIAddress), url.QueryEscape(s.cfg.UPIName), amount)
}

func summarize(d models.OrderDetails) string {
	switch d.Line {
	case models.LinePrint:
		if d.Print == nil {
			return "Print order"
		}
		return fmt.Sprintf("Print: %d pages, %s, %s paper, %s-sided",
			d.Print.Pages, d.Print.ColorMode, d.Print.PaperType, d.Print.Sides)
	case models.LineCake:
		if d.Cake == nil {
			return "Cake order"
		}
		line := fmt.Sprintf("Cake: %s, %.1fkg, %s", d.Cake.Flavor, d.Cake.WeightKg, d.Cake.Shape)
		if len(d.Cake.Toppings) > 0 {
			line += ", toppings: " + strings.Join(d.Cake.Toppings, ", ")
		}
		return line
	}
	return string(d.Line) + " order"
}
