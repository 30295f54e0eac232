package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"thescent/internal/models"
)

type EmailService interface {
	SendWelcomeEmail(email, username string) error
	SendOrderConfirmation(email string, order *models.Order, items []*models.OrderItem) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to The Scent!")

	body := fmt.Sprintf(`
		<h2>Welcome to The Scent, %s!</h2>
		<p>Thank you for creating an account with us.</p>
		<p>Discover our collection of essential oils and natural soaps, or take
		the scent finder quiz to get a personal recommendation.</p>
		<p>Best regards,<br>The Scent Team</p>
	`, username)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

func (s *emailService) SendOrderConfirmation(email string, order *models.Order, items []*models.OrderItem) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.OrderNumber))

	rows := ""
	for _, item := range items {
		name := fmt.Sprintf("Product #%d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		rows += fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>$%s</td></tr>", name, item.Quantity, item.Price)
	}

	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Your order <strong>%s</strong> has been received and is being processed.</p>
		<table>
			<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
			%s
		</table>
		<p>Total: <strong>$%s</strong></p>
		<p>Best regards,<br>The Scent Team</p>
	`, order.OrderNumber, rows, order.Total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	return nil
}
