package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendPasswordResetEmail(email, fullName, token string) error
	SendWelcomeEmail(email, fullName string) error
	SendOrderConfirmationEmail(email, fullName string, orderID int, total float64) error
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

func (s *emailService) SendPasswordResetEmail(email, fullName, token string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password reset request")

	body := fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>We received a request to reset the password for your account.</p>
		<p>Use the following code to choose a new password: <strong>%s</strong></p>
		<p>The code is valid for a limited time and can be used once.</p>
		<p>If you did not request this change, you can ignore this email.</p>
	`, fullName, token)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Printstore!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. You can now browse the catalog and place orders.</p>
	`, fullName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendOrderConfirmationEmail(email, fullName string, orderID int, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Order #%d received", orderID))

	body := fmt.Sprintf(`
		<h3>Thank you, %s!</h3>
		<p>We received your order <strong>#%d</strong> for a total of <strong>%.2f</strong>.</p>
		<p>We will notify you when it ships.</p>
	`, fullName, orderID, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation email: %w", err)
	}
	return nil
}
