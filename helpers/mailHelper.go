package helpers

import (
	"errors"
	"fmt"
	"os"

	"bakehub/models"

	"gopkg.in/gomail.v2"
)

const (
	smtpHost = "smtp-relay.brevo.com"
	smtpPort = 587
)

var ErrMailNotConfigured = errors.New("SMTP credentials are not configured")

func smtpDialer() (*gomail.Dialer, error) {
	user := os.Getenv("BREVO_SMTP_USER")
	pass := os.Getenv("BREVO_SMTP_PASS")
	if user == "" || pass == "" {
		return nil, ErrMailNotConfigured
	}
	return gomail.NewDialer(smtpHost, smtpPort, user, pass), nil
}

func SendOTPEmail(email string, otp string) error {
	dialer, err := smtpDialer()
	if err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress("no-reply@bakehub.com", "BakeHub OTP"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your BakeHub OTP")
	m.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif">
			<h2>Your OTP Code</h2>
			<p>Use the following OTP to login:</p>
			<h1 style="letter-spacing: 4px">%s</h1>
			<p>This OTP is valid for 5 minutes.</p>
		</div>`, otp))
	return dialer.DialAndSend(m)
}

func SendOrderConfirmation(email string, order models.Order) error {
	dialer, err := smtpDialer()
	if err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress("no-reply@bakehub.com", "BakeHub Orders"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your BakeHub Order Confirmation")
	m.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif">
			<h2>Order Confirmed!</h2>
			<p>Thank you for your order.</p>
			<p><strong>Order ID:</strong> %s</p>
			<p><strong>Total:</strong> ₹%.2f</p>
			<p>We will deliver your order soon.</p>
		</div>`, order.Order_id, order.Total))
	return dialer.DialAndSend(m)
}
