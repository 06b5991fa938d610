package helpers

import (
	"testing"

	"bakehub/models"

	"github.com/stretchr/testify/assert"
)

func TestMailRequiresConfiguration(t *testing.T) {
	t.Setenv("BREVO_SMTP_USER", "")
	t.Setenv("BREVO_SMTP_PASS", "")

	assert.ErrorIs(t, SendOTPEmail("alice@example.com", "123456"), ErrMailNotConfigured)
	assert.ErrorIs(t, SendOrderConfirmation("alice@example.com", models.Order{Order_id: "order-1"}), ErrMailNotConfigured)
}
