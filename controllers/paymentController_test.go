package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func razorpaySign(orderID string, paymentID string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "test-key-secret"
	signature := razorpaySign("order_123", "pay_456", secret)

	assert.True(t, VerifyRazorpaySignature("order_123", "pay_456", signature, secret))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", signature, "wrong-secret"))
	assert.False(t, VerifyRazorpaySignature("order_999", "pay_456", signature, secret))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_999", signature, secret))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", "tampered", secret))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", "", secret))
}
