package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 6)
		for _, ch := range otp {
			require.True(t, ch >= '0' && ch <= '9', "OTP %q contains non-digit", otp)
		}
	}
}

func TestStoreAndVerifyOTP(t *testing.T) {
	email := "verify-ok@example.com"
	require.NoError(t, StoreOTP(email, "123456"))

	assert.NoError(t, VerifyOTP(email, "123456"))

	// Consumed on success, a second attempt must fail.
	assert.ErrorIs(t, VerifyOTP(email, "123456"), ErrOTPNotFound)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	email := "verify-wrong@example.com"
	require.NoError(t, StoreOTP(email, "123456"))

	assert.ErrorIs(t, VerifyOTP(email, "654321"), ErrOTPInvalid)

	// A wrong guess does not consume the code.
	assert.NoError(t, VerifyOTP(email, "123456"))
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	assert.ErrorIs(t, VerifyOTP("nobody@example.com", "123456"), ErrOTPNotFound)
}

func TestAllowOTPRequestRateLimits(t *testing.T) {
	email := "rate-limit@example.com"

	// The burst allows a few immediate sends, then the limiter kicks in.
	for i := 0; i < otpRateBurst; i++ {
		assert.True(t, AllowOTPRequest(email), "request %d within burst should pass", i+1)
	}
	assert.False(t, AllowOTPRequest(email))

	// Other emails are unaffected.
	assert.True(t, AllowOTPRequest("someone-else@example.com"))
}
