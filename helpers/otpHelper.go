package helpers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const OTPValidity = 5 * time.Minute

var (
	ErrOTPNotFound = errors.New("OTP not found or expired")
	ErrOTPInvalid  = errors.New("invalid OTP")
)

// OTPs live in an expiring cache keyed by email, hashed at rest so a leaked
// dump is useless on its own. go-cache evicts expired entries on its own.
var otpStore = cache.New(OTPValidity, 10*time.Minute)

// One OTP every 30 seconds per email, small burst for flaky clients hitting
// resend.
var (
	otpLimiters  = make(map[string]*rate.Limiter)
	otpLimiterMu sync.Mutex
	otpRateLimit = rate.Every(30 * time.Second)
	otpRateBurst = 3
)

func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform is broken anyway
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// AllowOTPRequest reports whether another OTP may be sent to this email yet.
func AllowOTPRequest(email string) bool {
	otpLimiterMu.Lock()
	defer otpLimiterMu.Unlock()
	limiter, ok := otpLimiters[email]
	if !ok {
		limiter = rate.NewLimiter(otpRateLimit, otpRateBurst)
		otpLimiters[email] = limiter
	}
	return limiter.Allow()
}

func StoreOTP(email string, otp string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	otpStore.Set(email, hash, OTPValidity)
	return nil
}

// VerifyOTP checks the code against the stored hash and consumes it on
// success, so a code can only be used once.
func VerifyOTP(email string, otp string) error {
	stored, found := otpStore.Get(email)
	if !found {
		return ErrOTPNotFound
	}
	hash, ok := stored.([]byte)
	if !ok {
		return ErrOTPNotFound
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(otp)); err != nil {
		return ErrOTPInvalid
	}
	otpStore.Delete(email)
	return nil
}
