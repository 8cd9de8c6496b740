package util

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const otpRange = 900000

// GenerateOTP returns a uniformly random 6-digit code in
// [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}

// istDisplayLayout mirrors the en-IN locale rendering used in OTP
// expiry confirmations, e.g. "2/1/2026, 3:04:05 pm".
const istDisplayLayout = "2/1/2006, 3:04:05 pm"

var istLocation = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// FormatIST renders a timestamp as the India Standard Time display
// string persisted alongside OTP records and returned to callers.
func FormatIST(t time.Time) string {
	return t.In(istLocation).Format(istDisplayLayout)
}
