package util

import (
	"strconv"
	"testing"
	"time"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP returned error: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("expected 6-digit code, got %q", otp)
		}
		n, err := strconv.Atoi(otp)
		if err != nil {
			t.Fatalf("expected numeric code, got %q", otp)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestFormatIST(t *testing.T) {
	// 10:04:05 UTC is 15:34:05 IST.
	at := time.Date(2026, time.January, 2, 10, 4, 5, 0, time.UTC)
	got := FormatIST(at)
	want := "2/1/2026, 3:34:05 pm"
	if got != want {
		t.Fatalf("FormatIST = %q, want %q", got, want)
	}
}

func TestFormatISTMorning(t *testing.T) {
	// 02:30:00 UTC is 08:00:00 IST.
	at := time.Date(2026, time.June, 15, 2, 30, 0, 0, time.UTC)
	got := FormatIST(at)
	want := "15/6/2026, 8:00:00 am"
	if got != want {
		t.Fatalf("FormatIST = %q, want %q", got, want)
	}
}
