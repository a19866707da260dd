package utils

import (
	"math"
	"testing"
	"time"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"R$ 1.234,56", 1234.56, true},
		{"1.234,56", 1234.56, true},
		{"R$ 150,50", 150.50, true},
		{"100", 100, true},
		{"100,00", 100, true},
		{"50.5", 50.5, true},
		{"1,234.56", 1234.56, true},
		{"1.234", 1234, true},
		{"0.123", 0.123, true},
		{"-0.123", -0.123, true},
		{".123", 0.123, true},
		{"10.123", 10123, true},
		{"1.234.567,89", 1234567.89, true},
		{"-R$ 10,00", -10, true},
		{"abc", 0, false},
		{"", 0, false},
		{"R$ -", 0, false},
		{"--5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCurrency(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseCurrency(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseCurrency(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.56, "R$ 1.234,56"},
		{0, "R$ 0,00"},
		{150.5, "R$ 150,50"},
		{1234567.891, "R$ 1.234.567,89"},
	}
	for _, tt := range tests {
		if got := FormatBRL(tt.in); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDateDayFirst(t *testing.T) {
	jan5 := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"05/01/2025", jan5, true},
		{"5/1/2025", jan5, true},
		{"05/01/25", jan5, true},
		{"05/01/2025 14:30:00", jan5, true},
		{"05/01/2025 14:30", jan5, true},
		{"05-01-2025", jan5, true},
		{"05.01.2025", jan5, true},
		{"2025-01-05", jan5, true},
		{"2025-01-05T10:00:00Z", jan5, true},
		{"45662", jan5, true},
		{"31/12/2024", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), true},
		{"12/31/2024", time.Time{}, false},
		{"ontem", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
