package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Day-first layouts; "2" and "1" also accept zero-padded values.
var dateLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2.1.2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Spreadsheet serial day numbers accepted as dates (1900-01-01 .. 9999-12-31).
const (
	minSerialDate = 1
	maxSerialDate = 2958465
)

// ParseDate parses a day-first date and returns it truncated to the calendar
// day in UTC. ok is false when nothing matches.
func ParseDate(dateStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minSerialDate && serial <= maxSerialDate {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return truncateDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseCurrency converts a localized amount such as "R$ 1.234,56" into a
// float. Characters other than digits, ',', '.' and '-' are dropped. When both
// separators appear the last one is the decimal mark; a single dot followed
// by exactly three digits is read as a pt-BR thousands separator, unless the
// integer part is zero. ok is false
// for values that do not parse; callers leave those out of sums.
func ParseCurrency(valStr string) (float64, bool) {
	var b strings.Builder
	for _, r := range valStr {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case lastDot >= 0:
		intPart := strings.TrimPrefix(s[:lastDot], "-")
		if strings.Count(s, ".") > 1 || (len(s)-lastDot-1 == 3 && intPart != "0" && intPart != "") {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// FormatBRL renders v as "R$ 1.234,56".
func FormatBRL(v float64) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", v)
}
