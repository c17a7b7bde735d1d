package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Accepted layouts for dates sent by the dashboard
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// ParseDate parses a calendar date or a full timestamp
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// FormatInvoiceNo renders a sequence number as an invoice number,
// e.g. INV-2026-000042
func FormatInvoiceNo(prefix string, year int, seq int64) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%d-%06d", strings.ToUpper(prefix), year, seq)
}

// NormalizeMobile strips spaces and dashes from a phone number
func NormalizeMobile(mobile string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(mobile))
}

// NormalizeVehicleNo upper-cases a registration number and drops spaces
func NormalizeVehicleNo(vehicleNo string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(vehicleNo), " ", ""))
}
