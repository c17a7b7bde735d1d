// Package notify delivers customer messages such as invoices and
// service-due reminders.
package notify

import (
	"context"
	"strings"
)

// Sender delivers a text message to a customer's phone number. A nil error
// means the channel accepted the message; delivery itself is not guaranteed.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// SenderFunc adapts a plain function to Sender
type SenderFunc func(ctx context.Context, to, message string) error

func (f SenderFunc) Send(ctx context.Context, to, message string) error {
	return f(ctx, to, message)
}

// FormatTemplate replaces every {{key}} placeholder in template with the
// matching value. Unknown placeholders are left untouched.
func FormatTemplate(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Default message templates. Placeholders are filled by FormatTemplate.
const (
	DefaultInvoiceTemplate  = "Dear {{name}},\n\nYour invoice {{invoice_no}} for vehicle {{vehicle_no}} has been generated.\n\nTotal Amount: ₹{{final_amount}}\n\nThank you for your service!"
	DefaultReminderTemplate = "Dear {{name}},\n\nYour vehicle {{vehicle_no}} is due for service on {{due_date}}.\n\nPlease visit us at your convenience."
)
