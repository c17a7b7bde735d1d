// Package printer renders and delivers ESC/POS receipts for the counter's
// thermal printer.
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// ErrNotConfigured is returned by the printer used when none is set up
var ErrNotConfigured = errors.New("printer: no printer configured")

// Printer sends a raw ESC/POS stream to a device
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Kind names the transport: usb, network or none
	Kind() string
}

// USB printers are written through their device file, e.g. /dev/usb/lp0
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Kind() string { return "usb" }

// Network printers accept raw jobs on a TCP port, usually 9100
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Kind() string { return "network" }

type nullPrinter struct{}

func (nullPrinter) Print(context.Context, []byte) error { return ErrNotConfigured }

func (nullPrinter) Kind() string { return "none" }

// New builds the printer named by kind. An empty kind or "none" yields a
// printer that refuses every job with ErrNotConfigured.
func New(kind, usbPath, address string, timeout time.Duration) (Printer, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	switch kind {
	case "usb":
		if usbPath == "" {
			return nil, errors.New("printer: usb printer needs a device path")
		}
		return &usbPrinter{path: usbPath}, nil
	case "network":
		if address == "" {
			return nil, errors.New("printer: network printer needs an address")
		}
		return &networkPrinter{address: address, timeout: timeout}, nil
	case "", "none":
		return nullPrinter{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q (use usb, network or none)", kind)
	}
}
