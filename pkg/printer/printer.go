package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Job is one rendered document handed to a printer.
type Job struct {
	Title       string
	ContentType string
	Data        []byte
}

// Printer is the sink that turns a rendered region into a printed or spooled document.
type Printer interface {
	// Print delivers the job. It never navigates or blocks beyond ctx.
	Print(ctx context.Context, job Job) error
	// IsConnected returns true if the printer is reachable.
	IsConnected(ctx context.Context) bool
}

// --- USB Printer (writes to device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(_ context.Context, job Job) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job.Data); err != nil {
		return fmt.Errorf("printer: write %q to USB device %s: %w", job.Title, p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network Printer (raw TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, job Job) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(job.Data); err != nil {
		return fmt.Errorf("printer: write %q to %s: %w", job.Title, p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Spool Printer (writes each job to a file named after its title) ---

type spoolPrinter struct {
	dir string
	now func() time.Time
}

// NewSpoolPrinter stores jobs under dir, for PDF layouts or hosts without hardware.
func NewSpoolPrinter(dir string) Printer {
	return &spoolPrinter{dir: dir, now: time.Now}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (p *spoolPrinter) Print(_ context.Context, job Job) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("printer: create spool dir: %w", err)
	}
	name := strings.Trim(unsafeName.ReplaceAllString(job.Title, "-"), "-")
	if name == "" {
		name = "job"
	}
	name = fmt.Sprintf("%s-%s%s", p.now().Format("20060102-150405"), name, extension(job.ContentType))
	if err := os.WriteFile(filepath.Join(p.dir, name), job.Data, 0o644); err != nil {
		return fmt.Errorf("printer: spool %q: %w", job.Title, err)
	}
	return nil
}

func (p *spoolPrinter) IsConnected(context.Context) bool {
	info, err := os.Stat(p.dir)
	return err == nil && info.IsDir()
}

func extension(contentType string) string {
	switch contentType {
	case ContentTypePDF:
		return ".pdf"
	case ContentTypeESCPOS:
		return ".bin"
	default:
		return ""
	}
}

// --- Null Printer (no-op, used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, Job) error   { return nil }
func (nullPrinter) IsConnected(context.Context) bool { return false }

// NewPrinterFromConfig creates the appropriate Printer based on type.
//
//	printerType: "usb", "network", "spool" or "none"
//	target: device path, TCP address or spool directory
func NewPrinterFromConfig(printerType, target string) (Printer, error) {
	switch printerType {
	case "usb":
		if target == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(target), nil
	case "network":
		if target == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(target), nil
	case "spool":
		if target == "" {
			target = "./spool"
		}
		return NewSpoolPrinter(target), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, spool or none)", printerType)
	}
}
