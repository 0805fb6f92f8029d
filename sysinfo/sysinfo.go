// Package sysinfo gathers host facts from OS text files and helper command
// output. Each fact comes from a best-effort probe with its own ordered
// fallback chain; only the kernel and username probes can fail the run.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ANSI color codes for terminal output formatting
const (
	ColorReset     = "\033[0m"
	ColorBoldCyan  = "\033[1;36m"
	ColorBoldGreen = "\033[1;32m"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// Placeholders returned when every source of a probe fails.
const (
	Unknown    = "Unknown"
	UnknownCPU = "Unknown CPU"
	UnknownGPU = "Unknown GPU"
	DefaultOS  = "Linux"
)

var (
	// ErrKernel is returned when the kernel version command cannot be run.
	ErrKernel = errors.New("failed to get kernel version")
	// ErrUsername is returned when no username source is available.
	ErrUsername = errors.New("failed to get username")
)

// Report is the immutable result of one collection run. All fields are
// ready for display.
type Report struct {
	// Username is the current user's login name
	Username string

	// Hostname is the contents of /etc/hostname
	Hostname string

	// OS is the PRETTY_NAME from /etc/os-release
	OS string

	// Kernel is the output of uname -r
	Kernel string

	// Uptime is the compact uptime, e.g. "1d 2h 3m"
	Uptime string

	// Shell is the basename of $SHELL
	Shell string

	// Terminal is $TERM, nil when the variable is unset
	Terminal *string

	// Packages is the installed package count with the manager label
	Packages string

	// CPU is the processor model name
	CPU string

	// GPU is the graphics adapter model
	GPU string

	// GPUDriver is the graphics driver version
	GPUDriver string

	// MemoryUsed and MemoryTotal are formatted sizes, e.g. "5.72 GB"
	MemoryUsed  string
	MemoryTotal string
}

// Prober runs the field probes against a Source and the process environment.
type Prober struct {
	src       Source
	lookupEnv func(string) (string, bool)
	log       *zap.Logger
}

// NewProber returns a Prober reading from src. A nil logger disables logging.
func NewProber(src Source, log *zap.Logger) *Prober {
	if log == nil {
		log = zap.NewNop()
	}
	return &Prober{src: src, lookupEnv: os.LookupEnv, log: log}
}

// WithEnv replaces the environment lookup, mainly for tests.
func (p *Prober) WithEnv(lookup func(string) (string, bool)) *Prober {
	cp := *p
	cp.lookupEnv = lookup
	return &cp
}

// Collect runs every probe once, in order, and assembles the Report.
//
// Returns:
//   - A fully populated Report
//   - An error wrapping ErrKernel or ErrUsername if a fatal probe fails
func (p *Prober) Collect(ctx context.Context) (Report, error) {
	kernel, err := p.Kernel(ctx)
	if err != nil {
		return Report{}, err
	}
	user, err := p.Username(ctx)
	if err != nil {
		return Report{}, err
	}

	gpu, driver := p.GPU(ctx)
	used, total := p.Memory()

	r := Report{
		Username:    user,
		Hostname:    p.Hostname(),
		OS:          p.OSName(),
		Kernel:      kernel,
		Uptime:      p.Uptime(),
		Shell:       p.Shell(),
		Terminal:    p.Terminal(),
		Packages:    p.Packages(ctx),
		CPU:         p.CPU(),
		GPU:         gpu,
		GPUDriver:   driver,
		MemoryUsed:  used,
		MemoryTotal: total,
	}
	p.log.Debug("report assembled", zap.String("host", r.Hostname), zap.String("kernel", r.Kernel))
	return r, nil
}

func fatal(sentinel error, err error) error {
	return fmt.Errorf("%w: %v", sentinel, err)
}
