package sysinfo

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Paths of the OS text files the probes read.
const (
	hostnamePath  = "/etc/hostname"
	osReleasePath = "/etc/os-release"
	uptimePath    = "/proc/uptime"
	cpuinfoPath   = "/proc/cpuinfo"
	meminfoPath   = "/proc/meminfo"
)

// packageManagers are tried in order; the first one that can be started wins.
var packageManagers = []struct {
	label string
	cmd   string
	args  []string
}{
	{"apt", "dpkg", []string{"--get-selections"}},
	{"pacman", "pacman", []string{"-Q"}},
	{"rpm", "rpm", []string{"-qa"}},
}

// Hostname returns the trimmed contents of /etc/hostname.
func (p *Prober) Hostname() string {
	return firstOf(p.log, "hostname", Unknown,
		parsed(p.file(hostnamePath), nonEmpty),
	)
}

// OSName returns PRETTY_NAME from /etc/os-release, or "Linux".
func (p *Prober) OSName() string {
	return firstOf(p.log, "os", DefaultOS,
		parsed(p.file(osReleasePath), parseOSRelease),
	)
}

// Kernel returns the output of uname -r. Unlike the other probes, failing to
// start uname is fatal.
func (p *Prober) Kernel(ctx context.Context) (string, error) {
	out, err := p.src.Run(ctx, "uname", "-r")
	if err != nil {
		return "", fatal(ErrKernel, err)
	}
	if v, ok := nonEmpty(out); ok {
		return v, nil
	}
	return Unknown, nil
}

// Uptime returns the time since boot from /proc/uptime.
func (p *Prober) Uptime() string {
	return firstOf(p.log, "uptime", Unknown,
		parsed(p.file(uptimePath), parseUptime),
	)
}

// Shell returns the last path segment of $SHELL.
func (p *Prober) Shell() string {
	return firstOf(p.log, "shell", Unknown,
		parsed(p.env("SHELL"), lastSegment),
	)
}

// Terminal returns $TERM, or nil when it is unset.
func (p *Prober) Terminal() *string {
	term, ok := p.lookupEnv("TERM")
	if !ok {
		return nil
	}
	return &term
}

// Packages counts installed packages with the first package manager that
// can be started. The exit status is not checked, so a manager that runs but
// prints nothing reports 0.
func (p *Prober) Packages(ctx context.Context) string {
	attempts := make([]attempt[string], 0, len(packageManagers))
	for _, m := range packageManagers {
		label := m.label
		attempts = append(attempts, parsed(p.command(ctx, m.cmd, m.args...), func(out string) (string, bool) {
			return fmt.Sprintf("%d (%s)", CountLines(out), label), true
		}))
	}
	return firstOf(p.log, "packages", Unknown, attempts...)
}

// CPU returns the first "model name" from /proc/cpuinfo.
func (p *Prober) CPU() string {
	return firstOf(p.log, "cpu", UnknownCPU,
		parsed(p.file(cpuinfoPath), parseCPUInfo),
	)
}

// Memory returns used and total memory from /proc/meminfo. When the file is
// missing or lacks the fields both sizes quietly read "0.00 MB".
func (p *Prober) Memory() (used, total string) {
	m := firstOf(p.log, "memory", memInfo{},
		parsed(p.file(meminfoPath), parseMeminfo),
	)
	return FormatMemory(m.used()), FormatMemory(m.total)
}

// Username returns $USER, $USERNAME or the output of whoami. Failing to start
// whoami after both variables are missing is fatal.
func (p *Prober) Username(ctx context.Context) (string, error) {
	user := firstOf(p.log, "username", "",
		parsed(p.env("USER"), nonEmpty),
		parsed(p.env("USERNAME"), nonEmpty),
	)
	if user != "" {
		return user, nil
	}

	out, err := p.src.Run(ctx, "whoami")
	if err != nil {
		return "", fatal(ErrUsername, err)
	}
	if v, ok := nonEmpty(out); ok {
		return v, nil
	}
	return Unknown, nil
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func lastSegment(s string) (string, bool) {
	parts := strings.Split(s, "/")
	return nonEmpty(parts[len(parts)-1])
}

func parseOSRelease(s string) (string, bool) {
	for _, line := range lines(s) {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			return nonEmpty(strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), `"'`))
		}
	}
	return "", false
}

func parseUptime(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(secs) || secs < 0 || secs >= math.MaxUint64 {
		return "", false
	}
	return FormatUptime(uint64(secs)), true
}

func parseCPUInfo(s string) (string, bool) {
	for _, line := range lines(s) {
		if !strings.HasPrefix(line, "model name") {
			continue
		}
		_, model, ok := strings.Cut(line, ":")
		if !ok {
			return "", false
		}
		return nonEmpty(model)
	}
	return "", false
}

// memInfo holds kibibyte values from /proc/meminfo.
type memInfo struct {
	total     uint64
	available uint64
}

func (m memInfo) used() uint64 {
	if m.available > m.total {
		return 0
	}
	return m.total - m.available
}

// parseMeminfo never fails: absent or malformed fields stay zero.
func parseMeminfo(s string) (memInfo, bool) {
	var m memInfo
	for _, line := range lines(s) {
		var dst *uint64
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			dst = &m.total
		case strings.HasPrefix(line, "MemAvailable:"):
			dst = &m.available
		default:
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if kb, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
			*dst = kb
		}
	}
	return m, true
}
