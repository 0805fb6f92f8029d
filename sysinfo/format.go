// Package sysinfo - Formatting utilities
package sysinfo

import (
	"fmt"
	"strings"
)

// FormatUptime renders a number of seconds as a compact duration.
//
// Parameters:
//   - secs: Whole seconds since boot
//
// Returns:
//   - "{d}d {h}h {m}m" when at least one day has passed
//   - "{h}h {m}m" when at least one hour has passed
//   - "{m}m" otherwise
//
// Example: FormatUptime(90000) returns "1d 1h 0m"
func FormatUptime(secs uint64) string {
	days := secs / 86400
	hours := (secs % 86400) / 3600
	mins := (secs % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// FormatMemory converts a kibibyte count to MB or GB with two decimals.
//
// Parameters:
//   - kb: Size in kibibytes, as reported by /proc/meminfo
//
// Returns:
//   - "{x.xx} GB" when the size exceeds 1024 MB, "{x.xx} MB" otherwise
//
// Example: FormatMemory(8000000) returns "7.63 GB"
func FormatMemory(kb uint64) string {
	mb := float64(kb) / 1024
	if mb > 1024 {
		return fmt.Sprintf("%.2f GB", mb/1024)
	}
	return fmt.Sprintf("%.2f MB", mb)
}

// CountLines returns the number of lines in s. A trailing newline does not
// start a new line and the empty string has none.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// lines splits s into lines, dropping any trailing carriage return.
func lines(s string) []string {
	out := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}
