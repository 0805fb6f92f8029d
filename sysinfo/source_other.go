//go:build !linux
// +build !linux

package sysinfo

import "os"

// Exists implements Source.
func (h *HostSource) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
