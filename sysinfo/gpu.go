package sysinfo

import (
	"context"
	"strings"
)

// Kernel module presence markers.
const (
	amdgpuModule = "/sys/module/amdgpu"
	radeonModule = "/sys/module/radeon"
	i915Module   = "/sys/module/i915"
)

// displayClasses are the lspci device classes treated as graphics adapters.
var displayClasses = []string{"vga", "display", "3d", "graphics"}

type gpuInfo struct {
	name   string
	driver string
}

// GPU returns the graphics adapter model and its driver version, trying
// lspci, nvidia-smi and lshw in that order.
func (p *Prober) GPU(ctx context.Context) (name, driver string) {
	g := firstOf(p.log, "gpu", gpuInfo{name: UnknownGPU, driver: Unknown},
		parsed(p.command(ctx, "lspci"), func(out string) (gpuInfo, bool) {
			model, line, ok := findDisplayController(out)
			if !ok {
				return gpuInfo{}, false
			}
			return gpuInfo{name: model, driver: p.driverFor(ctx, line)}, true
		}),
		parsed(p.command(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader"), func(out string) (gpuInfo, bool) {
			model, ok := nonEmpty(out)
			if !ok {
				return gpuInfo{}, false
			}
			return gpuInfo{name: model, driver: p.NvidiaDriver(ctx)}, true
		}),
		parsed(p.command(ctx, "lshw", "-C", "display"), func(out string) (gpuInfo, bool) {
			model, ok := findAfter(out, "product:")
			if !ok {
				return gpuInfo{}, false
			}
			return gpuInfo{name: model, driver: p.AMDDriver(ctx)}, true
		}),
	)
	return g.name, g.driver
}

// driverFor picks the driver sub-probe from the vendor named on an lspci line.
func (p *Prober) driverFor(ctx context.Context, line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "nvidia"):
		return p.NvidiaDriver(ctx)
	case strings.Contains(lower, "amd") || strings.Contains(lower, "radeon") || strings.Contains(lower, "ati"):
		return p.AMDDriver(ctx)
	case strings.Contains(lower, "intel"):
		return p.IntelDriver(ctx)
	default:
		return Unknown
	}
}

// NvidiaDriver returns the proprietary NVIDIA driver version.
func (p *Prober) NvidiaDriver(ctx context.Context) string {
	return firstOf(p.log, "nvidia driver", Unknown,
		parsed(p.command(ctx, "nvidia-smi", "--query-gpu=driver_version", "--format=csv,noheader"), nonEmpty),
		parsed(p.command(ctx, "modinfo", "nvidia"), modinfoVersion),
	)
}

// AMDDriver returns the amdgpu or radeon module version, falling back to the
// Mesa version reported by glxinfo.
func (p *Prober) AMDDriver(ctx context.Context) string {
	return firstOf(p.log, "amd driver", Unknown,
		parsed(p.gated(amdgpuModule, p.command(ctx, "modinfo", "amdgpu")), labeled("AMDGPU", modinfoVersion)),
		parsed(p.gated(radeonModule, p.command(ctx, "modinfo", "radeon")), labeled("Radeon", modinfoVersion)),
		parsed(p.command(ctx, "glxinfo"), mesaVersion),
	)
}

// IntelDriver returns the i915 module version, falling back to Mesa.
func (p *Prober) IntelDriver(ctx context.Context) string {
	return firstOf(p.log, "intel driver", Unknown,
		parsed(p.gated(i915Module, p.command(ctx, "modinfo", "i915")), labeled("i915", modinfoVersion)),
		parsed(p.command(ctx, "glxinfo"), mesaVersion),
	)
}

// findDisplayController returns the model from the first lspci line naming a
// display class. The model is the third colon-separated field, e.g.
// "00:02.0 VGA compatible controller: Intel Corporation UHD 620".
func findDisplayController(out string) (model, line string, ok bool) {
	for _, l := range lines(out) {
		if !containsAny(strings.ToLower(l), displayClasses) {
			continue
		}
		parts := strings.Split(l, ":")
		if len(parts) < 3 {
			continue
		}
		return strings.TrimSpace(parts[2]), l, true
	}
	return "", "", false
}

func findAfter(out, key string) (string, bool) {
	for _, line := range lines(out) {
		if _, after, found := strings.Cut(line, key); found {
			return nonEmpty(after)
		}
	}
	return "", false
}

func modinfoVersion(out string) (string, bool) {
	for _, line := range lines(out) {
		if strings.HasPrefix(line, "version:") {
			return nonEmpty(strings.TrimPrefix(line, "version:"))
		}
	}
	return "", false
}

// mesaVersion returns the text from "Mesa" to the end of the first line
// mentioning it, e.g. "Mesa 23.2.1-1ubuntu3".
func mesaVersion(out string) (string, bool) {
	for _, line := range lines(out) {
		if i := strings.Index(line, "Mesa"); i >= 0 {
			return nonEmpty(line[i:])
		}
	}
	return "", false
}

func labeled(label string, parse func(string) (string, bool)) func(string) (string, bool) {
	return func(out string) (string, bool) {
		v, ok := parse(out)
		if !ok {
			return "", false
		}
		return label + " " + v, true
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
