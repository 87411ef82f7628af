package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// OS and architecture come from the Go runtime; the machine architecture is
// asked from the kernel through gopsutil, so an amd64 build running under
// Rosetta still learns it is on Apple Silicon when the kernel says so.
//
// If gopsutil cannot report the kernel architecture, MachineArch falls back
// to GOARCH.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	arch, _ := normalizeArch(runtime.GOARCH)
	info := &Info{
		OS:          runtime.GOOS,
		Arch:        arch,
		ArchRaw:     runtime.GOARCH,
		MachineArch: runtime.GOARCH,
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("platform detection cancelled: %w", err)
	}

	machine, err := host.KernelArch()
	if err != nil {
		return info, nil
	}
	if machine != "" {
		info.MachineArch = machine
	}

	return info, nil
}

// StaticDetector returns a fixed Info. It is used when the platform is
// already known, and in tests.
type StaticDetector struct {
	Info *Info
}

// Detect returns the configured Info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if s.Info == nil {
		return nil, fmt.Errorf("platform info is required")
	}
	return s.Info, nil
}
