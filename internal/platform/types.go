// Package platform describes the machine driversync runs on: operating system,
// architecture, the conventional driver filename and how the executable search
// path is split. It also exposes that information to Lua configuration files
// as a read-only table.
package platform

import "context"

// Info contains platform detection information.
type Info struct {
	OS          string // "linux", "darwin", "windows"
	Arch        string // normalized GOARCH ("amd64", "arm64", "386", ...)
	ArchRaw     string // original GOARCH
	MachineArch string // architecture reported by the kernel ("x86_64", "arm64", "aarch64")
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsARM64 returns true if the machine is arm64, whatever GOARCH the process was built for.
func (i *Info) IsARM64() bool {
	if i.MachineArch != "" {
		arch, _ := normalizeArch(i.MachineArch)
		return arch == "arm64"
	}
	return i.Arch == "arm64"
}

// IsAppleSilicon returns true if running on Apple Silicon (macOS + arm64).
func (i *Info) IsAppleSilicon() bool {
	return i.IsMacOS() && i.IsARM64()
}

// Is64Bit returns true if the architecture has a 64-bit word size.
func (i *Info) Is64Bit() bool {
	_, wide := normalizeArch(i.Arch)
	return wide
}

// DriverFilename returns the chromedriver executable name for this platform.
func (i *Info) DriverFilename() string {
	return DriverFilename(i.OS)
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
