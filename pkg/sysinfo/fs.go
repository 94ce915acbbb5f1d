//go:build linux

package sysinfo

import "path/filepath"

// FS locates the pseudo-files the readers parse. The zero value is not
// usable; call DefaultFS, or build one by hand to point the readers at a
// fixture tree in tests.
type FS struct {
	// Proc is the proc mount point.
	Proc string
	// Utmp is the login record file used for the user count in
	// UptimeString. Empty disables the count.
	Utmp string
}

// DefaultFS returns an FS over the conventional locations.
func DefaultFS() FS {
	return FS{Proc: "/proc", Utmp: "/var/run/utmp"}
}

func (fs FS) path(name string) string {
	return filepath.Join(fs.Proc, name)
}
