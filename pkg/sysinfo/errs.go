package sysinfo

import "errors"

var (
	// ErrNoMemInfo indicates that /proc/meminfo was empty or malformed.
	ErrNoMemInfo = errors.New("sysinfo: malformed meminfo")

	// ErrNoStat indicates that /proc/stat had no aggregate cpu line.
	ErrNoStat = errors.New("sysinfo: malformed stat")

	// ErrNoDiskStats indicates that /proc/diskstats could not be parsed.
	ErrNoDiskStats = errors.New("sysinfo: malformed diskstats")

	// ErrNoLoadAvg indicates that /proc/loadavg did not carry three averages.
	ErrNoLoadAvg = errors.New("sysinfo: malformed loadavg")

	// ErrNoUptime indicates that /proc/uptime did not carry two durations.
	ErrNoUptime = errors.New("sysinfo: malformed uptime")
)
