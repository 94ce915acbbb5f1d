// Package sysinfo reads system-wide statistics from the proc filesystem:
// memory counters, cumulative CPU/paging/interrupt counters, disk and
// partition I/O counters, load averages and uptime. Each reader is a
// stateless parse of one pseudo-file into a fixed record shape; a
// malformed file fails that one read with a sentinel error.
//
// All counters are cumulative since boot and monotonically non-decreasing
// within one boot. Callers needing rates must delta two snapshots and
// divide by elapsed wall time.
package sysinfo
