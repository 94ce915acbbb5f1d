// Package procfs collects the live process table from the /proc
// pseudo-filesystem as structured, strongly-typed records. It is built to
// be called repeatedly (once per second is typical) without excessive
// allocation or syscall overhead: one scan does one bounded read per
// pseudo-file, parses only what the fill flags request, and retains no
// state between scans except the id-name cache.
//
// # Overview
//
//   - Table: a collector instance. New verifies /proc is mounted once;
//     Scan(flags) returns the whole table, Read(pid, flags) one process.
//
//   - Flags: a bitmask choosing which costlier fields to fill per record
//     (command line, environment, statm memory, name resolution,
//     wait-channel symbol). FillStatus and FillStat are always on.
//     FillAll is every fill flag; LooseTasks additionally promotes each
//     thread to its own table entry.
//
//   - ProcessRecord: an immutable snapshot of one process (or thread).
//     Optional fields are present iff their flag was set.
//
// # Error behavior
//
// A process exiting between enumeration and its detail read is routine:
// the entry reports ErrGone internally and Scan silently drops it, so a
// scan's record count may be less than the enumerated count. A malformed
// pseudo-file fails only its own record. Two conditions fail a whole
// call: ErrProcUnavailable (no proc mount, detected in New) and
// ErrTableTooLarge (live entry count above the configured cap; never a
// silent truncation).
//
// # Concurrency
//
// Reading N processes touches disjoint files, so Scan can fan reads out
// over a worker pool (WithWorkers). The only shared mutable state is the
// ident.Cache, which fills missing keys under duplicate suppression.
// Result order always matches enumeration order, parallel or not, but
// that order itself carries no guarantee.
//
// All CPU timing fields are in clock ticks (see Hertz); memory fields
// from statm are in pages (see PageSize). Counters are uint64 throughout,
// so kernel counters are never narrowed or wrapped.
package procfs
