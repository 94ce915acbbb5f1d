package procfs

import "errors"

var (
	// ErrProcUnavailable indicates that the proc filesystem is not mounted
	// (or not readable) at the configured root. Fatal for the whole
	// collector; detected once in New, never per call.
	ErrProcUnavailable = errors.New("procfs: proc filesystem unavailable")

	// ErrGone indicates that a process or thread vanished between
	// enumeration and the detail read. Routine, absorbed by Scan.
	ErrGone = errors.New("procfs: process vanished")

	// ErrBadStat indicates that /proc/<pid>/stat was empty or malformed.
	ErrBadStat = errors.New("procfs: malformed stat line")

	// ErrBadStatus indicates that /proc/<pid>/status was empty or malformed.
	ErrBadStatus = errors.New("procfs: malformed status file")

	// ErrBadStatm indicates that /proc/<pid>/statm had fewer fields than expected.
	ErrBadStatm = errors.New("procfs: malformed statm line")

	// ErrTableTooLarge indicates that the live process (or task) count
	// exceeds the Table's configured maximum batch size. Fatal for that
	// scan call; raise WithMaxProcs if the system is genuinely that big.
	ErrTableTooLarge = errors.New("procfs: process table exceeds configured maximum")
)
