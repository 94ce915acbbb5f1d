package procfs

// Kind distinguishes a whole-process entry from a thread promoted to an
// independent entry by LooseTasks.
type Kind uint8

const (
	KindProcess Kind = iota
	KindThread
)

func (k Kind) String() string {
	if k == KindThread {
		return "thread"
	}
	return "process"
}

// ProcessRecord is one process (or, under LooseTasks, one thread) captured
// from a single snapshot read of its proc files. Records are never mutated
// after Read returns them and never cached between scans.
//
// Identifier, state, scheduling and timing fields are always populated.
// Cmdline, CmdlineRaw, Environ, the statm memory fields, the resolved
// User/Group names and WchanName are populated iff the corresponding fill
// flag was set; callers must not assume their presence otherwise.
type ProcessRecord struct {
	// Identifiers.
	Pid     int
	Tid     int // equals Pid for a whole-process entry
	PPid    int
	Pgrp    int
	Session int
	Kind    Kind

	// Credentials (from status). Names are filled under FillUsr/FillGrp,
	// one per credential id; empty means unrequested or unresolvable.
	Ruid, Euid, Suid, Fuid                 uint32
	Rgid, Egid, Sgid, Fgid                 uint32
	RuidName, EuidName, SuidName, FuidName string
	RgidName, EgidName, SgidName, FgidName string

	// Scheduling and state.
	State      string // one-char run state code (R, S, D, Z, T, ...)
	Priority   int64
	Nice       int64
	Policy     uint64
	RTPriority uint64
	Processor  int // cpu last executed on
	NumThreads uint64

	// Memory, from stat (VSize bytes, RSS pages) and, under FillMem,
	// from statm (all in pages).
	VSize    uint64
	RSS      uint64
	Size     uint64
	Resident uint64
	Share    uint64
	Text     uint64
	Data     uint64

	// Fault counters.
	MinFlt, CMinFlt uint64
	MajFlt, CMajFlt uint64

	// Timing, in clock ticks. StartTime is ticks after boot.
	Utime, Stime   uint64
	Cutime, Cstime uint64
	StartTime      uint64

	// Signal bitsets as the kernel's fixed-width hex text.
	SigPending string
	SigBlocked string
	SigIgnored string
	SigCaught  string

	// Command name (short, kernel-truncated) from status; always set.
	Cmd string

	// Flag-gated fields.
	Cmdline    []string // FillArg
	CmdlineRaw string   // FillCom
	Environ    []string // FillEnv
	WchanAddr  uint64   // raw wait-channel address from stat
	WchanName  string   // FillWchan
}
