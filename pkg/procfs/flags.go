package procfs

// Flags is a bitmask selecting which optional, costlier fields Scan and
// Read populate on each ProcessRecord. FillStatus and FillStat are always
// forced on; the identifiers and state fields they carry are the minimum
// a record needs to be useful.
type Flags uint32

const (
	// FillMem parses /proc/<pid>/statm into the page-granular memory fields.
	FillMem Flags = 1 << iota
	// FillCom reads /proc/<pid>/cmdline as one raw string (NULs become spaces).
	FillCom
	// FillArg reads /proc/<pid>/cmdline as a tokenized argument list.
	// FillCom and FillArg share a source but differ in whitespace handling;
	// both may be requested at once.
	FillArg
	// FillEnv reads /proc/<pid>/environ as a NUL-separated variable list.
	FillEnv
	// FillUsr resolves the record's user ids to names.
	FillUsr
	// FillGrp resolves the record's group ids to names.
	FillGrp
	// FillStatus parses /proc/<pid>/status. Always on.
	FillStatus
	// FillStat parses /proc/<pid>/stat. Always on.
	FillStat
	// FillWchan maps the wait-channel address to a kernel symbol name.
	FillWchan
	// LooseTasks enumerates every thread of every process as an independent
	// table entry instead of one entry per process.
	LooseTasks
)

// FillAll is every fill flag or-ed together. LooseTasks is deliberately
// excluded: thread granularity is an enumeration choice, not a field set.
const FillAll = FillMem | FillCom | FillArg | FillEnv | FillUsr | FillGrp |
	FillStatus | FillStat | FillWchan
