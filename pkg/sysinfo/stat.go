//go:build linux

package sysinfo

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// CPUTicks are the aggregate per-category CPU tick counters from the
// "cpu" line of /proc/stat. Categories a kernel predates are zero.
type CPUTicks struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// Stat is one snapshot of the cumulative counters in /proc/stat. Paging
// and swap activity moved to /proc/vmstat in kernel 2.6; the reader
// falls back there when the stat file carries no page/swap lines.
type Stat struct {
	CPU CPUTicks

	PageIn  uint64
	PageOut uint64
	SwapIn  uint64
	SwapOut uint64

	Intr uint64
	Ctxt uint64

	Running uint64
	Blocked uint64

	BootTime  uint64 // seconds since epoch
	Processes uint64 // forks since boot
}

// Stat parses /proc/stat (and /proc/vmstat for paging counters on modern
// kernels) into one Stat snapshot.
func (fs FS) Stat() (*Stat, error) {
	f, err := os.Open(fs.path("stat"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		st     Stat
		hasCPU bool
		hasPg  bool
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		get := func(i int) uint64 {
			if i >= len(fields) {
				return 0
			}
			v, _ := strconv.ParseUint(fields[i], 10, 64)
			return v
		}
		switch fields[0] {
		case "cpu":
			st.CPU = CPUTicks{
				User:    get(1),
				Nice:    get(2),
				System:  get(3),
				Idle:    get(4),
				IOWait:  get(5),
				IRQ:     get(6),
				SoftIRQ: get(7),
				Steal:   get(8),
			}
			hasCPU = true
		case "page":
			st.PageIn, st.PageOut = get(1), get(2)
			hasPg = true
		case "swap":
			st.SwapIn, st.SwapOut = get(1), get(2)
		case "intr":
			st.Intr = get(1)
		case "ctxt":
			st.Ctxt = get(1)
		case "procs_running":
			st.Running = get(1)
		case "procs_blocked":
			st.Blocked = get(1)
		case "btime":
			st.BootTime = get(1)
		case "processes":
			st.Processes = get(1)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !hasCPU {
		return nil, ErrNoStat
	}
	if !hasPg {
		fs.fillVMStat(&st)
	}
	return &st, nil
}

// fillVMStat supplies paging and swap counters from /proc/vmstat on
// kernels that dropped them from /proc/stat. Best-effort: a missing
// vmstat leaves the counters zero.
func (fs FS) fillVMStat(st *Stat) {
	f, err := os.Open(fs.path("vmstat"))
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), " ")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			continue
		}
		switch key {
		case "pgpgin":
			st.PageIn = v
		case "pgpgout":
			st.PageOut = v
		case "pswpin":
			st.SwapIn = v
		case "pswpout":
			st.SwapOut = v
		}
	}
}
