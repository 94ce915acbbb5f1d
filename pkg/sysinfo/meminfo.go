//go:build linux

package sysinfo

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/ja7ad/proctab/pkg/types"
)

// MemInfo is one snapshot of the system-wide memory counters. Every field
// is expressed in the Unit the snapshot was taken with; fields a kernel
// does not report (HighTotal on 64-bit, say) are zero.
type MemInfo struct {
	Unit types.Unit

	MainTotal   uint64
	MainFree    uint64
	MainUsed    uint64 // derived: total - free
	MainBuffers uint64
	MainCached  uint64

	HighTotal uint64
	HighFree  uint64
	LowTotal  uint64
	LowFree   uint64

	SwapTotal  uint64
	SwapFree   uint64
	SwapUsed   uint64 // derived: total - free
	SwapCached uint64

	Active      uint64
	Inactive    uint64
	Dirty       uint64
	Writeback   uint64
	Slab        uint64
	CommittedAS uint64
	Mapped      uint64
	PageTables  uint64
}

// MemInfo parses /proc/meminfo. The kernel reports kilobytes; every field
// is converted to unit by bit-shift, and the derived used values are
// computed at kilobyte precision first so that used = total - free holds
// exactly before the shift rounds anything.
func (fs FS) MemInfo(unit types.Unit) (*MemInfo, error) {
	f, err := os.Open(fs.path("meminfo"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kb := make(map[string]uint64, 32)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		val := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "kB"))
		v, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			continue
		}
		kb[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if _, ok := kb["MemTotal"]; !ok {
		return nil, ErrNoMemInfo
	}

	cv := unit.FromKB
	m := &MemInfo{
		Unit:        unit,
		MainTotal:   cv(kb["MemTotal"]),
		MainFree:    cv(kb["MemFree"]),
		MainUsed:    cv(kb["MemTotal"] - kb["MemFree"]),
		MainBuffers: cv(kb["Buffers"]),
		MainCached:  cv(kb["Cached"]),
		HighTotal:   cv(kb["HighTotal"]),
		HighFree:    cv(kb["HighFree"]),
		LowTotal:    cv(kb["LowTotal"]),
		LowFree:     cv(kb["LowFree"]),
		SwapTotal:   cv(kb["SwapTotal"]),
		SwapFree:    cv(kb["SwapFree"]),
		SwapCached:  cv(kb["SwapCached"]),
		Active:      cv(kb["Active"]),
		Inactive:    cv(kb["Inactive"]),
		Dirty:       cv(kb["Dirty"]),
		Writeback:   cv(kb["Writeback"]),
		Slab:        cv(kb["Slab"]),
		CommittedAS: cv(kb["Committed_AS"]),
		Mapped:      cv(kb["Mapped"]),
		PageTables:  cv(kb["PageTables"]),
	}
	if kb["SwapTotal"] >= kb["SwapFree"] {
		m.SwapUsed = cv(kb["SwapTotal"] - kb["SwapFree"])
	}
	return m, nil
}
