//go:build linux

package procfs

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Symtab maps kernel text addresses to symbol names for wait-channel
// resolution. It is owned by the Table that built it, not process-global,
// so independent Tables (and tests) never share state.
type Symtab struct {
	addrs []uint64 // ascending
	names []string
}

// loadSymtab parses a kallsyms-format file: "<hex addr> <type> <name>".
// Only text symbols (T/t/W/w) are kept; a sleeping process waits in code,
// not data. Unreadable addresses (all-zero under kptr_restrict) are
// dropped, which degrades lookup to "no symbol" rather than failing.
func loadSymtab(path string) (*Symtab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type sym struct {
		addr uint64
		name string
	}
	var syms []sym
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) < 3 {
			continue
		}
		switch fs[1] {
		case "T", "t", "W", "w":
		default:
			continue
		}
		addr, err := strconv.ParseUint(fs[0], 16, 64)
		if err != nil || addr == 0 {
			continue
		}
		syms = append(syms, sym{addr, fs[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sort.Slice(syms, func(i, j int) bool { return syms[i].addr < syms[j].addr })
	st := &Symtab{
		addrs: make([]uint64, len(syms)),
		names: make([]string, len(syms)),
	}
	for i, s := range syms {
		st.addrs[i] = s.addr
		st.names[i] = s.name
	}
	return st, nil
}

// Lookup returns the name of the nearest symbol at or preceding addr, or
// "" when addr sits before every known symbol (or the table is empty).
func (s *Symtab) Lookup(addr uint64) string {
	i := sort.Search(len(s.addrs), func(i int) bool { return s.addrs[i] > addr })
	if i == 0 {
		return ""
	}
	return s.names[i-1]
}

// Len reports the number of loaded symbols.
func (s *Symtab) Len() int { return len(s.addrs) }
