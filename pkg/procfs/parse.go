package procfs

import (
	"strconv"
	"strings"
)

// Low-level field parsing. Everything here is a pure transform of one
// pseudo-file's bytes; nothing touches the filesystem.

// splitStat breaks a /proc/<pid>/stat line into the leading pid, the comm
// (which sits in parens and may itself contain spaces and parens) and the
// whitespace-delimited numeric fields after the closing ") ".
func splitStat(line string) (pid int, comm string, fields []string, err error) {
	open := strings.IndexByte(line, '(')
	end := strings.LastIndex(line, ") ")
	if open < 0 || end < open {
		return 0, "", nil, ErrBadStat
	}
	pid, err = strconv.Atoi(strings.TrimSpace(line[:open]))
	if err != nil {
		return 0, "", nil, ErrBadStat
	}
	return pid, line[open+1 : end], strings.Fields(line[end+2:]), nil
}

// fieldUint returns fields[i] as uint64, or zero when the field is absent.
// Newer kernels append fields; older ones simply lack them, and a missing
// trailing field is a zero value, never an error.
func fieldUint(fields []string, i int) uint64 {
	if i >= len(fields) {
		return 0
	}
	v, _ := strconv.ParseUint(fields[i], 10, 64)
	return v
}

// fieldInt is fieldUint for signed fields (priority, nice, processor).
func fieldInt(fields []string, i int) int64 {
	if i >= len(fields) {
		return 0
	}
	v, _ := strconv.ParseInt(fields[i], 10, 64)
	return v
}

// nulList splits a NUL-separated buffer (cmdline, environ) into its
// entries. The list terminates at the read length, not at a sentinel;
// trailing NULs produce no empty entries.
func nulList(b []byte) []string {
	var out []string
	for len(b) > 0 {
		i := 0
		for i < len(b) && b[i] != 0 {
			i++
		}
		if i > 0 {
			out = append(out, string(b[:i]))
		}
		if i == len(b) {
			break
		}
		b = b[i+1:]
	}
	return out
}

// nulJoined renders the same buffer as one string with NULs replaced by
// single spaces. This is the raw-concatenation form of the command line;
// it intentionally preserves embedded whitespace inside arguments, which
// the tokenized form cannot round-trip.
func nulJoined(b []byte) string {
	s := strings.TrimRight(string(b), "\x00")
	return strings.ReplaceAll(s, "\x00", " ")
}

// statusKV splits one "Key:\tvalue" status line. Returns ok=false for
// lines that do not match the shape (blank lines, continuation junk).
func statusKV(line string) (key, val string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return line[:i], strings.TrimSpace(line[i+1:]), true
}

// idQuad parses the four-id "real effective saved fs" tail of the Uid:
// and Gid: status lines.
func idQuad(val string) (r, e, s, f uint32) {
	fs := strings.Fields(val)
	get := func(i int) uint32 {
		if i >= len(fs) {
			return 0
		}
		v, _ := strconv.ParseUint(fs[i], 10, 32)
		return uint32(v)
	}
	return get(0), get(1), get(2), get(3)
}
