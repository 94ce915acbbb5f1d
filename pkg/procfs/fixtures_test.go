//go:build linux

package procfs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// A synthetic single process "sleep", pid 100, uid/gid 1000, parent 1.
// Stat fields are laid out per proc(5): utime=3 stime=1 minflt=185
// majflt=2 priority=20 start=12345 vsize=8192000 rss=190
// wchan=0x11c0d52 (18616274) processor=2.
const (
	fixStatus = "Name:\tsleep\n" +
		"State:\tS (sleeping)\n" +
		"Tgid:\t100\n" +
		"Pid:\t100\n" +
		"PPid:\t1\n" +
		"Uid:\t1000\t1000\t1000\t1000\n" +
		"Gid:\t1000\t1000\t1000\t1000\n" +
		"Threads:\t1\n" +
		"SigPnd:\t0000000000000000\n" +
		"SigBlk:\t0000000000010000\n" +
		"SigIgn:\t0000000000380004\n" +
		"SigCgt:\t000000004b817efb\n"

	fixStat = "100 (sleep) S 1 100 100 0 -1 4194304 185 0 2 0 3 1 0 0 " +
		"20 0 1 0 12345 8192000 190 18446744073709551615 " +
		"1 1 0 0 0 0 0 0 0 18616274 0 0 17 2 0 0\n"

	fixStatm   = "2000 190 170 20 0 120 0\n"
	fixCmdline = "sleep\x00100\x00"
	fixEnviron = "HOME=/root\x00TERM=xterm\x00"

	fixKallsyms = "0000000001000000 T _text\n" +
		"00000000011c0d00 T do_sys_poll\n" +
		"00000000011c1000 T hrtimer_nanosleep\n" +
		"0000000002000000 D jiffies\n"
)

func sleepFiles() map[string]string {
	return map[string]string{
		"status":  fixStatus,
		"stat":    fixStat,
		"statm":   fixStatm,
		"cmdline": fixCmdline,
		"environ": fixEnviron,
	}
}

// writeTask materializes one task directory under root.
func writeTask(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// newFixtureTable builds a Table over a synthetic proc tree holding the
// given pids, each a clone of the sleep fixture with its own ids patched
// into status and stat.
func newFixtureTable(t *testing.T, pids []int, opts ...Option) (*Table, string) {
	t.Helper()
	root := t.TempDir()
	for _, pid := range pids {
		writeTask(t, filepath.Join(root, fmt.Sprint(pid)), pidFiles(pid))
	}
	tab, err := New(append([]Option{WithRoot(root)}, opts...)...)
	require.NoError(t, err)
	return tab, root
}

// pidFiles is sleepFiles with the fixture's pid rewritten.
func pidFiles(pid int) map[string]string {
	files := sleepFiles()
	files["stat"] = fmt.Sprintf("%d (sleep) S 1 %d %d 0 -1 4194304 185 0 2 0 3 1 0 0 "+
		"20 0 1 0 12345 8192000 190 18446744073709551615 "+
		"1 1 0 0 0 0 0 0 0 18616274 0 0 17 2 0 0\n", pid, pid, pid)
	return files
}
