//go:build linux

package sysinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureFS materializes a synthetic proc tree and returns an FS over it.
func fixtureFS(t *testing.T, files map[string]string) FS {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return FS{Proc: root}
}

const fixMemInfo = `MemTotal:       16384000 kB
MemFree:         4096000 kB
MemAvailable:    8192000 kB
Buffers:          512000 kB
Cached:          2048000 kB
SwapCached:        10000 kB
Active:          6000000 kB
Inactive:        3000000 kB
HighTotal:             0 kB
HighFree:              0 kB
LowTotal:       16384000 kB
LowFree:         4096000 kB
SwapTotal:       8192000 kB
SwapFree:        8000000 kB
Dirty:              1200 kB
Writeback:             4 kB
Mapped:           800000 kB
Slab:             400000 kB
PageTables:        30000 kB
Committed_AS:   12000000 kB
`

const fixStatFile = `cpu  10132153 290696 3084719 46828483 16683 0 25195 175000 0 0
cpu0 5066076 145348 1542359 23414241 8341 0 12597 87500 0 0
intr 1462898 1000 2000
ctxt 115315221
btime 1714608000
processes 295390
procs_running 2
procs_blocked 1
softirq 10552600 0 1 2 3
`

const fixVMStat = `nr_free_pages 1024000
pgpgin 5816047
pgpgout 41023336
pswpin 12
pswpout 1374
pgfault 90327140
`

const fixDiskStats = `   8       0 sda 152627 9253 5518036 26180 200032 92862 10425848 103259 0 71520 129440
   8       1 sda1 150000 9000 5400000 26000 199000 92000 10400000 103000 0 71000 129000
   8       2 sda2 2000 200 100000 150 900 800 25000 250 0 500 430
 259       0 nvme0n1 91853 11960 4599555 14177 190910 192646 11622280 55285 0 53628 69463
 259       1 nvme0n1p1 91000 11900 4590000 14100 190000 192000 11600000 55200 0 53500 69400
   7       0 loop0 52 0 1134 12 0 0 0 0 0 8 12
`

const (
	fixLoadAvg = "0.42 0.35 0.31 2/1024 29105\n"
	fixUptime  = "436726.81 3451291.42\n"
)
