//go:build linux

package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStats_DisksAndPartitions(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"diskstats": fixDiskStats})

	disks, parts, err := fs.DiskStats()
	require.NoError(t, err)

	require.Len(t, disks, 3)
	assert.Equal(t, "sda", disks[0].Name)
	assert.Equal(t, "nvme0n1", disks[1].Name)
	assert.Equal(t, "loop0", disks[2].Name)

	require.Len(t, parts, 3)
	assert.Equal(t, "sda1", parts[0].Name)
	assert.Equal(t, 0, parts[0].Disk, "partition references parent disk index")
	assert.Equal(t, "sda2", parts[1].Name)
	assert.Equal(t, 0, parts[1].Disk)
	assert.Equal(t, "nvme0n1p1", parts[2].Name)
	assert.Equal(t, 1, parts[2].Disk)
}

func TestDiskStats_Counters(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"diskstats": fixDiskStats})

	disks, parts, err := fs.DiskStats()
	require.NoError(t, err)

	sda := disks[0]
	assert.Equal(t, 8, sda.Major)
	assert.Equal(t, 0, sda.Minor)
	assert.Equal(t, uint64(152627), sda.ReadsCompleted)
	assert.Equal(t, uint64(9253), sda.ReadsMerged)
	assert.Equal(t, uint64(5518036), sda.SectorsRead)
	assert.Equal(t, uint64(26180), sda.ReadMillis)
	assert.Equal(t, uint64(200032), sda.WritesCompleted)
	assert.Equal(t, uint64(92862), sda.WritesMerged)
	assert.Equal(t, uint64(10425848), sda.SectorsWritten)
	assert.Equal(t, uint64(103259), sda.WriteMillis)
	assert.Equal(t, uint64(71520), sda.IOMillis)
	assert.Equal(t, uint64(129440), sda.WeightedMillis)

	sda1 := parts[0]
	assert.Equal(t, uint64(150000), sda1.ReadsCompleted)
	assert.Equal(t, uint64(5400000), sda1.SectorsRead)
	assert.Equal(t, uint64(199000), sda1.WritesCompleted)
	assert.Equal(t, uint64(10400000), sda1.SectorsWritten)
}

func TestIsPartitionOf(t *testing.T) {
	cases := []struct {
		disk, name string
		want       bool
	}{
		{"sda", "sda1", true},
		{"sda", "sda12", true},
		{"sda", "sdb1", false},
		{"sda", "sda", false},
		{"nvme0n1", "nvme0n1p1", true},
		{"mmcblk0", "mmcblk0p2", true},
		{"sda", "sdap", false},
		{"", "sda1", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isPartitionOf(tc.disk, tc.name), "%s / %s", tc.disk, tc.name)
	}
}

func TestDiskStats_RealFile(t *testing.T) {
	real := DefaultFS()
	disks, parts, err := real.DiskStats()
	if err != nil {
		t.Skip("no /proc/diskstats available")
	}
	for _, p := range parts {
		require.GreaterOrEqual(t, p.Disk, 0)
		require.Less(t, p.Disk, len(disks), "every partition must reference a valid disk")
	}
}
