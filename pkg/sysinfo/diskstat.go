//go:build linux

package sysinfo

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// DiskStat is one whole-device line of /proc/diskstats.
type DiskStat struct {
	Major int
	Minor int
	Name  string

	ReadsCompleted  uint64
	ReadsMerged     uint64
	SectorsRead     uint64
	ReadMillis      uint64
	WritesCompleted uint64
	WritesMerged    uint64
	SectorsWritten  uint64
	WriteMillis     uint64
	InProgress      uint64
	IOMillis        uint64
	WeightedMillis  uint64
}

// PartitionStat is one partition line of /proc/diskstats. Disk is the
// index of its parent device in the disks slice returned by the same
// DiskStats call; it is a back-reference for lookup, not ownership.
type PartitionStat struct {
	Name string
	Disk int

	ReadsCompleted  uint64
	SectorsRead     uint64
	WritesCompleted uint64
	SectorsWritten  uint64
}

// DiskStats parses /proc/diskstats into disks and their partitions in one
// call, so partition records can reference disk indices assigned during
// the same read. A partition is recognized by its name extending the most
// recent disk's name with a numeric suffix (sda1, nvme0n1p2); anything
// else starts a new disk.
func (fs FS) DiskStats() ([]DiskStat, []PartitionStat, error) {
	f, err := os.Open(fs.path("diskstats"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var (
		disks []DiskStat
		parts []PartitionStat
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 7 {
			continue
		}
		get := func(i int) uint64 {
			if i >= len(fields) {
				return 0
			}
			v, _ := strconv.ParseUint(fields[i], 10, 64)
			return v
		}
		name := fields[2]

		if n := len(disks); n > 0 && isPartitionOf(disks[n-1].Name, name) {
			parts = append(parts, PartitionStat{
				Name:            name,
				Disk:            n - 1,
				ReadsCompleted:  get(3),
				SectorsRead:     get(5),
				WritesCompleted: get(7),
				SectorsWritten:  get(9),
			})
			continue
		}

		major, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, ErrNoDiskStats
		}
		minor, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, ErrNoDiskStats
		}
		disks = append(disks, DiskStat{
			Major:           major,
			Minor:           minor,
			Name:            name,
			ReadsCompleted:  get(3),
			ReadsMerged:     get(4),
			SectorsRead:     get(5),
			ReadMillis:      get(6),
			WritesCompleted: get(7),
			WritesMerged:    get(8),
			SectorsWritten:  get(9),
			WriteMillis:     get(10),
			InProgress:      get(11),
			IOMillis:        get(12),
			WeightedMillis:  get(13),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return disks, parts, nil
}

// isPartitionOf reports whether name is a partition of disk: the disk
// name plus digits, with an optional "p" separator when the disk name
// itself ends in a digit (nvme0n1 -> nvme0n1p1, mmcblk0 -> mmcblk0p2).
func isPartitionOf(disk, name string) bool {
	if disk == "" || !strings.HasPrefix(name, disk) || len(name) == len(disk) {
		return false
	}
	rest := name[len(disk):]
	if rest[0] == 'p' && len(rest) > 1 {
		rest = rest[1:]
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}
