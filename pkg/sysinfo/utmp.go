//go:build linux

package sysinfo

import (
	"encoding/binary"
	"io"
	"os"
)

const userProcess = 7 // ut_type of an active login session

// utmpRecord mirrors glibc's struct utmp on Linux (384 bytes).
type utmpRecord struct {
	Type    int16
	_       [2]byte
	Pid     int32
	Line    [32]byte
	ID      [4]byte
	User    [32]byte
	Host    [256]byte
	Exit    [4]byte
	Session int32
	Sec     int32
	Usec    int32
	AddrV6  [4]int32
	_       [20]byte
}

// countUsers counts active login sessions in the utmp file. Best-effort:
// a missing or truncated file yields zero, matching what uptime(1) shows
// on systems without utmp.
func (fs FS) countUsers() int {
	if fs.Utmp == "" {
		return 0
	}
	f, err := os.Open(fs.Utmp)
	if err != nil {
		return 0
	}
	defer f.Close()

	var (
		rec   utmpRecord
		users int
	)
	for {
		if err := binary.Read(f, binary.NativeEndian, &rec); err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				return users
			}
			break
		}
		if rec.Type == userProcess && rec.User[0] != 0 {
			users++
		}
	}
	return users
}
