//go:build linux

package sysinfo

import (
	"os"
	"strconv"
	"strings"
)

// LoadAvg holds the 1-, 5- and 15-minute exponentially-decayed run-queue
// averages from /proc/loadavg.
type LoadAvg struct {
	One     float64
	Five    float64
	Fifteen float64
}

// LoadAvg parses /proc/loadavg.
func (fs FS) LoadAvg() (*LoadAvg, error) {
	b, err := os.ReadFile(fs.path("loadavg"))
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(b))
	if len(fields) < 3 {
		return nil, ErrNoLoadAvg
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || v < 0 {
			return nil, ErrNoLoadAvg
		}
		out[i] = v
	}
	return &LoadAvg{One: out[0], Five: out[1], Fifteen: out[2]}, nil
}
