//go:build linux

package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Uptime is one snapshot of /proc/uptime: total elapsed seconds since
// boot, total idle seconds summed over all CPUs, and the derived boot
// timestamp (now - total).
type Uptime struct {
	Total float64
	Idle  float64
	Since time.Time
}

// Uptime parses /proc/uptime.
func (fs FS) Uptime() (*Uptime, error) {
	b, err := os.ReadFile(fs.path("uptime"))
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(b))
	if len(fields) < 2 {
		return nil, ErrNoUptime
	}
	total, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, ErrNoUptime
	}
	idle, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, ErrNoUptime
	}
	return &Uptime{
		Total: total,
		Idle:  idle,
		Since: time.Now().Add(-time.Duration(total * float64(time.Second))),
	}, nil
}

// UptimeSince returns the boot timestamp alone.
func (fs FS) UptimeSince() (time.Time, error) {
	up, err := fs.Uptime()
	if err != nil {
		return time.Time{}, err
	}
	return up.Since, nil
}

// UptimeString renders uptime the way the uptime(1) tool does. The full
// form carries the wall clock, the uptime, the logged-in user count and
// the load averages; the human form is just the uptime spelled out in
// words. It is a composition over Uptime and LoadAvg, not a new parse.
func (fs FS) UptimeString(human bool) (string, error) {
	up, err := fs.Uptime()
	if err != nil {
		return "", err
	}
	if human {
		return "up " + humanDuration(up.Total), nil
	}

	la, err := fs.LoadAvg()
	if err != nil {
		return "", err
	}
	users := fs.countUsers()
	plural := "s"
	if users == 1 {
		plural = ""
	}
	return fmt.Sprintf("%s up %s, %d user%s,  load average: %.2f, %.2f, %.2f",
		time.Now().Format("15:04:05"), shortDuration(up.Total),
		users, plural, la.One, la.Five, la.Fifteen), nil
}

// shortDuration renders "5 days, 2:13" / "2:13" / "37 min".
func shortDuration(seconds float64) string {
	s := uint64(seconds)
	days := s / 86400
	hours := (s % 86400) / 3600
	mins := (s % 3600) / 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d day%s, ", days, pluralSuffix(days))
	}
	if days > 0 || hours > 0 {
		fmt.Fprintf(&b, "%d:%02d", hours, mins)
	} else {
		fmt.Fprintf(&b, "%d min", mins)
	}
	return b.String()
}

// humanDuration renders "5 days, 2 hours, 13 minutes".
func humanDuration(seconds float64) string {
	s := uint64(seconds)
	days := s / 86400
	hours := (s % 86400) / 3600
	mins := (s % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d day%s", days, pluralSuffix(days)))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour%s", hours, pluralSuffix(hours)))
	}
	if mins > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d minute%s", mins, pluralSuffix(mins)))
	}
	return strings.Join(parts, ", ")
}

func pluralSuffix(n uint64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
