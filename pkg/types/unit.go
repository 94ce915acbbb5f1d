package types

// Unit selects the unit every MemInfo field is reported in. Kernel meminfo
// values are native kilobytes; conversion is a pure bit-shift, so a KB value
// times 1024 always equals the B value for the same snapshot.
type Unit uint

const (
	B  Unit = 0  // raw bytes
	KB Unit = 10 // kibibytes
	MB Unit = 20 // mebibytes
	GB Unit = 30 // gibibytes
)

func (u Unit) String() string {
	switch u {
	case B:
		return "B"
	case KB:
		return "KB"
	case MB:
		return "MB"
	case GB:
		return "GB"
	default:
		return "?"
	}
}

// FromKB converts a native-kilobyte kernel counter into u.
// The value is widened to bytes first, then shifted down.
func (u Unit) FromKB(kb uint64) uint64 {
	return (kb << 10) >> u
}
