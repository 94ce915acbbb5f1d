package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Bytes
		want string
	}{
		{Bytes(0), "0 B"},
		{Bytes(1), "1 B"},
		{Bytes(1023), "1023 B"},                   // just below 1 KiB
		{Bytes(1024), "1.00 KB"},                  // exactly 1 KiB
		{Bytes(1024*1024 - 1), "1024.00 KB"},      // just below 1 MiB
		{Bytes(1024 * 1024), "1.00 MB"},           // exactly 1 MiB
		{Bytes(1024*1024*1024 - 1), "1024.00 MB"}, // just below 1 GiB
		{Bytes(1024 * 1024 * 1024), "1.00 GB"},    // exactly 1 GiB
		{Bytes(1<<40 - 1), "1024.00 GB"},          // just below 1 TiB
		{Bytes(1 << 40), "1.00 TB"},               // exactly 1 TiB
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%d", i, uint64(tc.in)), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Humanized())
		})
	}
}

func TestBytes_In(t *testing.T) {
	b := Bytes(3 << 20) // 3 MiB
	assert.Equal(t, uint64(3<<20), b.In(B))
	assert.Equal(t, uint64(3<<10), b.In(KB))
	assert.Equal(t, uint64(3), b.In(MB))
	assert.Equal(t, uint64(0), b.In(GB))
}

func TestUnit_FromKB(t *testing.T) {
	// 2048 kB = 2 MiB
	assert.Equal(t, uint64(2048<<10), B.FromKB(2048))
	assert.Equal(t, uint64(2048), KB.FromKB(2048))
	assert.Equal(t, uint64(2), MB.FromKB(2048))
	assert.Equal(t, uint64(0), GB.FromKB(2048))
}

func TestUnit_ShiftAgreement(t *testing.T) {
	// KB value times 1024 equals the B value within one shift step.
	for _, kb := range []uint64{0, 1, 7, 1023, 4096, 16_777_215} {
		assert.Equal(t, B.FromKB(kb), KB.FromKB(kb)*1024)
	}
}

func TestUnit_String(t *testing.T) {
	assert.Equal(t, "B", B.String())
	assert.Equal(t, "KB", KB.String())
	assert.Equal(t, "MB", MB.String())
	assert.Equal(t, "GB", GB.String())
	assert.Equal(t, "?", Unit(3).String())
}
