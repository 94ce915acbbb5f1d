//go:build linux

package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStat_CPUAndCounters(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"stat": fixStatFile, "vmstat": fixVMStat})

	st, err := fs.Stat()
	require.NoError(t, err)

	assert.Equal(t, uint64(10132153), st.CPU.User)
	assert.Equal(t, uint64(290696), st.CPU.Nice)
	assert.Equal(t, uint64(3084719), st.CPU.System)
	assert.Equal(t, uint64(46828483), st.CPU.Idle)
	assert.Equal(t, uint64(16683), st.CPU.IOWait)
	assert.Equal(t, uint64(0), st.CPU.IRQ)
	assert.Equal(t, uint64(25195), st.CPU.SoftIRQ)
	assert.Equal(t, uint64(175000), st.CPU.Steal)

	assert.Equal(t, uint64(1462898), st.Intr)
	assert.Equal(t, uint64(115315221), st.Ctxt)
	assert.Equal(t, uint64(1714608000), st.BootTime)
	assert.Equal(t, uint64(295390), st.Processes)
	assert.Equal(t, uint64(2), st.Running)
	assert.Equal(t, uint64(1), st.Blocked)
}

func TestStat_PagingFromVMStat(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"stat": fixStatFile, "vmstat": fixVMStat})

	st, err := fs.Stat()
	require.NoError(t, err)
	assert.Equal(t, uint64(5816047), st.PageIn)
	assert.Equal(t, uint64(41023336), st.PageOut)
	assert.Equal(t, uint64(12), st.SwapIn)
	assert.Equal(t, uint64(1374), st.SwapOut)
}

func TestStat_LegacyPageLines(t *testing.T) {
	// 2.4-era kernels carried page/swap in /proc/stat itself; no vmstat
	// read happens then.
	fs := fixtureFS(t, map[string]string{
		"stat": "cpu 1 2 3 4\npage 100 200\nswap 10 20\nbtime 1000\n",
	})

	st, err := fs.Stat()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), st.PageIn)
	assert.Equal(t, uint64(200), st.PageOut)
	assert.Equal(t, uint64(10), st.SwapIn)
	assert.Equal(t, uint64(20), st.SwapOut)
	assert.Equal(t, uint64(4), st.CPU.Idle)
	assert.Zero(t, st.CPU.Steal, "pre-steal kernels report zero, not an error")
}

func TestStat_NoCPULine(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"stat": "btime 1000\n"})

	_, err := fs.Stat()
	require.ErrorIs(t, err, ErrNoStat)
}

func TestStat_MonotonicOnRealFile(t *testing.T) {
	real := DefaultFS()
	a, err := real.Stat()
	if err != nil {
		t.Skip("no /proc/stat available")
	}
	b, err := real.Stat()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.CPU.User, a.CPU.User)
	assert.GreaterOrEqual(t, b.Ctxt, a.Ctxt)
	assert.Equal(t, a.BootTime, b.BootTime, "boot time is fixed within one boot")
}
