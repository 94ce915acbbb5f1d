//go:build linux

package procfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKallsyms(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kallsyms")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSymtab(t *testing.T) {
	st, err := loadSymtab(writeKallsyms(t, fixKallsyms))
	require.NoError(t, err)
	// Data symbol (jiffies) is excluded, the three text symbols stay.
	assert.Equal(t, 3, st.Len())
}

func TestSymtab_Lookup(t *testing.T) {
	st, err := loadSymtab(writeKallsyms(t, fixKallsyms))
	require.NoError(t, err)

	assert.Equal(t, "do_sys_poll", st.Lookup(0x11c0d00), "exact address")
	assert.Equal(t, "do_sys_poll", st.Lookup(0x11c0d52), "nearest preceding")
	assert.Equal(t, "hrtimer_nanosleep", st.Lookup(0x11c1000))
	assert.Equal(t, "hrtimer_nanosleep", st.Lookup(0xffffffff))
	assert.Equal(t, "", st.Lookup(0x1), "before every symbol")
}

func TestLoadSymtab_RestrictedAddressesDropped(t *testing.T) {
	// Under kptr_restrict kallsyms shows all-zero addresses; they must
	// not poison the table.
	st, err := loadSymtab(writeKallsyms(t,
		"0000000000000000 T hidden_one\n0000000000000000 T hidden_two\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, "", st.Lookup(0x1234))
}

func TestLoadSymtab_Unsorted(t *testing.T) {
	st, err := loadSymtab(writeKallsyms(t,
		"00000000000000ff T late\n0000000000000010 T early\n"))
	require.NoError(t, err)
	assert.Equal(t, "early", st.Lookup(0x20))
	assert.Equal(t, "late", st.Lookup(0x100))
}

func TestLoadSymtab_Missing(t *testing.T) {
	_, err := loadSymtab(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
