//go:build linux

package procfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/ja7ad/proctab/pkg/ident"
)

const (
	// DefaultRoot is the conventional proc mount point.
	DefaultRoot = "/proc"

	// DefaultMaxProcs caps one scan's batch size. The historical binding
	// this collector descends from hardcoded 5000; here the cap is
	// checked and configurable instead of being undefined behavior.
	DefaultMaxProcs = 5000
)

// Table is a process-table collector instance. It owns all cross-call
// state (the id-name cache and the wait-channel symbol table), so
// independent Tables never contaminate each other. A Table is safe for
// concurrent use; repeated scans are fully independent.
type Table struct {
	root     string
	maxProcs int
	workers  int
	ids      *ident.Cache

	symOnce sync.Once
	syms    *Symtab
}

// Option configures a Table.
type Option func(*Table)

// WithRoot points the Table at an alternate proc tree, e.g. a synthetic
// fixture in tests or a host mount inside a container.
func WithRoot(root string) Option { return func(t *Table) { t.root = root } }

// WithMaxProcs sets the scan batch cap. Exceeding it fails the scan with
// ErrTableTooLarge rather than silently truncating.
func WithMaxProcs(n int) Option { return func(t *Table) { t.maxProcs = n } }

// WithWorkers sets how many per-process reads may run concurrently within
// one scan. The default of 1 keeps scans sequential.
func WithWorkers(n int) Option { return func(t *Table) { t.workers = n } }

// WithIdentCache shares an id-name cache across Tables.
func WithIdentCache(c *ident.Cache) Option { return func(t *Table) { t.ids = c } }

// New builds a Table and verifies the proc filesystem is present at its
// root. An unmounted or unreadable proc tree is fatal here, once, rather
// than surfacing as a confusing per-call error later.
func New(opts ...Option) (*Table, error) {
	t := &Table{
		root:     DefaultRoot,
		maxProcs: DefaultMaxProcs,
		workers:  1,
	}
	for _, o := range opts {
		o(t)
	}
	if t.workers < 1 {
		t.workers = 1
	}
	if t.ids == nil {
		t.ids = ident.NewCache()
	}

	var st unix.Statfs_t
	if err := unix.Statfs(t.root, &st); err != nil {
		return nil, fmt.Errorf("%w: statfs %s: %v", ErrProcUnavailable, t.root, err)
	}
	// A real /proc identifies itself by filesystem magic. Alternate roots
	// (fixtures, bind mounts) only have to exist and be readable.
	if t.root == DefaultRoot && st.Type != unix.PROC_SUPER_MAGIC {
		return nil, fmt.Errorf("%w: %s is not a proc mount", ErrProcUnavailable, t.root)
	}
	return t, nil
}

type taskID struct {
	pid, tid int
	kind     Kind
}

// Scan enumerates the process table and reads one ProcessRecord per entry
// under the given fill flags. With LooseTasks set, every thread becomes an
// independent entry. Entries that vanish or fail to parse mid-scan are
// dropped, so the returned count may be less than the enumerated count.
// Result order matches enumeration order; callers must not rely on any
// particular sort.
func (t *Table) Scan(flags Flags) ([]*ProcessRecord, error) {
	start := time.Now()
	flags |= FillStatus | FillStat

	ids, err := t.enumerate(flags&LooseTasks != 0)
	if err != nil {
		return nil, err
	}
	if len(ids) > t.maxProcs {
		return nil, fmt.Errorf("%w: %d entries, cap %d", ErrTableTooLarge, len(ids), t.maxProcs)
	}

	// Per-entry reads touch disjoint files; fan out over a bounded pool
	// and keep enumeration order by writing into pre-indexed slots.
	recs := make([]*ProcessRecord, len(ids))
	g := new(errgroup.Group)
	g.SetLimit(t.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			rec, err := t.readTask(id, flags)
			if err == nil {
				recs[i] = rec
			}
			// Vanished and malformed entries are routine; drop them
			// without failing sibling reads.
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*ProcessRecord, 0, len(recs))
	for _, r := range recs {
		if r != nil {
			out = append(out, r)
		}
	}

	scansTotal.Inc()
	scanDuration.Observe(time.Since(start).Seconds())
	recordsScanned.Add(float64(len(out)))
	recordsDropped.Add(float64(len(ids) - len(out)))
	return out, nil
}

// Read returns one process's record under the given fill flags. A pid
// that no longer exists reports ErrGone.
func (t *Table) Read(pid int, flags Flags) (*ProcessRecord, error) {
	flags |= FillStatus | FillStat
	return t.readTask(taskID{pid: pid, tid: pid, kind: KindProcess}, flags)
}

// ReadTask is Read for a single thread of a process.
func (t *Table) ReadTask(pid, tid int, flags Flags) (*ProcessRecord, error) {
	flags |= FillStatus | FillStat
	kind := KindProcess
	if tid != pid {
		kind = KindThread
	}
	return t.readTask(taskID{pid: pid, tid: tid, kind: kind}, flags)
}

// enumerate lists the numeric entries of the proc root, and under loose
// mode the numeric entries of each process's task directory. A task dir
// that cannot be listed (the process just exited) degrades to the
// process-level entry so the pid still gets its one read attempt.
func (t *Table) enumerate(loose bool) ([]taskID, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcUnavailable, err)
	}
	var ids []taskID
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		if !loose {
			ids = append(ids, taskID{pid: pid, tid: pid, kind: KindProcess})
			continue
		}
		tasks, err := os.ReadDir(filepath.Join(t.root, e.Name(), "task"))
		if err != nil {
			ids = append(ids, taskID{pid: pid, tid: pid, kind: KindProcess})
			continue
		}
		for _, te := range tasks {
			tid, err := strconv.Atoi(te.Name())
			if err != nil || tid <= 0 {
				continue
			}
			kind := KindThread
			if tid == pid {
				kind = KindProcess
			}
			ids = append(ids, taskID{pid: pid, tid: tid, kind: kind})
		}
	}
	return ids, nil
}

// symtab lazily loads the kernel symbol table for wait-channel lookups.
// Returns nil when kallsyms is absent or unreadable; lookups then fall
// back to the raw address.
func (t *Table) symtab() *Symtab {
	t.symOnce.Do(func() {
		st, err := loadSymtab(filepath.Join(t.root, "kallsyms"))
		if err == nil {
			t.syms = st
		}
	})
	return t.syms
}

// Hertz returns the number of clock ticks per second used by the kernel's
// CPU accounting fields. It first checks the env var CLK_TCK (useful for
// testing), otherwise falls back to 100, the value on every platform Go
// supports without resorting to cgo sysconf.
func Hertz() int {
	v, _ := strconv.Atoi(os.Getenv("CLK_TCK"))
	if v > 0 {
		return v
	}
	return 100
}

// PageSize returns the system memory page size in bytes. Like Hertz, it
// first checks an env override (PAGE_SIZE) to ease testing, then falls
// back to os.Getpagesize().
func PageSize() int {
	if ps := os.Getenv("PAGE_SIZE"); ps != "" {
		if v, _ := strconv.Atoi(ps); v > 0 {
			return v
		}
	}
	return os.Getpagesize()
}
