//go:build linux

package procfs

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ja7ad/proctab/pkg/ident"
)

// readTask assembles one ProcessRecord from the task's proc directory.
// Sub-parses run in order of increasing cost; anything beyond status and
// stat only happens when its fill flag is set. A directory or file that
// disappeared underneath us reports ErrGone.
func (t *Table) readTask(id taskID, flags Flags) (*ProcessRecord, error) {
	dir := filepath.Join(t.root, strconv.Itoa(id.pid))
	if id.tid != id.pid {
		dir = filepath.Join(dir, "task", strconv.Itoa(id.tid))
	}

	r := &ProcessRecord{Pid: id.pid, Tid: id.tid, Kind: id.kind}

	if err := t.fillStatus(dir, r); err != nil {
		return nil, err
	}
	if err := t.fillStat(dir, r); err != nil {
		return nil, err
	}
	if flags&FillMem != 0 {
		if err := t.fillStatm(dir, r); err != nil {
			return nil, err
		}
	}
	if flags&(FillArg|FillCom) != 0 {
		b, err := t.readFile(dir, "cmdline")
		if err != nil {
			return nil, err
		}
		if flags&FillArg != 0 {
			r.Cmdline = nulList(b)
		}
		if flags&FillCom != 0 {
			r.CmdlineRaw = nulJoined(b)
		}
	}
	if flags&FillEnv != 0 {
		// environ is often unreadable for other users' processes; an
		// empty list is the honest answer there, not a failed record.
		if b, err := t.readFile(dir, "environ"); err == nil {
			r.Environ = nulList(b)
		} else if isGone(err) {
			return nil, err
		}
	}
	if flags&FillUsr != 0 {
		resolveQuad(t.ids, ident.User,
			[4]uint32{r.Ruid, r.Euid, r.Suid, r.Fuid},
			[4]*string{&r.RuidName, &r.EuidName, &r.SuidName, &r.FuidName})
	}
	if flags&FillGrp != 0 {
		resolveQuad(t.ids, ident.Group,
			[4]uint32{r.Rgid, r.Egid, r.Sgid, r.Fgid},
			[4]*string{&r.RgidName, &r.EgidName, &r.SgidName, &r.FgidName})
	}
	if flags&FillWchan != 0 {
		r.WchanName = t.wchanName(r.WchanAddr)
	}
	return r, nil
}

// resolveQuad fills the four credential names for one record, resolving
// each unique id once: an id repeated within the quad (the common case,
// all four equal) reuses the name already resolved for it.
func resolveQuad(ids *ident.Cache, db ident.DB, id [4]uint32, name [4]*string) {
	for i := 0; i < 4; i++ {
		reused := false
		for j := 0; j < i; j++ {
			if id[j] == id[i] {
				*name[i] = *name[j]
				reused = true
				break
			}
		}
		if !reused {
			*name[i], _ = ids.Resolve(db, id[i])
		}
	}
}

// readFile reads one pseudo-file under dir, translating a vanished
// process into ErrGone.
func (t *Table) readFile(dir, name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrGone
		}
		return nil, err
	}
	return b, nil
}

func isGone(err error) bool { return errors.Is(err, ErrGone) }

func (t *Table) fillStatus(dir string, r *ProcessRecord) error {
	f, err := os.Open(filepath.Join(dir, "status"))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrGone
		}
		return err
	}
	defer f.Close()

	seen := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, val, ok := statusKV(sc.Text())
		if !ok {
			continue
		}
		seen = true
		switch key {
		case "Name":
			r.Cmd = val
		case "State":
			if fs := strings.Fields(val); len(fs) > 0 {
				r.State = fs[0]
			}
		case "PPid":
			r.PPid, _ = strconv.Atoi(val)
		case "Uid":
			r.Ruid, r.Euid, r.Suid, r.Fuid = idQuad(val)
		case "Gid":
			r.Rgid, r.Egid, r.Sgid, r.Fgid = idQuad(val)
		case "Threads":
			r.NumThreads, _ = strconv.ParseUint(val, 10, 64)
		case "SigPnd":
			r.SigPending = val
		case "SigBlk":
			r.SigBlocked = val
		case "SigIgn":
			r.SigIgnored = val
		case "SigCgt":
			r.SigCaught = val
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if !seen {
		return ErrBadStatus
	}
	return nil
}

// Field indexes below are relative to the slice after ") ", so the stat
// man page's 1-based field N lands at index N-3.
func (t *Table) fillStat(dir string, r *ProcessRecord) error {
	b, err := t.readFile(dir, "stat")
	if err != nil {
		return err
	}
	line := strings.TrimRight(string(b), "\x00\n")
	_, comm, fields, err := splitStat(line)
	if err != nil {
		return err
	}
	if r.Cmd == "" {
		r.Cmd = comm
	}
	if r.State == "" && len(fields) > 0 {
		r.State = fields[0]
	}
	r.PPid = int(fieldInt(fields, 1))
	r.Pgrp = int(fieldInt(fields, 2))
	r.Session = int(fieldInt(fields, 3))
	r.MinFlt = fieldUint(fields, 7)
	r.CMinFlt = fieldUint(fields, 8)
	r.MajFlt = fieldUint(fields, 9)
	r.CMajFlt = fieldUint(fields, 10)
	r.Utime = fieldUint(fields, 11)
	r.Stime = fieldUint(fields, 12)
	r.Cutime = fieldUint(fields, 13)
	r.Cstime = fieldUint(fields, 14)
	r.Priority = fieldInt(fields, 15)
	r.Nice = fieldInt(fields, 16)
	if r.NumThreads == 0 {
		r.NumThreads = fieldUint(fields, 17)
	}
	r.StartTime = fieldUint(fields, 19)
	r.VSize = fieldUint(fields, 20)
	r.RSS = fieldUint(fields, 21)
	r.WchanAddr = fieldUint(fields, 32)
	r.Processor = int(fieldInt(fields, 36))
	r.RTPriority = fieldUint(fields, 37)
	r.Policy = fieldUint(fields, 38)
	return nil
}

func (t *Table) fillStatm(dir string, r *ProcessRecord) error {
	b, err := t.readFile(dir, "statm")
	if err != nil {
		return err
	}
	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return ErrBadStatm
	}
	r.Size = fieldUint(fields, 0)
	r.Resident = fieldUint(fields, 1)
	r.Share = fieldUint(fields, 2)
	r.Text = fieldUint(fields, 3)
	r.Data = fieldUint(fields, 5)
	return nil
}

// wchanName renders the wait channel per the historical rules: "0" for a
// running or non-sleeping task, the nearest preceding kernel symbol when
// one is known, the raw hex address otherwise.
func (t *Table) wchanName(addr uint64) string {
	if addr == 0 {
		return "0"
	}
	if st := t.symtab(); st != nil {
		if name := st.Lookup(addr); name != "" {
			return name
		}
	}
	return strconv.FormatUint(addr, 16)
}
