//go:build linux

package main

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ja7ad/proctab/pkg/calc"
	"github.com/ja7ad/proctab/pkg/procfs"
	"github.com/ja7ad/proctab/pkg/sysinfo"
	"github.com/ja7ad/proctab/pkg/types"
)

// config carries CLI defaults loadable from a YAML file (--config).
type config struct {
	Interval string `yaml:"interval"`
	MaxProcs int    `yaml:"max_procs"`
	Workers  int    `yaml:"workers"`
	Samples  int    `yaml:"samples"`
}

func defaultConfig() config {
	return config{Interval: "1s", MaxProcs: procfs.DefaultMaxProcs, Workers: 4, Samples: 0}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

type psFlags struct {
	args    bool
	env     bool
	user    bool
	group   bool
	wchan   bool
	mem     bool
	threads bool
	all     bool
}

func (p psFlags) mask() procfs.Flags {
	if p.all {
		f := procfs.FillAll
		if p.threads {
			f |= procfs.LooseTasks
		}
		return f
	}
	var f procfs.Flags
	if p.args {
		f |= procfs.FillArg
	}
	if p.env {
		f |= procfs.FillEnv
	}
	if p.user {
		f |= procfs.FillUsr
	}
	if p.group {
		f |= procfs.FillGrp
	}
	if p.wchan {
		f |= procfs.FillWchan
	}
	if p.mem {
		f |= procfs.FillMem
	}
	if p.threads {
		f |= procfs.LooseTasks
	}
	return f
}

func main() {
	var (
		cfgPath string
		cfg     config
	)

	root := &cobra.Command{
		Use:   "proctab",
		Short: "Process-table and system-statistics collector for /proc",
		Long: `proctab walks the /proc pseudo-filesystem and reports the live process
table, memory counters, CPU/paging counters, disk I/O counters, load
averages and uptime as typed records.

Reads are snapshot-only: nothing in /proc is ever written, and no state
is kept between invocations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cfgPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file with defaults")

	root.AddCommand(
		psCmd(&cfg),
		memCmd(),
		statCmd(),
		diskCmd(),
		uptimeCmd(),
		watchCmd(&cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("proctab failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newTable(cfg *config) (*procfs.Table, error) {
	return procfs.New(
		procfs.WithMaxProcs(cfg.MaxProcs),
		procfs.WithWorkers(cfg.Workers),
	)
}

func psCmd(cfg *config) *cobra.Command {
	var pf psFlags
	cmd := &cobra.Command{
		Use:   "ps",
		Short: "Scan the process table",
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := newTable(cfg)
			if err != nil {
				return err
			}
			recs, err := tab.Scan(pf.mask())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PID\tTID\tUSER\tSTATE\tNI\tVSZ\tRSS\tCMD")
			for _, r := range recs {
				user := fmt.Sprint(r.Ruid)
				if r.RuidName != "" {
					user = r.RuidName
				}
				cmdline := r.Cmd
				if len(r.Cmdline) > 0 {
					cmdline = strings.Join(r.Cmdline, " ")
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
					r.Pid, r.Tid, user, r.State, r.Nice,
					types.Bytes(r.VSize).Humanized(),
					types.Bytes(r.RSS*uint64(procfs.PageSize())).Humanized(),
					cmdline)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&pf.args, "args", false, "fill full command lines")
	cmd.Flags().BoolVar(&pf.env, "env", false, "fill environments")
	cmd.Flags().BoolVar(&pf.user, "user", true, "resolve user names")
	cmd.Flags().BoolVar(&pf.group, "group", false, "resolve group names")
	cmd.Flags().BoolVar(&pf.wchan, "wchan", false, "resolve wait channels")
	cmd.Flags().BoolVar(&pf.mem, "mem", false, "fill statm memory details")
	cmd.Flags().BoolVar(&pf.threads, "threads", false, "list every thread as its own entry")
	cmd.Flags().BoolVarP(&pf.all, "all", "a", false, "fill everything")
	return cmd
}

func memCmd() *cobra.Command {
	var unitName string
	cmd := &cobra.Command{
		Use:   "mem",
		Short: "Show system memory counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			var unit types.Unit
			switch strings.ToLower(unitName) {
			case "b":
				unit = types.B
			case "kb":
				unit = types.KB
			case "mb":
				unit = types.MB
			case "gb":
				unit = types.GB
			default:
				return fmt.Errorf("unknown unit %q (want b, kb, mb or gb)", unitName)
			}

			m, err := sysinfo.DefaultFS().MemInfo(unit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
			row := func(name string, v uint64) {
				fmt.Fprintf(w, "%s:\t%d %s\n", name, v, unit)
			}
			row("total", m.MainTotal)
			row("used", m.MainUsed)
			row("free", m.MainFree)
			row("buffers", m.MainBuffers)
			row("cached", m.MainCached)
			row("active", m.Active)
			row("inactive", m.Inactive)
			row("dirty", m.Dirty)
			row("slab", m.Slab)
			row("swap total", m.SwapTotal)
			row("swap used", m.SwapUsed)
			row("swap free", m.SwapFree)
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&unitName, "unit", "u", "kb", "output unit: b, kb, mb, gb")
	return cmd
}

func statCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show cumulative CPU, paging and scheduler counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := sysinfo.DefaultFS().Stat()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "cpu user\t%d\n", st.CPU.User)
			fmt.Fprintf(w, "cpu nice\t%d\n", st.CPU.Nice)
			fmt.Fprintf(w, "cpu system\t%d\n", st.CPU.System)
			fmt.Fprintf(w, "cpu idle\t%d\n", st.CPU.Idle)
			fmt.Fprintf(w, "cpu iowait\t%d\n", st.CPU.IOWait)
			fmt.Fprintf(w, "cpu irq\t%d\n", st.CPU.IRQ)
			fmt.Fprintf(w, "cpu softirq\t%d\n", st.CPU.SoftIRQ)
			fmt.Fprintf(w, "cpu steal\t%d\n", st.CPU.Steal)
			fmt.Fprintf(w, "page in/out\t%d / %d\n", st.PageIn, st.PageOut)
			fmt.Fprintf(w, "swap in/out\t%d / %d\n", st.SwapIn, st.SwapOut)
			fmt.Fprintf(w, "interrupts\t%d\n", st.Intr)
			fmt.Fprintf(w, "context switches\t%d\n", st.Ctxt)
			fmt.Fprintf(w, "procs running\t%d\n", st.Running)
			fmt.Fprintf(w, "procs blocked\t%d\n", st.Blocked)
			fmt.Fprintf(w, "forks since boot\t%d\n", st.Processes)
			fmt.Fprintf(w, "booted\t%s\n", time.Unix(int64(st.BootTime), 0).Format(time.RFC3339))
			return w.Flush()
		},
	}
}

func diskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disk",
		Short: "Show disk and partition I/O counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			disks, parts, err := sysinfo.DefaultFS().DiskStats()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DEVICE\tREADS\tSECT READ\tWRITES\tSECT WRITTEN\tIO ms")
			for _, d := range disks {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n",
					d.Name, d.ReadsCompleted, d.SectorsRead,
					d.WritesCompleted, d.SectorsWritten, d.IOMillis)
			}
			for _, p := range parts {
				fmt.Fprintf(w, "  %s (on %s)\t%d\t%d\t%d\t%d\t\n",
					p.Name, disks[p.Disk].Name, p.ReadsCompleted, p.SectorsRead,
					p.WritesCompleted, p.SectorsWritten)
			}
			return w.Flush()
		},
	}
}

func uptimeCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "uptime",
		Short: "Show uptime, users and load averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sysinfo.DefaultFS().UptimeString(pretty)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "human-readable form (uptime only)")
	return cmd
}

// watchCmd samples the table periodically and reports per-process CPU
// utilization computed from tick deltas between consecutive scans.
func watchCmd(cfg *config) *cobra.Command {
	var (
		top   int
		alpha float64
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically scan and report the busiest processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := time.ParseDuration(cfg.Interval)
			if err != nil {
				return fmt.Errorf("bad interval %q: %w", cfg.Interval, err)
			}
			tab, err := newTable(cfg)
			if err != nil {
				return err
			}

			hertz := float64(procfs.Hertz())
			prev := map[int]uint64{}
			ema := map[int]*calc.EMA{}
			samples := 0

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-ticker.C:
				}

				recs, err := tab.Scan(procfs.FillUsr)
				if err != nil {
					return err
				}

				type busy struct {
					rec *procfs.ProcessRecord
					cpu float64
				}
				var rows []busy
				next := make(map[int]uint64, len(recs))
				for _, r := range recs {
					ticks := r.Utime + r.Stime
					next[r.Tid] = ticks
					p, seen := prev[r.Tid]
					if !seen {
						continue // need two samples for a rate
					}
					sec := float64(calc.DeltaU64(ticks, p)) / hertz
					cpu := calc.Clamp01(calc.SafeDiv(sec, interval.Seconds()))
					if alpha > 0 {
						e, ok := ema[r.Tid]
						if !ok {
							e = calc.NewEMA(alpha)
							ema[r.Tid] = e
						}
						cpu = e.Next(cpu)
					}
					rows = append(rows, busy{rec: r, cpu: cpu})
				}
				prev = next

				slices.SortFunc(rows, func(a, b busy) int { return cmp.Compare(b.cpu, a.cpu) })
				if len(rows) > top {
					rows = rows[:top]
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "--- %s\n", time.Now().Format("15:04:05"))
				fmt.Fprintln(w, "PID\tUSER\tCPU%\tCMD")
				for _, b := range rows {
					fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\n",
						b.rec.Pid, b.rec.RuidName, b.cpu*100, b.rec.Cmd)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				samples++
				if cfg.Samples > 0 && samples >= cfg.Samples {
					return nil
				}
			}
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 15, "show the N busiest processes")
	cmd.Flags().Float64Var(&alpha, "ema", 0.0, "EMA alpha for CPU smoothing [0..1], 0 disables")
	return cmd
}
