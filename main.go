// Copyright
// SPDX-License-Identifier: MIT
// rvscroll: virtual scroll window calculator, diff engine and terminal demo
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"rvscroll/internal/command"
	cfg "rvscroll/internal/config"
	"rvscroll/internal/diff"
	"rvscroll/internal/geometry"
	"rvscroll/internal/scroller"
	"rvscroll/internal/store"
	appTUI "rvscroll/internal/tui"
	"rvscroll/internal/tui/state"
	diffview "rvscroll/internal/tui/widgets/diff"
)

const Version = "0.3.0"

const (
	defaultItems  = 1000
	defaultWidth  = 80
	defaultHeight = 24
)

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	var err error
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "--version":
		fmt.Println("rvscroll", Version)
	case "init":
		err = cmdInit(os.Args[2:])
	case "window":
		err = cmdWindow(os.Args[2:])
	case "diff":
		err = cmdDiff(os.Args[2:])
	case "simulate":
		err = cmdSimulate(os.Args[2:])
	case "demo":
		err = cmdDemo(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`rvscroll ` + Version + `
Virtual scroll window calculator and render diff engine, with a terminal demo.
USAGE
  rvscroll <command> [options]
COMMANDS
  init         Write rvscroll.config.json (use --interactive to edit it first)
  window       Print the window for a container size and scroll offset
  diff         Print the render commands between two scroll offsets or sizes
  simulate     Drive the scroller through many scroll steps and check the result
  demo         Interactive grid of generated cards
  help         Show help (try: rvscroll help diff)
  version      Print version
NOTES
  • Sizes are in terminal cells. Every command reads --config (default: rvscroll.config.json) when it exists.
  • Use -v or -vv for logs on stderr and --log-file to tee them to a file.
` + "\n")
}

func helpTopic(name string) {
	switch name {
	case "window":
		fmt.Println(`USAGE
  rvscroll window [--config PATH] [--width N] [--height N] [--term] [--items N] [--scroll-top N] [--json]
DESCRIPTION
  Measures the container, then prints the virtual and actual geometry for the
  given scroll offset: rows, columns, visible row range, spacers and data range.`)
	case "diff":
		fmt.Println(`USAGE
  rvscroll diff [--config PATH] [--width N] [--height N] [--items N]
                [--from N] [--to N] [--to-width N] [--to-height N] [--to-items N]
                [--json] [--side-by-side] [--no-color]
DESCRIPTION
  Computes the window at --from and at --to (optionally with a new container
  size or item count), prints the render commands that move one to the other,
  and shows the change to the rendered rows.`)
	case "simulate":
		fmt.Println(`USAGE
  rvscroll simulate [--config PATH] [--width N] [--height N] [--items N] [--step N]
                    [--random N] [--seed N] [--mutate-every N] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Runs a scroller against an in-memory host. By default it scrolls from the
  top to the bottom in --step increments (one row when 0). With --random N it
  takes N random steps instead, resizing now and then and replacing the data
  every --mutate-every steps. After every step the rendered views must match
  the window exactly; the host call counts are printed at the end.`)
	case "demo":
		fmt.Println(`USAGE
  rvscroll demo [--config PATH] [--items N] [--no-color] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Opens a grid of generated cards driven by the scroller. Press ? for keys.`)
	case "init":
		fmt.Println(`USAGE
  rvscroll init [--config PATH] [--interactive] [--force]
DESCRIPTION
  Writes the default configuration. --interactive opens an editor first;
  --force overwrites an existing file.`)
	default:
		usage()
	}
}

/* ---------- common flags ---------- */

type geomFlags struct {
	config string
	width  *float64
	height *float64
	items  *int
	term   *bool
}

func addGeomFlags(fs *flag.FlagSet) *geomFlags {
	g := &geomFlags{}
	fs.StringVar(&g.config, "config", cfg.DefaultPath, "Config file (defaults apply when missing)")
	g.width = fs.Float64("width", defaultWidth, "Container width")
	g.height = fs.Float64("height", defaultHeight, "Container height")
	g.items = fs.Int("items", defaultItems, "Number of items")
	g.term = fs.Bool("term", false, "Use the current terminal size for --width and --height")
	return g
}

func (g *geomFlags) load() (*cfg.Config, error) {
	if *g.term {
		w, h, ok := terminalSize()
		if !ok {
			return nil, errors.New("--term: stdout is not a terminal")
		}
		*g.width, *g.height = float64(w), float64(h)
	}
	return cfg.LoadOrDefault(g.config)
}

type logFlags struct {
	verbose *bool
	debug   *bool
	logPath *string
}

func addLogFlags(fs *flag.FlagSet) *logFlags {
	return &logFlags{
		verbose: fs.Bool("v", false, "Verbose logs (INFO)"),
		debug:   fs.Bool("vv", false, "Debug logs (DEBUG)"),
		logPath: fs.String("log-file", "", "Append logs to file (created if missing)"),
	}
}

// logger returns a printf-style sink and a closer. Output goes to stderr at
// -v or above and always to the log file when one is given.
func (l *logFlags) logger() (func(string, ...any), func(), error) {
	var writers []io.Writer
	if *l.verbose || *l.debug {
		writers = append(writers, os.Stderr)
	}
	lf, err := openLogFile(*l.logPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	if lf != nil {
		writers = append(writers, lf)
	}
	closeFn := func() {
		if lf != nil {
			_ = lf.Close()
		}
	}
	if len(writers) == 0 {
		return func(string, ...any) {}, closeFn, nil
	}
	lg := log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lmicroseconds)
	return lg.Printf, closeFn, nil
}

func (l *logFlags) verbosity() int {
	switch {
	case *l.debug:
		return 2
	case *l.verbose:
		return 1
	}
	return 0
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(f, "=== rvscroll %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))
	return f, nil
}

/* ---------- commands ---------- */

func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	fs.Usage = func() { helpTopic("init") }
	path := fs.String("config", cfg.DefaultPath, "Config file to write")
	interactive := fs.Bool("interactive", false, "Edit the settings before writing")
	force := fs.Bool("force", false, "Overwrite an existing file")
	_ = fs.Parse(args)

	c, err := cfg.LoadOrDefault(*path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(*path); err == nil && !*force && !*interactive {
		fmt.Println(*path, "already exists; not overwriting (use --force)")
		return nil
	}
	if *interactive {
		ok, err := appTUI.EditConfig(c)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled; nothing written")
			return nil
		}
	}
	if err := cfg.Save(*path, c); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Println("Wrote", *path)
	return nil
}

func cmdWindow(args []string) error {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	fs.Usage = func() { helpTopic("window") }
	g := addGeomFlags(fs)
	top := fs.Float64("scroll-top", 0, "Scroll offset")
	asJSON := fs.Bool("json", false, "Print the window as JSON")
	_ = fs.Parse(args)

	c, err := g.load()
	if err != nil {
		return err
	}
	if err := c.Sizing.Validate(); err != nil {
		return err
	}
	w := computeWindow(c, *g.width, *g.height, *top, *g.items, 1)
	if *asJSON {
		data, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	before, after := w.Spacers()
	first, last := w.DataRange()
	fmt.Printf("%-18s %gx%g (item %gx%g)\n", "Container:", w.ContainerWidth, w.ContainerHeight, w.ItemWidth, w.ItemHeight)
	fmt.Printf("%-18s %d items, %d rows, height %g\n", "Virtual:", w.VirtualItemCount, w.VirtualRowCount, w.VirtualHeight)
	fmt.Printf("%-18s %d rows x %d columns = %d items (buffer %d)\n", "Actual:", w.ActualRowCount, w.ActualColumnCount, w.ActualItemCount, w.BufferRows)
	fmt.Printf("%-18s %d..%d\n", "Visible rows:", w.VisibleStartRow, w.VisibleEndRow)
	fmt.Printf("%-18s %d..%d\n", "Data range:", first, last)
	fmt.Printf("%-18s before %g, after %g\n", "Spacers:", before, after)
	fmt.Printf("%-18s %g (%.1f%%)\n", "Scroll:", w.ScrollTop, w.ScrollPercentage*100)
	return nil
}

func computeWindow(c *cfg.Config, width, height, top float64, items int, ts int64) geometry.Window {
	m := geometry.Measure(geometry.Rect{Width: width, Height: height}, c.Sizing)
	return geometry.ComputeWindow(top, m, items, ts, c.Sizing)
}

func cmdDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	fs.Usage = func() { helpTopic("diff") }
	g := addGeomFlags(fs)
	from := fs.Float64("from", 0, "Scroll offset of the first window")
	to := fs.Float64("to", 0, "Scroll offset of the second window")
	toWidth := fs.Float64("to-width", -1, "Container width of the second window (default: --width)")
	toHeight := fs.Float64("to-height", -1, "Container height of the second window (default: --height)")
	toItems := fs.Int("to-items", -1, "Item count of the second window (default: --items)")
	asJSON := fs.Bool("json", false, "Print commands as JSON")
	sideBySide := fs.Bool("side-by-side", false, "Show the row diff in two columns")
	noColor := fs.Bool("no-color", false, "Disable colors")
	_ = fs.Parse(args)

	c, err := g.load()
	if err != nil {
		return err
	}
	if err := c.Sizing.Validate(); err != nil {
		return err
	}
	w2, h2, n2 := *g.width, *g.height, *g.items
	if *toWidth >= 0 {
		w2 = *toWidth
	}
	if *toHeight >= 0 {
		h2 = *toHeight
	}
	var ts int64 = 1
	if *toItems >= 0 && *toItems != n2 {
		n2 = *toItems
		ts = 2
	}
	prev := computeWindow(c, *g.width, *g.height, *from, *g.items, 1)
	cur := computeWindow(c, w2, h2, *to, n2, ts)

	host := store.NewMemoryHost[int]()
	st := store.New[int](host, store.Options[int]{})
	st.SetData(indexItems(max(*g.items, n2)))
	plan := diff.Engine{}.Diff(geometry.Empty(), prev)
	st.ApplyAll(plan.Commands)
	st.UpdateWindow(prev)
	before := st.Snapshot()

	plan = diff.Engine{}.Diff(prev, cur)
	cmds := slices.Clone(plan.Commands)
	if len(plan.Deferred) > 0 {
		cmds = append(cmds, diff.Engine{}.CreatePass(cur, plan.Deferred)...)
	}
	st.ApplyAll(cmds)
	st.UpdateWindow(cur)
	after := st.Snapshot()

	if *asJSON {
		data, err := command.Encode(cmds)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	if len(cmds) == 0 {
		fmt.Println("No commands: both windows render the same rows.")
	}
	for _, cmd := range cmds {
		fmt.Println(cmd)
	}
	if len(plan.Deferred) > 0 {
		fmt.Printf("(%d row(s) created after the removals)\n", len(plan.Deferred))
	}
	fmt.Println()
	mode := state.Unified
	if *sideBySide {
		mode = state.SideBySide
	}
	ui := state.UIState{View: mode, Width: defaultWidth, NoColor: *noColor}
	fmt.Print(diffview.NewDiffView().View(ui, before.String(), after.String()))
	return nil
}

// indexItems is the data set the CLI uses: item i is i.
func indexItems(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func cmdSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	fs.Usage = func() { helpTopic("simulate") }
	g := addGeomFlags(fs)
	lf := addLogFlags(fs)
	step := fs.Float64("step", 0, "Sweep increment (0: one row)")
	random := fs.Int("random", 0, "Take N random steps instead of a sweep")
	seed := fs.Uint64("seed", 1, "Random seed")
	mutateEvery := fs.Int("mutate-every", 25, "With --random, replace the data every N steps (0 disables)")
	_ = fs.Parse(args)

	c, err := g.load()
	if err != nil {
		return err
	}
	logf, closeLog, err := lf.logger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals()...)
	defer stop()

	host := store.NewCachingHost[int]()
	opts := scroller.FromConfig(c)
	// Sync waits for pending timers, so debouncing only slows the run down.
	opts.ScrollDebounce, opts.ResizeDebounce = 0, 0
	opts.Logf = logf
	sc, err := scroller.New[int](host, opts)
	if err != nil {
		return err
	}

	items := indexItems(*g.items)
	sc.SetItems(items)
	sc.Resize(geometry.Rect{Width: *g.width, Height: *g.height})

	ctx, cancel := context.WithCancel(ctx)
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		if err := sc.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	var steps, mismatches int
	verify := func(label string) error {
		if err := sc.Sync(gctx); err != nil {
			return err
		}
		steps++
		if err := check(sc.Window(), host.MemoryHost); err != nil {
			mismatches++
			logf("%s: %v", label, err)
		} else if lf.verbosity() > 1 {
			w := sc.Window()
			logf("%s: top %g rows %d..%d", label, w.ScrollTop, w.VisibleStartRow, w.VisibleEndRow)
		}
		return nil
	}

	grp.Go(func() error {
		defer cancel()
		if err := sc.Sync(gctx); err != nil {
			return err
		}
		if *random > 0 {
			rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
			for i := 0; i < *random; i++ {
				w := sc.Window()
				switch {
				case *mutateEvery > 0 && i > 0 && i%*mutateEvery == 0:
					items = mutate(rng, items)
					sc.SetItems(items)
					logf("step %d: %d items", i, len(items))
				case i%40 == 39:
					r := geometry.Rect{Width: *g.width * (0.5 + rng.Float64()), Height: *g.height}
					sc.Resize(r)
					logf("step %d: resize to %gx%g", i, r.Width, r.Height)
				default:
					top := rng.Float64() * max(0, w.VirtualHeight-w.ContainerHeight)
					if rng.IntN(3) == 0 {
						top = w.ScrollTop + float64(rng.IntN(5)-2)*w.ItemHeight
					}
					sc.Scroll(max(0, top))
				}
				if err := verify(fmt.Sprintf("step %d", i)); err != nil {
					return err
				}
			}
			return nil
		}
		w := sc.Window()
		inc := *step
		if inc <= 0 {
			inc = max(1, w.ItemHeight)
		}
		bottom := max(0, w.VirtualHeight-w.ContainerHeight)
		for top := 0.0; ; top += inc {
			top = min(top, bottom)
			sc.Scroll(top)
			if err := verify(fmt.Sprintf("top %g", top)); err != nil {
				return err
			}
			if top >= bottom {
				return nil
			}
		}
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	fmt.Printf("Steps: %d  Items: %d  Mismatches: %d\n", steps, len(items), mismatches)
	fmt.Printf("Rows created: %d  Rows shifted: %d\n", host.Calls["render"], host.Calls["shift"])
	keys := make([]string, 0, len(host.Calls))
	for k := range host.Calls {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Printf("  %-14s %d\n", k+":", host.Calls[k])
	}
	if mismatches > 0 {
		return fmt.Errorf("%d step(s) rendered views that do not match the window", mismatches)
	}
	return nil
}

// mutate drops or adds a few items and reorders a small run.
func mutate(rng *rand.Rand, items []int) []int {
	out := slices.Clone(items)
	next := slices.Max(append([]int{-1}, out...)) + 1
	switch rng.IntN(3) {
	case 0:
		for range 1 + rng.IntN(20) {
			out = append(out, next)
			next++
		}
	case 1:
		if n := len(out); n > 0 {
			i := rng.IntN(n)
			out = slices.Delete(out, i, min(n, i+1+rng.IntN(10)))
		}
	default:
		if n := len(out); n > 1 {
			i := rng.IntN(n - 1)
			j := min(n, i+2+rng.IntN(8))
			slices.Reverse(out[i:j])
		}
	}
	return out
}

// check compares the host's live views with the data range of w.
func check(w geometry.Window, h *store.MemoryHost[int]) error {
	got := make([]int, 0, len(h.Views))
	for _, v := range h.Views {
		got = append(got, v.DataIndex)
	}
	slices.Sort(got)
	first, last := w.DataRange()
	var want []int
	for i := first; first >= 0 && i <= last; i++ {
		want = append(want, i)
	}
	if !slices.Equal(got, want) {
		return fmt.Errorf("rendered %s, window wants %d..%d", short(got), first, last)
	}
	if len(h.Rows) != w.VisibleRows() {
		return fmt.Errorf("%d rows rendered, window has %d", len(h.Rows), w.VisibleRows())
	}
	return nil
}

func short(xs []int) string {
	if len(xs) == 0 {
		return "nothing"
	}
	return fmt.Sprintf("%d views %d..%d", len(xs), xs[0], xs[len(xs)-1])
}

func cmdDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	fs.Usage = func() { helpTopic("demo") }
	path := fs.String("config", cfg.DefaultPath, "Config file (defaults apply when missing)")
	items := fs.Int("items", defaultItems, "Number of generated cards")
	noColor := fs.Bool("no-color", false, "Disable colors")
	lf := addLogFlags(fs)
	_ = fs.Parse(args)

	c, err := cfg.LoadOrDefault(*path)
	if err != nil {
		return err
	}
	// The demo owns the terminal, so logs only go to the file and the panel.
	*lf.verbose, *lf.debug = false, false
	logf, closeLog, err := lf.logger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals()...)
	defer stop()
	err = appTUI.RunDemo(ctx, appTUI.Options{Config: c, Items: *items, NoColor: *noColor, Logf: logf})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
