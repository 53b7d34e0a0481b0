package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gradualtype/internal/ast"
	"gradualtype/internal/cache"
	"gradualtype/internal/config"
	"gradualtype/internal/diag"
	"gradualtype/internal/diagfmt"
	"gradualtype/internal/eval"
	"gradualtype/internal/fixture"
	"gradualtype/internal/source"
	"gradualtype/internal/types"
	"gradualtype/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.gtcexpr|dir>",
	Short: "Evaluate *.gtcexpr fixtures and report diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("config", "", "path to a pyrightcheck.toml-equivalent manifest")
	checkCmd.Flags().Int("jobs", 0, "max parallel evaluator workers (0=auto, one per CPU)")
	checkCmd.Flags().Bool("watch", false, "render a live progress TUI while checking")
	checkCmd.Flags().String("cache-dir", "", "cross-run disk cache directory (default: OS cache dir)")
	checkCmd.Flags().Bool("no-cache", false, "disable the cross-run disk cache")
}

type fileResult struct {
	path string
	bag  *diag.Bag
	fs   *source.FileSet
	err  error
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	var disk *cache.DiskCache
	if !noCache {
		disk, err = openDiskCache(cacheDir)
		if err != nil {
			return fmt.Errorf("opening disk cache: %w", err)
		}
	}

	files, err := discoverFixtures(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.gtcexpr fixtures found under %s", args[0])
	}

	var events chan ui.Event
	var program *tea.Program
	var uiDone sync.WaitGroup
	if watch {
		events = make(chan ui.Event, 256)
		model := ui.NewProgressModel("checking "+args[0], files, events)
		program = tea.NewProgram(model, tea.WithOutput(os.Stdout))
		uiDone.Add(1)
		go func() {
			defer uiDone.Done()
			_, _ = program.Run()
		}()
	}

	results := make([]fileResult, len(files))
	g := new(errgroup.Group)
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			emit(events, path, ui.StageLoad, ui.StatusWorking)
			results[i] = checkOne(path, cfg, disk)
			emit(events, path, ui.StageEvaluate, statusFor(results[i]))
			return nil
		})
	}
	_ = g.Wait()

	if events != nil {
		close(events)
		uiDone.Wait()
	}

	hasErrors := false
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.path, r.err)
			hasErrors = true
			continue
		}
		r.bag.Sort()
		if r.bag.HasErrors() {
			hasErrors = true
		}
		if err := printResult(cmd, r, format, colorMode); err != nil {
			return err
		}
	}

	if hasErrors || !quiet {
		summarize(cmd, len(results), hasErrors, colorMode)
	}

	if hasErrors {
		return fmt.Errorf("type errors found")
	}
	return nil
}

func emit(events chan ui.Event, path string, stage ui.Stage, status ui.Status) {
	if events == nil {
		return
	}
	events <- ui.Event{File: path, Stage: stage, Status: status}
}

func statusFor(r fileResult) ui.Status {
	if r.err != nil || (r.bag != nil && r.bag.HasErrors()) {
		return ui.StatusError
	}
	return ui.StatusDone
}

// configFingerprint renders the config fields that affect evaluation
// outcomes, so two runs against the same fixture under different configs
// never collide on the same disk-cache digest.
func configFingerprint(cfg config.Config) string {
	return fmt.Sprintf("%d|%s|%s|%s",
		cfg.PythonVersion, cfg.ReportOptionalMemberAccess, cfg.ReportOptionalSubscript, cfg.ReportOptionalCall)
}

// openDiskCache resolves dir (or the OS cache dir's "gtc" subdirectory when
// dir is empty) and opens a DiskCache rooted there.
func openDiskCache(dir string) (*cache.DiskCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "gtc")
	}
	return cache.OpenDiskCache(dir)
}

func checkOne(path string, cfg config.Config, disk *cache.DiskCache) fileResult {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}
	// The cached diagnostics depend on cfg as much as on raw, so fold it
	// into the digest too: otherwise a config change with an unchanged
	// fixture would replay stale diagnostics from the previous config.
	digest := cache.HashSource(append(append([]byte(nil), raw...), []byte(configFingerprint(cfg))...))

	chk, err := fixture.Load(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}

	if disk != nil {
		var payload cache.DiskPayload
		if hit, err := disk.Get(digest, &payload); err == nil && hit {
			return fileResult{path: path, bag: bagFromCachedDiagnostics(payload.Diagnostics, chk.FileID), fs: chk.FileSet}
		}
	}

	bag := diag.NewBag(1000)
	memo := cache.NewMemo()

	ev := eval.New(chk.Exprs, chk.Strings, chk.Interner, chk.Scope, cfg, diag.BagReporter{Bag: bag})
	ev.ReadCache = func(id ast.ExprID) (types.TypeID, bool) {
		v, ok := memo.Read(id)
		return types.TypeID(v), ok
	}
	ev.WriteCache = func(id ast.ExprID, t types.TypeID) {
		memo.Write(id, uint32(t))
	}

	for _, root := range chk.Roots {
		ev.GetType(root, eval.UsageGet, 0)
	}

	if disk != nil {
		// NodeTypes isn't populated here: nothing in this CLI reads a cached
		// per-node type map back (a cache hit only replays Diagnostics), so
		// writing it out would just be dead weight on every run.
		payload := &cache.DiskPayload{
			Diagnostics: cachedDiagnosticsFrom(bag.Items()),
		}
		_ = disk.Put(digest, payload)
	}

	return fileResult{path: path, bag: bag, fs: chk.FileSet}
}

func cachedDiagnosticsFrom(items []diag.Diagnostic) []cache.CachedDiagnostic {
	out := make([]cache.CachedDiagnostic, len(items))
	for i, d := range items {
		out[i] = cache.CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			FileID:   uint32(d.Primary.File),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
	}
	return out
}

// bagFromCachedDiagnostics replays a disk-cached diagnostic set against the
// current run's fileID, since FileSets are rebuilt fresh on every checkOne.
func bagFromCachedDiagnostics(items []cache.CachedDiagnostic, fileID source.FileID) *diag.Bag {
	bag := diag.NewBag(len(items) + 1)
	for _, c := range items {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(c.Severity),
			Code:     diag.Code(c.Code),
			Message:  c.Message,
			Primary:  source.Span{File: fileID, Start: c.Start, End: c.End},
		})
	}
	return bag
}

func printResult(cmd *cobra.Command, r fileResult, format, colorMode string) error {
	if r.bag.Len() == 0 {
		return nil
	}
	switch format {
	case "json":
		out, err := diagfmt.JSON(r.bag.Items(), r.fs)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		mode := diagfmt.ColorAuto
		switch colorMode {
		case "on":
			mode = diagfmt.ColorAlways
		case "off":
			mode = diagfmt.ColorNever
		}
		useColor := diagfmt.ShouldColor(mode, int(os.Stdout.Fd()))
		diagfmt.Pretty(cmd.OutOrStdout(), r.bag.Items(), r.fs, useColor)
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func summarize(cmd *cobra.Command, total int, hasErrors bool, colorMode string) {
	label := fmt.Sprintf("checked %d fixture(s)", total)
	if hasErrors {
		msg := color.New(color.FgRed, color.Bold)
		if colorMode == "off" {
			msg.DisableColor()
		}
		msg.Fprintln(cmd.ErrOrStderr(), label+": type errors found")
		return
	}
	msg := color.New(color.FgGreen, color.Bold)
	if colorMode == "off" {
		msg.DisableColor()
	}
	msg.Fprintln(cmd.OutOrStdout(), label+": no type errors")
}

func discoverFixtures(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(p) == ".gtcexpr" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
