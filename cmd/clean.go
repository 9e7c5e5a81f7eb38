package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/devmole/internal/config"
	"github.com/lakshaymaurya-felt/devmole/internal/core"
	"github.com/lakshaymaurya-felt/devmole/internal/ecosystem"
	"github.com/lakshaymaurya-felt/devmole/internal/engine"
	"github.com/lakshaymaurya-felt/devmole/internal/pathguard"
	"github.com/lakshaymaurya-felt/devmole/internal/report"
	"github.com/lakshaymaurya-felt/devmole/internal/scan"
	"github.com/lakshaymaurya-felt/devmole/internal/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Scan for projects and clean their build output",
	Long: `Scan a directory tree for projects and clean their build output.

Each discovered project is cleaned with its ecosystem's own clean command
(cargo clean, go clean, ...) or by deleting its known cache directories
(node_modules, __pycache__, ...). Directory size is measured before and
after so the summary reports the space actually reclaimed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

var (
	cleanExcludeDirs  []string
	cleanExcludeTypes []string
	cleanMaxDepth     int
	cleanMaxFiles     int
	cleanConcurrency  int
	cleanDryRun       bool
	cleanVerbose      bool
	cleanNoTUI        bool
)

func init() {
	cleanCmd.Flags().StringSliceVar(&cleanExcludeDirs, "exclude-dir", nil, "Directory names to skip (repeatable)")
	cleanCmd.Flags().StringSliceVar(&cleanExcludeTypes, "exclude-type", nil, "Ecosystems to skip, e.g. cargo,node (repeatable)")
	cleanCmd.Flags().IntVar(&cleanMaxDepth, "max-depth", 0, "Maximum directory depth to scan")
	cleanCmd.Flags().IntVar(&cleanMaxFiles, "max-files", 0, "Maximum files per project size measurement")
	cleanCmd.Flags().IntVarP(&cleanConcurrency, "concurrency", "j", 0, "Concurrent workers (default: CPU count)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview the cleanup plan without deleting")
	cleanCmd.Flags().BoolVarP(&cleanVerbose, "verbose", "v", false, "Print the effective configuration before running")
	cleanCmd.Flags().BoolVar(&cleanNoTUI, "no-tui", false, "Disable the live progress display")
}

func runClean(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := fileCfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cli := config.Effective{
		ExcludeTypes:  cleanExcludeTypes,
		ExcludeDirs:   cleanExcludeDirs,
		MaxConcurrent: cleanConcurrency,
		MaxDepth:      cleanMaxDepth,
		MaxFiles:      cleanMaxFiles,
		Verbose:       cleanVerbose,
	}
	if len(args) == 1 {
		cli.Path = args[0]
	}
	eff := fileCfg.Merge(cli)
	if err := eff.Validate(); err != nil {
		return err
	}

	root, err := pathguard.ValidateRoot(eff.Path)
	if err != nil {
		return err
	}
	if err := pathguard.ValidateExcludeNames(eff.ExcludeDirs); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	specs, err := ecosystem.Filter(ecosystem.Defaults(), eff.ExcludeTypes)
	if err != nil {
		return err
	}
	specs = ecosystem.Available(ctx, specs)
	if len(specs) == 0 {
		fmt.Println(ui.Muted.Render("  No usable clean commands found on this machine."))
		return nil
	}

	logger := zap.NewNop()
	if debug {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("initializing debug logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	if eff.Verbose {
		fmt.Println("  Using configuration:")
		fmt.Println("    Path:", root)
		fmt.Println("    Exclude dirs:", strings.Join(eff.ExcludeDirs, ", "))
		fmt.Println("    Max directory depth:", eff.MaxDepth)
		fmt.Println("    Max files per project:", eff.MaxFiles)
		fmt.Println("    Workers:", eff.MaxConcurrent)
		fmt.Println()
	}
	fmt.Printf("  Found supported clean commands: %s\n",
		ui.Accent.Render(strings.Join(ecosystem.IDs(specs), ", ")))

	opts := engine.Options{
		Root:        root,
		Exclude:     eff.ExcludeDirs,
		Limits:      scan.Limits{MaxDepth: eff.MaxDepth, MaxFiles: eff.MaxFiles},
		Concurrency: eff.MaxConcurrent,
		Registry:    specs,
		DryRun:      cleanDryRun,
		Logger:      logger,
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) && !cleanNoTUI && !debug
	var summary engine.Summary
	if interactive {
		summary, err = runWithTUI(ctx, opts)
	} else {
		summary, err = runPlain(ctx, opts)
	}
	if err != nil {
		return err
	}

	if cleanDryRun {
		fmt.Println(ui.Muted.Render("  Dry run: nothing was deleted."))
	}
	if du, duErr := disk.Usage(root); duErr == nil {
		fmt.Println("  " + ui.Muted.Render(
			fmt.Sprintf("Disk free: %s of %s", core.FormatSize(int64(du.Free)), core.FormatSize(int64(du.Total)))))
	}

	if summary.TasksFailed > 0 {
		return fmt.Errorf("%d task%s failed", summary.TasksFailed, core.Plural(summary.TasksFailed))
	}
	return nil
}

// runPlain streams outcome lines straight to stdout.
func runPlain(ctx context.Context, opts engine.Options) (engine.Summary, error) {
	color := isatty.IsTerminal(os.Stdout.Fd())
	printer := report.NewPrinter(os.Stdout, color)

	opts.OnPlan = printer.Plan
	opts.OnOutcome = printer.Outcome

	summary, err := engine.Run(ctx, opts)
	if err != nil {
		return summary, err
	}
	printer.Summary(summary)
	return summary, nil
}

// runWithTUI drives the engine from a goroutine and renders progress with
// the bubbletea model. The summary is printed after the program exits so
// it survives the screen teardown.
func runWithTUI(ctx context.Context, opts engine.Options) (engine.Summary, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The bridge is closed after the program exits so the engine goroutine
	// never blocks on a buffer nobody drains (render error, outer signal).
	bridge := report.NewBridge(64)
	defer bridge.Close()
	opts.OnPlan = bridge.Plan
	opts.OnOutcome = bridge.Outcome

	go func() {
		summary, err := engine.Run(runCtx, opts)
		bridge.Done(summary, err)
	}()

	model := report.NewCleanModel(0, bridge.Events(), cancel)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return engine.Summary{}, fmt.Errorf("progress display failed: %w", err)
	}

	m := final.(report.CleanModel)
	if m.Err != nil {
		return engine.Summary{}, m.Err
	}

	printer := report.NewPrinter(os.Stdout, true)
	for _, w := range m.Summary.Warnings {
		fmt.Println(ui.Warn.Render("  warning: " + w))
	}
	printer.Summary(m.Summary)
	return m.Summary, nil
}
