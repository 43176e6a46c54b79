package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gamekeeper/gamekeeper/internal/watch"
	"github.com/gamekeeper/gamekeeper/pkg/config"
	"github.com/gamekeeper/gamekeeper/pkg/harvest"
	"github.com/gamekeeper/gamekeeper/pkg/logger"
	"github.com/gamekeeper/gamekeeper/pkg/process"
	"github.com/gamekeeper/gamekeeper/pkg/state"
	"github.com/gamekeeper/gamekeeper/pkg/types"
	"github.com/gamekeeper/gamekeeper/pkg/utils"
)

func newHarvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest <source> <target>",
		Short: "Harvest game directories and build their sources",
		Long: `Scan the source directory for game directories, copy them into the
target directory under stripped names, write the metadata manifest, and
run the build command against every discovered source file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarvest(args[0], args[1])
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <source>",
		Short: "List matching game directories without copying",
		Long:  `Show the directories a harvest would copy and the names they would get.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0])
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <source> <target>",
		Short: "Re-harvest whenever the source tree changes",
		Long: `Run a full harvest, then watch the source tree and re-run the whole
pipeline from scratch after changes settle. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], args[1])
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <target>",
		Short: "Show recorded harvest runs for a target directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(args[0])
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Gamekeeper configuration",
		Long: `Write a default configuration file in the current directory. Edit it
to change the pattern, the source extension, or the build command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing configuration")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Gamekeeper",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("🎮 Gamekeeper v%s\n", version)
		},
	}
}

// Implementation functions

func runHarvest(source, target string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.CreateLogger("", verbosity)
	pipeline := harvest.NewPipeline(cfg, log)

	result, err := pipeline.Run(context.Background(), source, target)
	if err != nil {
		return err
	}

	printBuildReport(result)
	return nil
}

func printBuildReport(result *harvest.RunResult) {
	printSuccess(fmt.Sprintf("Harvested %d games into %s in %s",
		len(result.Mappings), result.TargetRoot, result.Duration.Round(time.Millisecond)))

	if result.Report.Failures() == 0 {
		if len(result.Report.Results) > 0 {
			printInfo(fmt.Sprintf("Built %d source files", len(result.Report.Results)))
		}
		return
	}

	// Per-file failures are best-effort: report them, keep exit status 0
	printError(fmt.Sprintf("%d of %d build invocations failed:",
		result.Report.Failures(), len(result.Report.Results)))
	for _, res := range result.Report.Results {
		if res.Succeeded() {
			continue
		}
		printError(fmt.Sprintf("  %s: %v", res.File, res.Err))
	}
}

func runScan(source string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourceRoot := harvest.ResolvePath(source)
	entries, err := harvest.FindGameDirs(sourceRoot, cfg.Pattern)
	if err != nil {
		return err
	}

	mappings, err := harvest.DeriveNames(entries, cfg.Pattern)
	if err != nil {
		return err
	}

	if len(mappings) == 0 {
		printInfo(fmt.Sprintf("No directories matching %q under %s", cfg.Pattern, sourceRoot))
		return nil
	}

	printInfo(fmt.Sprintf("%d directories matching %q under %s", len(mappings), cfg.Pattern, sourceRoot))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIRECTORY\tNEW NAME")
	fmt.Fprintln(w, "---------\t--------")
	for _, m := range mappings {
		fmt.Fprintf(w, "%s\t%s\n", m.Source.Name, m.NewName)
	}
	w.Flush()
	return nil
}

func runWatch(source, target string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourceRoot := harvest.ResolvePath(source)
	if !utils.DirectoryExists(sourceRoot) {
		return fmt.Errorf("source directory does not exist: %s", sourceRoot)
	}

	log := logger.CreateLogger("", verbosity)
	pipeline := harvest.NewPipeline(cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pm := process.NewManager(log)
	pm.RegisterShutdownHandler(cancel)
	pm.Start(ctx)
	defer pm.Stop()

	settling := time.Duration(cfg.Watch.SettlingDelayMs) * time.Millisecond
	watcher, err := watch.New(log, settling, cfg.Watch.Exclusions)
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Initial harvest; a failing run is reported but keeps watching,
	// the next settle retries from scratch
	if result, err := pipeline.Run(ctx, sourceRoot, target); err != nil {
		printError(fmt.Sprintf("Harvest failed: %v", err))
	} else {
		printBuildReport(result)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Run(gctx, sourceRoot)
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-watcher.Settled():
				printInfo("Source changed, re-harvesting...")
				if result, err := pipeline.Run(gctx, sourceRoot, target); err != nil {
					printError(fmt.Sprintf("Harvest failed: %v", err))
				} else {
					printBuildReport(result)
				}
			}
		}
	})

	err = g.Wait()

	// Unblock the signal goroutine before Stop waits on it
	cancel()
	return err
}

func runStatus(target string) error {
	targetRoot := harvest.ResolvePath(target)
	sm := state.NewManager(targetRoot, nil)

	runs, err := sm.DiscoverRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		printInfo(fmt.Sprintf("No harvest runs recorded under %s", targetRoot))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTATUS\tSTARTED\tGAMES\tBUILDS\tFAILURES")
	fmt.Fprintln(w, "---\t------\t-------\t-----\t------\t--------")

	for _, rs := range runs {
		status := string(rs.Status)
		switch rs.Status {
		case types.HarvestStatusSucceeded:
			status = color.GreenString(status)
		case types.HarvestStatusFailed:
			status = color.RedString(status)
		default:
			status = color.YellowString(status)
		}

		// State files are externally editable; a short run ID must not
		// break the listing
		id := rs.RunID
		if len(id) > 8 {
			id = id[:8]
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			id,
			status,
			rs.StartedAt.Format("2006-01-02 15:04:05"),
			len(rs.GameNames),
			rs.BuildCount,
			rs.FailureCount,
		)
	}

	w.Flush()
	return nil
}

func runInit(force bool) error {
	configPath := getConfigPath()

	if utils.FileExists(configPath) && !force {
		return fmt.Errorf("configuration already exists. Use --force to overwrite")
	}

	manager := config.NewManager()
	if err := manager.SaveConfig(types.DefaultConfig(), configPath); err != nil {
		return err
	}

	abs, _ := filepath.Abs(configPath)
	printSuccess(fmt.Sprintf("Created configuration at %s", abs))
	printInfo("Edit the configuration to customize the pattern and build command")

	return nil
}
