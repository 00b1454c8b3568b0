package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robottwo/trophy/internal/catalog"
	"github.com/robottwo/trophy/internal/merge"
	"github.com/robottwo/trophy/internal/report"
	"github.com/robottwo/trophy/internal/styles"
	"github.com/robottwo/trophy/internal/textsync"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncInput     inputSource
	syncOverwrite bool

	importInput inputSource

	exportCopy bool

	addGameTimeout time.Duration
	// fetcher overrides the catalog sources of add-game when set
	fetcher catalog.Fetcher
)

// syncCmd updates progress from a pasted achievement page or JSON export
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update progress from a pasted achievement page or JSON",
	Long: `Reads text copied from an achievement tracking site and marks every
achievement it finds as "Unlocked" completed, and picks up progress counters
such as "5 / 20". Only the selected game is considered.

A JSON array of achievements (bare or under an "achievements" key) is merged
record by record instead.

With --overwrite the selected game is reset first, so anything not found as
unlocked in the paste becomes incomplete again.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var importCmd = &cobra.Command{
	Use:   "import [code]",
	Short: "Replace all data with an export code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print all data as a compact code",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var addGameCmd = &cobra.Command{
	Use:   "add-game <app-id> <name>",
	Short: "Add a game and fetch its achievements",
	Long: `Adds a game by its Steam App ID and name, e.g.

  trophy add-game 620 Portal 2

The achievement list is read from catalog/<app-id>.yaml in the data
directory when that file exists. Otherwise five generic milestones are
added.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAddGame,
}

var deleteGameCmd = &cobra.Command{
	Use:   "delete-game [game]",
	Short: "Delete a game and all its achievements",
	Long:  `Deletes the named game, or the selected game when no name is given.`,
	RunE:  runDeleteGame,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all achievements",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Load sample data",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	syncInput.register(syncCmd)
	syncCmd.Flags().BoolVar(&syncOverwrite, "overwrite", false, "Reset the selected game before applying the paste")

	importInput.register(importCmd)

	exportCmd.Flags().BoolVarP(&exportCopy, "copy", "c", false, "Copy the code to the clipboard")

	addGameCmd.Flags().DurationVar(&addGameTimeout, "timeout", 30*time.Second, "Give up fetching after this long")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(addGameCmd)
	rootCmd.AddCommand(deleteGameCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(demoCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	text, err := syncInput.read(cmd, "Paste the achievement page")
	if err != nil {
		return err
	}

	if !syncOverwrite {
		message, err := trk.SyncText(text, false)
		return notify(cmd, message, err)
	}

	p, err := trk.ProposeOverwriteSync(text)
	if err != nil {
		return err
	}
	if !textsync.LooksLikeTrackerText(text) && !merge.IsPayload(text) {
		logger.Debug("overwrite input does not look like tracker text", zap.Int("length", len(text)))
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WARNING("This does not look like a full achievement page. Anything it does not list as unlocked will be reset."))
	}
	return confirmAndRun(cmd, p)
}

func runImport(cmd *cobra.Command, args []string) error {
	var code string
	if len(args) == 1 {
		code = args[0]
	} else {
		var err error
		code, err = importInput.read(cmd, "Paste your data code")
		if err != nil {
			return err
		}
	}

	if trk.IsEmpty() {
		message, err := trk.Import(code)
		return notify(cmd, message, err)
	}

	p, err := trk.ProposeImport(code)
	if err != nil {
		return err
	}
	return confirmAndRun(cmd, p)
}

func runExport(cmd *cobra.Command, args []string) error {
	code, err := trk.Export()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), code)

	if !exportCopy {
		return nil
	}
	if err := report.CopyToClipboard(code); err != nil {
		logger.Warn("failed to copy export code", zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), styles.ERROR("Clipboard not available. Please select the text and copy manually."))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.SUCCESS("Data copied to clipboard!"))
	return nil
}

func runAddGame(cmd *cobra.Command, args []string) error {
	appID := args[0]
	name := strings.Join(args[1:], " ")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, addGameTimeout)
	defer cancelTimeout()

	spinner := styles.NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Fetching achievements for %s...", name))
	if stdinIsTerminal() {
		spinner.Start()
	}
	message, err := trk.AddGame(ctx, appID, name, addGameFetcher())
	spinner.Stop()

	return notify(cmd, message, err)
}

// addGameFetcher looks for a saved stats page in the catalog directory and
// falls back to the offline template.
func addGameFetcher() catalog.Fetcher {
	if fetcher != nil {
		return fetcher
	}
	if cfg.DataDir == "" {
		return catalog.TemplateFetcher{}
	}
	return catalog.Chain(catalog.DirFetcher{Dir: cfg.Paths().CatalogDir}, catalog.TemplateFetcher{})
}

func runDeleteGame(cmd *cobra.Command, args []string) error {
	p, err := trk.ProposeDeleteGame(strings.Join(args, " "))
	if err != nil {
		return err
	}
	return confirmAndRun(cmd, p)
}

func runClear(cmd *cobra.Command, args []string) error {
	return confirmAndRun(cmd, trk.ProposeClear())
}

func runDemo(cmd *cobra.Command, args []string) error {
	if trk.IsEmpty() {
		message, err := trk.SeedDemo()
		return notify(cmd, message, err)
	}
	return confirmAndRun(cmd, trk.ProposeSeedDemo())
}
