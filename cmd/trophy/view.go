package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/robottwo/trophy/internal/query"
	"github.com/robottwo/trophy/internal/report"
	"github.com/robottwo/trophy/internal/styles"
	"github.com/robottwo/trophy/internal/textsync"
	"github.com/robottwo/trophy/internal/trophy"
	"github.com/spf13/cobra"
)

var (
	listFilter string
	listWidth  int

	reportCopy bool
)

// listCmd shows the achievements of the selected game
var listCmd = &cobra.Command{
	Use:     "list [search]",
	Aliases: []string{"ls"},
	Short:   "List achievements in the selected game",
	Long: `Lists the achievements of the selected game (see "trophy scope"), narrowed
by an optional search over names and descriptions and by --filter.

Pasting a whole achievement page or a JSON export as the search syncs it
instead, the same as "trophy sync".`,
	RunE: runList,
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Show per-game completion",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

var scopeCmd = &cobra.Command{
	Use:   "scope [game]",
	Short: "Show or select the current game",
	Long: `Without arguments prints the selected game. With a game name selects it;
"all" selects every game.`,
	RunE: runScope,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id|name>",
	Short: "Flip an achievement between completed and incomplete",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToggle,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a plain-text progress report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Status filter: none, priority, favorite, incomplete or completed")
	listCmd.Flags().IntVar(&listWidth, "width", 0, "Wrap descriptions at this width (default: terminal width)")

	reportCmd.Flags().BoolVarP(&reportCopy, "copy", "c", false, "Copy the report to the clipboard")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(reportCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	search := strings.Join(args, " ")
	if textsync.LooksLikeTrackerText(search) || textsync.LooksLikeJSON(search) {
		fmt.Fprintln(cmd.OutOrStdout(), styles.INFO("That looks like achievement data, syncing it."))
		message, err := trk.SyncText(search, false)
		return notify(cmd, message, err)
	}

	status, err := query.ParseStatus(listFilter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if trk.IsEmpty() {
		fmt.Fprintln(out, styles.DIM(`No achievements yet. Add a game with "trophy add-game" or load sample data with "trophy demo".`))
		return nil
	}

	width := listWidth
	if width <= 0 {
		width = terminalWidth()
	}

	view := trk.View(search, status)
	fmt.Fprintln(out, report.Tabs(trk.Achievements(), trk.Scope()))
	fmt.Fprintln(out)
	fmt.Fprint(out, report.Table(view, width))
	fmt.Fprintln(out, report.Stats(view))
	return nil
}

func runGames(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	games := trk.Games()
	if len(games) == 0 {
		fmt.Fprintln(out, styles.DIM("No games yet."))
		return nil
	}

	name := 0
	for _, g := range games {
		name = max(name, len(g.String()))
	}
	for _, g := range games {
		line := fmt.Sprintf("%s  %s %3d%%", report.Fit(g.String(), name), report.ProgressBar(g.Percentage(), 20), g.Percentage())
		if g.Game == trk.Scope() {
			line = styles.HEADER(line)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runScope(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		scope := trk.Scope()
		if scope == trophy.AllGames {
			scope = "All Games"
		}
		fmt.Fprintln(cmd.OutOrStdout(), scope)
		return nil
	}

	game := strings.Join(args, " ")
	if strings.EqualFold(game, trophy.AllGames) {
		game = trophy.AllGames
	}
	if err := trk.SetScope(game); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.SUCCESS("Selected "+game))
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	message, err := trk.Toggle(strings.Join(args, " "))
	return notify(cmd, message, err)
}

func runReport(cmd *cobra.Command, args []string) error {
	text := report.Build(trk.Achievements(), time.Now())
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if !reportCopy {
		return nil
	}
	if err := report.CopyToClipboard(text); err != nil {
		return fmt.Errorf("could not copy to clipboard: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.SUCCESS("Progress report copied to clipboard!"))
	return nil
}
