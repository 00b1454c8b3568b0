package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/robottwo/trophy/internal/config"
	"github.com/robottwo/trophy/internal/core"
	"github.com/robottwo/trophy/internal/guide"
	"github.com/robottwo/trophy/internal/report"
	"github.com/robottwo/trophy/internal/styles"
	"github.com/robottwo/trophy/internal/trophy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	guideAll      bool
	guideProvider string
	guideSend     bool
	guideTimeout  time.Duration

	settingsProvider string
	settingsLanguage string
)

// guideCmd builds an AI strategy prompt for one achievement or a whole game
var guideCmd = &cobra.Command{
	Use:   "guide [id|name]",
	Short: "Build an AI guide prompt for an achievement",
	Long: `Builds a strategy-sheet prompt for one achievement, or with --all for every
incomplete achievement of the selected game, in your guide language.

The prompt is copied to the clipboard and a link opening a new chat with
your AI provider is printed. With --send the prompt goes to the configured
OpenAI-compatible endpoint instead and the answer is printed.`,
	RunE: runGuide,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the AI provider and guide language",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func init() {
	guideCmd.Flags().BoolVarP(&guideAll, "all", "a", false, "Include every incomplete achievement of the selected game")
	guideCmd.Flags().StringVar(&guideProvider, "provider", "", "AI provider for this prompt: gemini, chatgpt, claude or perplexity")
	guideCmd.Flags().BoolVar(&guideSend, "send", false, "Send the prompt to the configured LLM endpoint")
	guideCmd.Flags().DurationVar(&guideTimeout, "timeout", 2*time.Minute, "Give up waiting for the LLM after this long")

	settingsCmd.Flags().StringVar(&settingsProvider, "provider", "", "AI provider: gemini, chatgpt, claude or perplexity")
	settingsCmd.Flags().StringVar(&settingsLanguage, "language", "", "Language the guides are written in")

	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runGuide(cmd *cobra.Command, args []string) error {
	prompt, err := guidePrompt(args)
	if err != nil {
		return err
	}

	if guideSend {
		return sendGuide(cmd, prompt)
	}

	provider := trk.AIProvider()
	if guideProvider != "" {
		if provider, err = guide.ParseProvider(guideProvider); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, prompt)
	fmt.Fprintln(out)
	if err := report.CopyToClipboard(prompt); err != nil {
		logger.Debug("failed to copy guide prompt", zap.Error(err))
	} else {
		fmt.Fprintln(out, styles.INFO("Prompt copied! Paste it in the chat if needed."))
	}
	fmt.Fprintln(out, styles.DIM("Open in "+string(provider)+":"))
	fmt.Fprintln(out, guide.LaunchURL(provider, prompt))
	return nil
}

func guidePrompt(args []string) (string, error) {
	if guideAll {
		game := trk.Scope()
		if game == trophy.AllGames {
			return "", trophy.Invalid("game", `Select a game first with "trophy scope"`)
		}
		return guide.BulkPrompt(game, trk.Achievements(), trk.GuideLanguage()), nil
	}

	if len(args) == 0 {
		return "", trophy.Invalid("achievement", "Name an achievement, or use --all for the selected game")
	}
	a, err := trk.Find(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return guide.SinglePrompt(a, trk.GuideLanguage()), nil
}

func sendGuide(cmd *cobra.Command, prompt string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, guideTimeout)
	defer cancelTimeout()

	client := guide.NewClient(cfg.LLM)
	logger.Info("sending guide prompt", zap.String("model", client.Model()), zap.Int("length", len(prompt)))

	spinner := styles.NewSpinner(cmd.ErrOrStderr(), "Asking "+client.Model()+"...")
	if stdinIsTerminal() {
		spinner.Start()
	}
	answer, err := client.Ask(ctx, prompt)
	spinner.Stop()
	if err != nil {
		logger.Warn("guide request failed", zap.Error(err))
		return fmt.Errorf("guide request failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}

func runSettings(cmd *cobra.Command, args []string) error {
	provider := settingsProvider
	language := settingsLanguage

	if provider == "" && language == "" && stdinIsTerminal() && !assumeYes {
		var err error
		provider, language, err = settingsForm()
		if err != nil {
			return err
		}
	}

	if provider != "" {
		if err := trk.SetAIProvider(provider); err != nil {
			return err
		}
	}
	if language != "" {
		if err := trk.SetGuideLanguage(language); err != nil {
			return err
		}
	}
	if (provider != "" || language != "") && cfg.DataDir != "" && !ephemeral {
		err := config.Update(cfg.DataDir, func(c *config.Config) {
			c.AIProvider = string(trk.AIProvider())
			c.GuideLanguage = trk.GuideLanguage()
		})
		if err != nil {
			logger.Warn("failed to write config file", zap.Error(err))
			return fmt.Errorf("save settings: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "AI provider:    %s\n", trk.AIProvider())
	fmt.Fprintf(out, "Guide language: %s\n", trk.GuideLanguage())
	if cfg.DataDir != "" {
		fmt.Fprintf(out, "Data directory: %s\n", core.HideHomeDirPath(cfg.DataDir))
	}
	return nil
}

func settingsForm() (string, string, error) {
	provider := string(trk.AIProvider())
	language := trk.GuideLanguage()

	providers := make([]huh.Option[string], 0, len(guide.Providers))
	for _, p := range guide.Providers {
		providers = append(providers, huh.NewOption(string(p), string(p)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("AI provider").
				Options(providers...).
				Value(&provider),
			huh.NewSelect[string]().
				Title("Guide language").
				Options(huh.NewOptions(languageChoices(language)...)...).
				Value(&language),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return provider, language, nil
}

// languageChoices lists the known languages plus current when it is custom
func languageChoices(current string) []string {
	for _, l := range guide.Languages {
		if l == current {
			return guide.Languages
		}
	}
	return append([]string{current}, guide.Languages...)
}
