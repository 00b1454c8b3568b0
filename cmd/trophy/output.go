package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/robottwo/trophy/internal/styles"
	"github.com/robottwo/trophy/internal/tracker"
	"github.com/robottwo/trophy/internal/trophy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// notify prints the outcome of an operation. A sync that matched nothing is
// reported as info and does not fail the command.
func notify(cmd *cobra.Command, message string, err error) error {
	out := cmd.OutOrStdout()
	if errors.Is(err, trophy.ErrNoMatch) {
		fmt.Fprintln(out, styles.INFO(trophy.UserMessage(err)))
		return nil
	}
	if err != nil {
		logger.Warn("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		return err
	}
	fmt.Fprintln(out, styles.SUCCESS(message))
	return nil
}

// confirm asks the pending operation's question unless --yes was given
var confirm = func(p *tracker.Pending) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !stdinIsTerminal() {
		return false, trophy.Invalid("confirm", "%s Rerun with --yes to confirm.", p.Prompt)
	}

	ok := false
	err := huh.NewConfirm().
		Title(p.Prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// confirmAndRun executes a proposed operation once the user agreed to it
func confirmAndRun(cmd *cobra.Command, p *tracker.Pending) error {
	ok, err := confirm(p)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), styles.DIM("Cancelled."))
		return nil
	}

	message, err := trk.Confirm(p)
	return notify(cmd, message, err)
}
