package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/robottwo/trophy/internal/report"
	"github.com/spf13/cobra"
)

// inputSource says where pasted text comes from
type inputSource struct {
	file      string
	clipboard bool
}

func (s *inputSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", `Read the text from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&s.clipboard, "clipboard", false, "Read the text from the clipboard")
}

// read returns the pasted text: from --file, the clipboard, piped stdin, or
// an interactive text area when stdin is a terminal.
func (s *inputSource) read(cmd *cobra.Command, title string) (string, error) {
	switch {
	case s.file == "-":
		return readAll(cmd.InOrStdin())
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", s.file, err)
		}
		return string(data), nil
	case s.clipboard:
		return report.ReadClipboard()
	case !stdinIsTerminal():
		return readAll(cmd.InOrStdin())
	}

	var text string
	err := huh.NewText().
		Title(title).
		Lines(12).
		CharLimit(0).
		Value(&text).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	return text, err
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
