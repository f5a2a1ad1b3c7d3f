package cli

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	errorText   = color.New(color.FgRed).SprintFunc()
	accentText  = color.New(color.FgCyan).SprintFunc()
	dimText     = color.New(color.Faint).SprintFunc()
)

// printStatus writes a process status line coloured by outcome.
func printStatus(cmd *cobra.Command, label string, status domain.ProcessStatus) {
	switch status.State {
	case domain.ProcessSuccess:
		cmd.Printf("%s %s\n", label, successText(status.Message))
	case domain.ProcessError:
		cmd.Printf("%s %s\n", label, errorText(status.Message))
	case domain.ProcessPending:
		cmd.Printf("%s %s\n", label, status.Message)
	default:
		cmd.Printf("%s %s\n", label, dimText("skipped"))
	}
}

// isTerminal reports whether v (a reader or writer) is an interactive terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// withSpinner runs fn while a spinner turns on stderr. Non-terminal
// writers get no spinner so piped and captured output stays clean.
func withSpinner(cmd *cobra.Command, description string, fn func() error) error {
	w := cmd.ErrOrStderr()
	if !isTerminal(w) {
		return fn()
	}

	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = spinner.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	_ = spinner.Finish()
	return err
}
