package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure how siteassist reaches the backend.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long: `Set one setting and save it to the config file.

Keys:
  backend.url            backend base URL (default http://localhost:5000)
  backend.timeout        per-request timeout, e.g. 30s (empty or 0 for none)
  backend.rate_limit     requests per second (0 for no limit)
  chat.fallback_message  text shown when a chat request fails without a reason`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Prompt for each setting in turn. Press Enter to keep the current value.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", settings.Backend.URL)
	cmd.Printf("  Timeout: %s\n", formatTimeout(settings.Backend))
	cmd.Printf("  Rate limit: %s\n", formatRate(settings.Backend))
	cmd.Println()

	cmd.Println("[Chat]")
	cmd.Printf("  Fallback message: %s\n", settings.Chat.FallbackMessage)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'siteassist settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("siteassist Settings Wizard")
	cmd.Println("==========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	steps := []struct {
		key     string
		prompt  string
		current string
	}{
		{"backend.url", "Backend URL", settings.Backend.URL},
		{"backend.timeout", "Request timeout (e.g. 30s, 0 for none)", timeoutValue(settings.Backend)},
		{"backend.rate_limit", "Requests per second (0 for no limit)", strconv.FormatFloat(settings.Backend.RateLimit, 'f', -1, 64)},
		{"chat.fallback_message", "Chat fallback message", settings.Chat.FallbackMessage},
	}

	for _, step := range steps {
		for {
			cmd.Printf("%s [%s]: ", step.prompt, step.current)
			input := readLine(reader)
			if input == "" {
				break
			}
			if err := settingsService.Set(step.key, input); err != nil {
				cmd.Printf("  %s\n", errorText(domain.UserMessage(err, err.Error())))
				continue
			}
			break
		}
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func formatTimeout(b domain.BackendSettings) string {
	if b.Timeout <= 0 {
		return "none"
	}
	return b.Timeout.String()
}

func timeoutValue(b domain.BackendSettings) string {
	if b.Timeout <= 0 {
		return "0"
	}
	return b.Timeout.String()
}

func formatRate(b domain.BackendSettings) string {
	if b.RateLimit <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(b.RateLimit, 'f', -1, 64) + " req/s"
}
