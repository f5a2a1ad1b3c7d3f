// Package cli provides the siteassist command tree.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
	"github.com/custodia-labs/siteassist/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verboseFlag   bool
	backendFlag   string
	configDirFlag string
	ephemeralFlag bool
)

// Services resolved by the bootstrap before any command runs.
var (
	chatService        driving.ChatService
	ingestService      driving.IngestService
	descriptionService driving.DescriptionService
	productService     driving.ProductService
	settingsService    driving.SettingsService
	activityService    driving.ActivityService
	textExtractor      driving.TextExtractor
)

// Options carries the global flags to the bootstrap.
type Options struct {
	Backend   string
	ConfigDir string
	Ephemeral bool
}

// Services is everything the commands call into.
type Services struct {
	Chat        driving.ChatService
	Ingest      driving.IngestService
	Description driving.DescriptionService
	Product     driving.ProductService
	Settings    driving.SettingsService
	Activity    driving.ActivityService

	// Extractor converts --file inputs to text. Nil reads files verbatim.
	Extractor driving.TextExtractor

	// ConfigWatcher is optional; the TUI uses it to follow config edits.
	ConfigWatcher driven.ConfigWatcher

	// Close releases stores opened by the bootstrap. May be nil.
	Close func() error
}

// Bootstrap builds the services once the global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	closer    func() error
	watcher   driven.ConfigWatcher
)

// SetBootstrap registers the function that builds the services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

var rootCmd = &cobra.Command{
	Use:   "siteassist",
	Short: "Terminal client for the site knowledge-base assistant",
	Long: `siteassist talks to a knowledge-base backend that scrapes business
websites, ingests descriptions and product catalogues, and answers customer
questions.

Classify a site's pages, process them into the knowledge base, manage
descriptions and products, and chat with the assistant from the command
line, the interactive TUI, or an MCP client.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "log requests and steps to stderr")
	pf.StringVar(&backendFlag, "backend", "", "backend base URL (overrides config)")
	pf.StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.siteassist)")
	pf.BoolVar(&ephemeralFlag, "ephemeral", false, "keep config and history in memory only")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if bootstrap == nil {
		// Services were injected directly.
		return nil
	}

	svc, err := bootstrap(Options{
		Backend:   backendFlag,
		ConfigDir: configDirFlag,
		Ephemeral: ephemeralFlag,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(svc)
	return nil
}

func teardown() error {
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	return err
}

// SetServices installs the services used by every command.
func SetServices(svc *Services) {
	if svc == nil {
		return
	}
	chatService = svc.Chat
	ingestService = svc.Ingest
	descriptionService = svc.Description
	productService = svc.Product
	settingsService = svc.Settings
	activityService = svc.Activity
	textExtractor = svc.Extractor
	watcher = svc.ConfigWatcher
	closer = svc.Close
}

// errNotConfigured reports a command run without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
