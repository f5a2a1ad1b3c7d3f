// Command siteassist is a terminal client for the site knowledge-base assistant.
package main

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/siteassist/internal/adapters/driven/backend"
	"github.com/custodia-labs/siteassist/internal/adapters/driven/config/file"
	"github.com/custodia-labs/siteassist/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/siteassist/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/cli"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/core/services"
	"github.com/custodia-labs/siteassist/internal/logger"
	"github.com/custodia-labs/siteassist/internal/normalisers"
	"github.com/custodia-labs/siteassist/internal/normalisers/docx"
	"github.com/custodia-labs/siteassist/internal/normalisers/html"
	"github.com/custodia-labs/siteassist/internal/normalisers/markdown"
	"github.com/custodia-labs/siteassist/internal/normalisers/plaintext"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	var (
		configStore driven.ConfigStore
		watcher     driven.ConfigWatcher
	)
	if opts.Ephemeral {
		configStore = memory.NewConfigStore()
	} else {
		fs, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, err
		}
		configStore = fs
		watcher = fs
		logger.Debug("config: %s", fs.Path())
	}

	settings := services.NewSettingsService(configStore)
	if err := settings.OverrideBackendURL(opts.Backend); err != nil {
		return nil, err
	}

	client := backend.NewClient(settings, backend.WithUserAgent("siteassist/"+version))

	activity, closeActivity := openActivityStore(opts)

	return &cli.Services{
		Chat:          services.NewChatService(client, settings),
		Ingest:        services.NewIngestService(client, activity),
		Description:   services.NewDescriptionService(client, activity),
		Product:       services.NewProductService(client, activity),
		Settings:      settings,
		Activity:      services.NewActivityService(activity),
		Extractor:     newExtractor(),
		ConfigWatcher: watcher,
		Close:         closeActivity,
	}, nil
}

// openActivityStore opens the on-disk activity log. A log that cannot be
// opened is replaced by an in-memory one so commands still run.
func openActivityStore(opts cli.Options) (driven.ActivityStore, func() error) {
	if opts.Ephemeral {
		return memory.NewActivityStore(), nil
	}

	dataDir := ""
	if opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("activity log unavailable, using memory: %v", err)
		return memory.NewActivityStore(), nil
	}
	logger.Debug("activity log: %s", store.Path())
	return store, store.Close
}

// newExtractor registers every local file format --file understands.
func newExtractor() *normalisers.Registry {
	return normalisers.NewRegistry(
		html.New(),
		markdown.New(),
		docx.New(),
		plaintext.New(),
	)
}
