// Command quaero answers questions about indexed documents with
// retrieval-augmented generation and turns stored weather reports into
// travel advisories.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/quaero-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/geocode/nominatim"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/storage/weatherfile"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driven/weather/openweather"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/quaero-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/services"
	"github.com/custodia-labs/quaero-cli/internal/logger"
	"github.com/custodia-labs/quaero-cli/internal/postprocessors"
)

// Build information, set at link time by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Flags parse during Execute; peek at the verbose flag early so
	// wiring warnings are visible too.
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			logger.SetVerbose(true)
		}
	}

	// .env is optional; explicit environment always wins.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settings.ApplyEnv(os.Getenv)

	promptStore, err := configfile.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	reportStore, err := weatherfile.NewReportStore(settings.Weather.DataDir)
	if err != nil {
		return fmt.Errorf("opening weather report store: %w", err)
	}

	deps := cli.Dependencies{
		Advisor:  services.NewAdvisorService(reportStore),
		Settings: settingsService,
		Reports:  reportStore,
		DocumentSource: func(dir string) driven.DocumentSource {
			return filesystem.New(dir)
		},
	}

	// AI services. An unreachable embedding provider disables indexing
	// and retrieval; a missing LLM credential disables answer generation.
	// Either way the rest of the command tree stays usable so `quaero
	// settings` can repair the configuration.
	aiResult, err := ai.Init(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		aiResult = &ai.InitResult{}
	}
	defer aiResult.Close()
	for _, warning := range aiResult.Warnings {
		logger.Warn("%s", warning)
	}

	deps.Reporter = services.NewReporterService(reportStore, aiResult.LLMService, promptStore)

	if aiResult.EmbeddingService != nil {
		pipeline, err := postprocessors.DefaultPipeline(settings.Chunking)
		if err != nil {
			return fmt.Errorf("building processing pipeline: %w", err)
		}

		store, err := sqlite.NewStore(settings.Index.Path, settings.Index.Collection)
		if err != nil {
			return fmt.Errorf("opening vector store: %w", err)
		}
		defer store.Close()

		retriever := services.NewRetrievalService(pipeline, aiResult.EmbeddingService, store, 0)
		deps.Retriever = retriever
		deps.Assistant = services.NewAssistantService(
			retriever, aiResult.LLMService, promptStore, settings.Retrieval.Results)
	}

	weather, err := openweather.NewClient(openweather.Config{APIKey: settings.Weather.APIKey})
	if err != nil {
		logger.Warn("Forecast disabled: %v", err)
	} else {
		deps.Forecast = services.NewForecastService(
			weather, nominatim.NewClient(nominatim.Config{}), reportStore, settings.Weather)
	}

	cli.SetDependencies(deps)
	cli.SetVersion(version, commit, date)

	return cli.ExecuteContext(ctx)
}
