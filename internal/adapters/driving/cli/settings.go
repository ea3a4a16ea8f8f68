package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, chunking, and other options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding [provider] [model]",
	Short: "Configure embedding provider",
	Long: `Configure the embedding provider used for indexing and retrieval.

With arguments, sets the provider (and optionally the model) directly;
the model defaults to the provider's default. Without arguments, picks
interactively.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm [provider] [model]",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used for answer generation.

With arguments, sets the provider (and optionally the model) directly;
the model defaults to the provider's default. Without arguments, picks
interactively.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSettingsLLM,
}

var settingsChunkingCmd = &cobra.Command{
	Use:   "chunking <size> <overlap>",
	Short: "Configure document chunking",
	Long: `Set the chunk size and overlap, in characters. The overlap must be
smaller than the size. Already indexed chunks are not re-chunked.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsChunking,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsChunkingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Embedding settings
	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", describeAPIKey(settings.Embedding.APIKey))
	}
	status := "configured"
	if !settings.Embedding.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	if env := environmentLLMProvider(settings); env != "" {
		cmd.Printf("  Provider: %s (from environment)\n", env)
	} else {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		if settings.LLM.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
		}
		if settings.LLM.Provider.RequiresAPIKey() {
			cmd.Printf("  API Key: %s\n", describeAPIKey(settings.LLM.APIKey))
		}
		status = "configured"
		if !settings.LLM.IsConfigured() {
			status = "not configured"
		}
		cmd.Printf("  Status: %s\n", status)
	}
	cmd.Println()

	// Chunking settings
	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	// Retrieval settings
	cmd.Println("[Retrieval]")
	cmd.Printf("  Results per question: %d\n", settings.Retrieval.Results)
	cmd.Println()

	// Index settings
	cmd.Println("[Index]")
	cmd.Printf("  Collection: %s\n", settings.Index.Collection)
	cmd.Println()

	// Weather settings
	cmd.Println("[Weather]")
	cmd.Printf("  API Key: %s\n", describeAPIKey(settings.Weather.APIKey))
	if len(settings.Weather.Countries) > 0 {
		cmd.Printf("  Countries: %d configured\n", len(settings.Weather.Countries))
	} else {
		cmd.Printf("  Countries: built-in list (%d)\n", len(domain.Countries()))
	}
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'quaero settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Quaero Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Embedding Provider
	cmd.Println("Step 1: Configure Embedding Provider")
	cmd.Println("------------------------------------")
	cmd.Println("Embeddings are required for indexing and retrieval.")
	cmd.Println()

	if err := configureEmbeddingProvider(cmd, reader); err != nil {
		return err
	}

	// Step 2: LLM Provider
	cmd.Println("Step 2: Configure LLM Provider")
	cmd.Println("------------------------------")
	cmd.Println("The LLM writes answers and weather reports. Environment API keys")
	cmd.Println("take precedence over the provider configured here.")
	cmd.Println()

	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	// Step 3: Chunking
	cmd.Println("Step 3: Configure Chunking")
	cmd.Println("--------------------------")
	if err := configureChunking(cmd, reader); err != nil {
		return err
	}

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	if len(args) == 0 {
		return configureEmbeddingProvider(cmd, reader)
	}

	provider := domain.AIProvider(strings.ToLower(args[0]))
	if !providerIn(provider, domain.AllEmbeddingProviders()) {
		return fmt.Errorf("unknown embedding provider %q (available: %s)",
			args[0], providerNames(domain.AllEmbeddingProviders()))
	}

	model := domain.DefaultEmbeddingModels()[provider]
	if len(args) > 1 {
		model = args[1]
	}

	apiKey, err := collectAPIKey(cmd, provider)
	if err != nil {
		return err
	}

	if err := settingsService.SetEmbeddingProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	if len(args) == 0 {
		return configureLLMProvider(cmd, reader)
	}

	provider := domain.AIProvider(strings.ToLower(args[0]))
	if !providerIn(provider, domain.AllLLMProviders()) {
		return fmt.Errorf("unknown LLM provider %q (available: %s)",
			args[0], providerNames(domain.AllLLMProviders()))
	}

	model := domain.DefaultLLMModels()[provider]
	if len(args) > 1 {
		model = args[1]
	}

	apiKey, err := collectAPIKey(cmd, provider)
	if err != nil {
		return err
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsChunking(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid chunk size %q", args[0])
	}
	overlap, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid chunk overlap %q", args[1])
	}

	if err := settingsService.SetChunking(size, overlap); err != nil {
		return fmt.Errorf("failed to configure chunking: %w", err)
	}

	cmd.Printf("Chunking configured: size %d, overlap %d\n", size, overlap)
	return nil
}

//nolint:dupl // Similar to configureLLMProvider but for embeddings - intentional for CLI flow clarity
func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultEmbeddingModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetEmbeddingProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

//nolint:dupl // Similar to configureEmbeddingProvider but for LLM - intentional for CLI flow clarity
func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// configureChunking asks for chunk size and overlap with the current
// values as defaults.
func configureChunking(cmd *cobra.Command, reader *bufio.Reader) error {
	current := settingsService.GetDefaults().Chunking
	if settings, err := settingsService.Get(); err == nil {
		current = settings.Chunking
	}

	cmd.Printf("Enter chunk size [%d]: ", current.Size)
	size := parseChoiceValue(readLine(reader), current.Size)

	cmd.Printf("Enter chunk overlap [%d]: ", current.Overlap)
	overlap := parseChoiceValue(readLine(reader), current.Overlap)

	if err := settingsService.SetChunking(size, overlap); err != nil {
		return fmt.Errorf("failed to configure chunking: %w", err)
	}

	cmd.Printf("Chunking configured: size %d, overlap %d\n\n", size, overlap)
	return nil
}

// collectAPIKey prompts for a key when the provider needs one.
func collectAPIKey(cmd *cobra.Command, provider domain.AIProvider) (string, error) {
	if !provider.RequiresAPIKey() {
		return "", nil
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return "", errors.New("API key is required for this provider")
	}
	return apiKey, nil
}

// environmentLLMProvider names the provider an environment credential
// would select, or "" when no credential is present.
func environmentLLMProvider(settings *domain.Settings) string {
	switch {
	case settings.Credentials.OpenAIKey != "":
		return domain.AIProviderOpenAI.Description()
	case settings.Credentials.GroqKey != "":
		return domain.AIProviderGroq.Description()
	case settings.Credentials.GoogleKey != "":
		return domain.AIProviderGoogle.Description()
	default:
		return ""
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// parseChoiceValue parses a free-form positive integer, falling back to
// the default on anything else.
func parseChoiceValue(input string, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// describeAPIKey renders a key for the settings display.
func describeAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

// providerIn reports whether the provider appears in the list.
func providerIn(provider domain.AIProvider, list []domain.AIProvider) bool {
	for _, p := range list {
		if p == provider {
			return true
		}
	}
	return false
}

// providerNames joins provider identifiers for error messages.
func providerNames(list []domain.AIProvider) string {
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
