package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// reportPrompt is the interactive-loop prompt. The loop ends on "quit"
// (case-insensitive) or end of input.
const reportPrompt = "Enter a country name or 'quit' to exit: "

var reportCmd = &cobra.Command{
	Use:   "report [country]",
	Short: "Generate an LLM weather report for a country",
	Long: `Loads the stored weather report for a country and asks the LLM for a
structured analysis with recommendations and a travel advisory.

With a country argument, answers once and exits. Without one, enters an
interactive loop that keeps answering until you type 'quit'.

Run 'quaero forecast <country>' first to fetch current weather data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reporterService == nil {
		return errors.New("reporter service not configured")
	}

	if len(args) > 0 {
		return reportOnce(cmd, args[0])
	}

	return reportLoop(cmd)
}

// reportOnce generates a single report and exits.
func reportOnce(cmd *cobra.Command, country string) error {
	report, err := reporterService.Report(cmd.Context(), country)
	if err != nil {
		return llmGuidance(err)
	}

	cmd.Println(report)
	return nil
}

// reportLoop reads country names until "quit" or end of input. Missing
// LLM credentials end the loop with the remediation error; per-country
// failures come back as fixed reply strings and the loop continues.
func reportLoop(cmd *cobra.Command) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	for {
		cmd.Println()
		country, ok := promptLine(cmd, reader, reportPrompt)
		if !ok {
			return nil
		}
		if country == "" {
			continue
		}
		if strings.EqualFold(country, "quit") {
			cmd.Println("Goodbye!")
			return nil
		}

		cmd.Println()
		cmd.Println("Generating weather report...")

		report, err := reporterService.Report(cmd.Context(), country)
		if err != nil {
			return llmGuidance(err)
		}

		cmd.Println()
		cmd.Println(report)
	}
}
