package cli

import (
	"bufio"
	"errors"

	"github.com/spf13/cobra"
)

// advisoryPrompt asks for a country when none was given on the
// command line.
const advisoryPrompt = "Enter country name: "

var advisoryCmd = &cobra.Command{
	Use:   "advisory [country]",
	Short: "Show a travel advisory for a country",
	Long: `Generates a rule-based travel advisory from the stored weather report
for a country. Works without any LLM credentials.

Run 'quaero forecast <country>' first to fetch current weather data.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdvisory,
}

func init() {
	rootCmd.AddCommand(advisoryCmd)
}

func runAdvisory(cmd *cobra.Command, args []string) error {
	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	var country string
	if len(args) > 0 {
		country = args[0]
	} else {
		reader := bufio.NewReader(cmd.InOrStdin())
		country, _ = promptLine(cmd, reader, advisoryPrompt)
	}
	if country == "" {
		return errors.New("country name is required")
	}

	advisory, err := advisorService.Advisory(country)
	if err != nil {
		return err
	}

	cmd.Println(advisory)
	return nil
}
