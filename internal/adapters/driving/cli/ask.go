package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// askPrompt is the interactive-loop prompt. The loop ends on "quit"
// (case-insensitive) or end of input.
const askPrompt = "Enter a question or 'quit' to exit: "

var askResults int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Ask a question and get an answer grounded in your indexed documents.

With a question argument, answers once and exits. Without one, enters an
interactive loop that keeps answering until you type 'quit'.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askResults, "results", "r", 0, "Number of chunks to retrieve (0 = configured default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	if len(args) > 0 {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return errors.New("question is empty")
		}
		return askOnce(cmd, question)
	}

	return askLoop(cmd)
}

// askOnce answers a single question and exits.
func askOnce(cmd *cobra.Command, question string) error {
	answer, err := assistantService.Ask(cmd.Context(), question, askResults)
	if err != nil {
		return llmGuidance(err)
	}

	cmd.Println(answer)
	return nil
}

// askLoop reads questions until "quit" or end of input. Missing LLM
// credentials end the loop with the remediation error; per-question
// pipeline failures come back as fixed answer strings and the loop
// continues.
func askLoop(cmd *cobra.Command) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	for {
		question, ok := promptLine(cmd, reader, askPrompt)
		if !ok {
			return nil
		}
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "quit") {
			cmd.Println("Goodbye!")
			return nil
		}

		answer, err := assistantService.Ask(cmd.Context(), question, askResults)
		if err != nil {
			return llmGuidance(err)
		}

		cmd.Println()
		cmd.Println(answer)
		cmd.Println()
	}
}

// promptLine writes the prompt and reads one trimmed line. ok is false
// once input is exhausted.
func promptLine(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, bool) {
	cmd.Print(prompt)
	line, err := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		return line, line != ""
	}
	return line, true
}

// llmGuidance attaches remediation instructions to the missing-provider
// sentinel. Other errors pass through unchanged.
func llmGuidance(err error) error {
	if errors.Is(err, domain.ErrNoProviderConfigured) {
		return fmt.Errorf(
			"%w: No valid API key found. Please set one of: OPENAI_API_KEY, GROQ_API_KEY, or GOOGLE_API_KEY in your .env file",
			err)
	}
	return err
}
