package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// defaultDocumentsDir matches the demo data layout: the weather report
// files double as the RAG corpus.
const defaultDocumentsDir = "data/weather"

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Index documents for retrieval",
	Long: `Load *.txt files from a directory, chunk and embed them, and add
them to the vector index. Without a directory argument, reads from
` + defaultDocumentsDir + `.

With --watch, keeps running and re-indexes the directory whenever a
document is created, changed, or removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "Watch the directory and re-index on changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}
	if newDocumentSource == nil {
		return errors.New("document source not configured")
	}

	dir := defaultDocumentsDir
	if len(args) > 0 {
		dir = args[0]
	}

	source := newDocumentSource(dir)
	defer source.Close() //nolint:errcheck // Close on exit, nothing to do with the error

	if err := ingestOnce(cmd, source); err != nil {
		return err
	}

	if !ingestWatch {
		return nil
	}
	return watchAndReingest(cmd, source)
}

// ingestOnce loads the directory and indexes everything in it.
func ingestOnce(cmd *cobra.Command, source driven.DocumentSource) error {
	docs, err := source.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		cmd.Printf("No documents found in %s\n", source.Dir())
		return nil
	}

	count, err := retrievalService.Ingest(cmd.Context(), docs)
	if err != nil {
		return fmt.Errorf("ingesting documents: %w", err)
	}

	cmd.Printf("Indexed %d chunks from %d documents in %s\n", count, len(docs), source.Dir())
	return nil
}

// watchAndReingest re-indexes the whole directory on every change
// event. Failures are logged and the watch continues; the loop ends
// when the context is cancelled.
func watchAndReingest(cmd *cobra.Command, source driven.DocumentSource) error {
	changes, err := source.Watch(cmd.Context())
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	cmd.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", source.Dir())

	for change := range changes {
		logger.Info("Document %s: %s", change.Type, change.Path)

		docs, err := source.Load(cmd.Context())
		if err != nil {
			logger.Warn("Reloading documents failed: %v", err)
			continue
		}
		if len(docs) == 0 {
			cmd.Printf("No documents left in %s\n", source.Dir())
			continue
		}

		count, err := retrievalService.Ingest(cmd.Context(), docs)
		if err != nil {
			logger.Warn("Re-indexing failed: %v", err)
			continue
		}
		cmd.Printf("Re-indexed %d chunks from %d documents\n", count, len(docs))
	}

	return nil
}
