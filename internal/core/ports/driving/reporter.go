package driving

import "context"

// Reporter produces LLM-written weather analyses from stored reports.
type Reporter interface {
	// Report loads the stored weather report for a country and asks the
	// LLM for a structured analysis of it.
	//
	// Like Assistant.Ask, pipeline failures are converted to fixed
	// user-facing messages; only context cancellation returns an error.
	Report(ctx context.Context, country string) (string, error)
}
