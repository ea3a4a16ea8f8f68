package driving

// Advisor produces rule-based travel advisories from stored weather
// reports. No LLM is involved; missing data yields a no-data message
// rather than an error.
type Advisor interface {
	// Advisory returns the rendered advisory for a country.
	Advisory(country string) (string, error)

	// Countries returns the countries that currently have a stored
	// weather report.
	Countries() ([]string, error)
}
