package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_LimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")

	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestSearchCmd_JSONFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("json")

	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_PrintsResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "sunny weather"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "[1] distance 0.1200")
	assert.Contains(t, buf.String(), "Source: france.txt")
	assert.Contains(t, buf.String(), "Weather in Paris is sunny.")
}

func TestSearchCmd_PassesQueryAndLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockRetriever{}
	retrievalService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-n", "2", "rain"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchLimit = domain.DefaultSearchResults
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "rain", mock.lastQuery)
	assert.Equal(t, 2, mock.lastK)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "sunny"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"Text"`)
	assert.Contains(t, buf.String(), `"Distance"`)
	assert.Contains(t, buf.String(), "Weather in Paris is sunny.")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	retrievalService = &mockRetriever{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "nothing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	retrievalService = &mockRetriever{err: errors.New("index unavailable")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval service not configured")
}

func TestSnippet_ShortTextUnchanged(t *testing.T) {
	text := "short chunk"

	assert.Equal(t, text, snippet(text))
}

func TestSnippet_LongTextTruncated(t *testing.T) {
	text := strings.Repeat("a", searchSnippetLength+50)

	result := snippet(text)

	assert.Len(t, []rune(result), searchSnippetLength+3)
	assert.True(t, strings.HasSuffix(result, "..."))
}

func TestSnippet_MultibyteSafe(t *testing.T) {
	text := strings.Repeat("ü", searchSnippetLength+10)

	result := snippet(text)

	assert.Equal(t, strings.Repeat("ü", searchSnippetLength)+"...", result)
}
