package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/mcp"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
}

func TestMCPCmd_HTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")

	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}

func TestMCPCmd_RequiresRetriever(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"mcp"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, mcp.ErrMissingRetriever)
}
