package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrMissingAssistant_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAssistant.Error(), "assistant service")
}
