package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "esc")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_SendBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Send.Keys()
	assert.Contains(t, keys, "enter")
}

func TestDefaultKeyMap_ScrollUpBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.ScrollUp.Keys()
	assert.Contains(t, keys, "up")
	assert.Contains(t, keys, "pgup")
}

func TestDefaultKeyMap_ScrollDownBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.ScrollDown.Keys()
	assert.Contains(t, keys, "down")
	assert.Contains(t, keys, "pgdown")
}

func TestDefaultKeyMap_ClearBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Clear.Keys()
	assert.Contains(t, keys, "ctrl+l")
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 3)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	assert.Len(t, groups, 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("esc", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("enter", km.Send))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Send))
}
