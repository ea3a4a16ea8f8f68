package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/messages"
)

// typeKeys sends each rune as a key press to the chat.
func typeKeys(chat *Chat, text string) {
	for _, r := range text {
		chat.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewChat_Success(t *testing.T) {
	ports := newTestPorts()

	chat, err := NewChat(ports)

	require.NoError(t, err)
	require.NotNil(t, chat)
	assert.False(t, chat.Thinking())
	assert.Empty(t, chat.Turns())
}

func TestNewChat_InvalidPorts(t *testing.T) {
	ports := &Ports{}

	chat, err := NewChat(ports)

	assert.Error(t, err)
	assert.Nil(t, chat)
}

func TestChat_WithContext(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := chat.WithContext(ctx)

	assert.Equal(t, chat, result)
}

func TestChat_Init(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	cmd := chat.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestChat_Update_WindowSize(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := chat.Update(msg)

	assert.Equal(t, chat, model)
	assert.Nil(t, cmd)
	assert.True(t, chat.Ready())
}

func TestChat_Update_Typing(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	typeKeys(chat, "what is the weather")

	assert.Equal(t, "what is the weather", chat.Question())
}

func TestChat_Update_EnterSubmitsQuestion(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	typeKeys(chat, "hello")

	model, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, chat, model)
	assert.NotNil(t, cmd)
	assert.True(t, chat.Thinking())
	assert.Empty(t, chat.Question())

	turns := chat.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "hello", turns[0].Question)
	assert.False(t, turns[0].Done)
}

func TestChat_Update_EnterEmptyInput(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, chat.Thinking())
	assert.Empty(t, chat.Turns())
}

func TestChat_Update_EnterWhileThinking(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	typeKeys(chat, "first")
	chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	typeKeys(chat, "second")
	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Second question is not submitted while the first is in flight
	assert.Nil(t, cmd)
	assert.Len(t, chat.Turns(), 1)
}

func TestChat_Update_AnswerReceived(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	typeKeys(chat, "what is the weather in Paris?")
	chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg := messages.AnswerReceived{
		Question: "what is the weather in Paris?",
		Answer:   "Sunny, around 25 degrees.",
	}
	model, cmd := chat.Update(msg)

	assert.Equal(t, chat, model)
	assert.NotNil(t, cmd) // input focus command
	assert.False(t, chat.Thinking())
	assert.NoError(t, chat.Err())

	turns := chat.Turns()
	require.Len(t, turns, 1)
	assert.True(t, turns[0].Done)
	assert.Equal(t, "Sunny, around 25 degrees.", turns[0].Answer)
}

func TestChat_Update_AnswerReceived_WithError(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	typeKeys(chat, "hello")
	chat.Update(tea.KeyMsg{Type: tea.KeyEnter})

	askErr := errors.New("provider unavailable")
	chat.Update(messages.AnswerReceived{Question: "hello", Err: askErr})

	assert.False(t, chat.Thinking())
	assert.Error(t, chat.Err())

	turns := chat.Turns()
	require.Len(t, turns, 1)
	assert.True(t, turns[0].Done)
	assert.Equal(t, askErr, turns[0].Err)
}

func TestChat_Update_EscQuits(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChat_Update_CtrlCQuits(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	_, cmd := chat.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChat_Update_QuitMessage(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	_, cmd := chat.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestChat_Update_CtrlLClearsConversation(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	typeKeys(chat, "hello")
	chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat.Update(messages.AnswerReceived{Question: "hello", Answer: "hi"})
	require.Len(t, chat.Turns(), 1)

	chat.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Empty(t, chat.Turns())
	assert.NoError(t, chat.Err())
}

func TestChat_Update_ErrorOccurred(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	chat.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Error(t, chat.Err())
}

func TestChat_Update_ScrollKeys(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	chat.SetDimensions(80, 24)

	for _, keyType := range []tea.KeyType{
		tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
	} {
		_, cmd := chat.Update(tea.KeyMsg{Type: keyType})
		assert.Nil(t, cmd)
	}
}

func TestChat_View_NotReady(t *testing.T) {
	chat, _ := NewChat(newTestPorts())

	view := chat.View()

	assert.Contains(t, view, "Initialising")
}

func TestChat_View_RendersConversation(t *testing.T) {
	chat, _ := NewChat(newTestPorts())
	chat.SetDimensions(80, 24)

	typeKeys(chat, "hello")
	chat.Update(tea.KeyMsg{Type: tea.KeyEnter})
	chat.Update(messages.AnswerReceived{Question: "hello", Answer: "hi there"})

	view := chat.View()

	assert.Contains(t, view, "Quaero Chat")
	assert.Contains(t, view, "hello")
	assert.Contains(t, view, "hi there")
}

func TestChat_AskUsesAssistant(t *testing.T) {
	var gotQuestion string
	ports := &Ports{
		Assistant: &MockAssistant{
			AskFunc: func(_ context.Context, question string, _ int) (string, error) {
				gotQuestion = question
				return "an answer", nil
			},
		},
	}
	chat, err := NewChat(ports)
	require.NoError(t, err)

	cmd := chat.askQuestion("why is the sky blue?")
	msg := cmd()

	answer, ok := msg.(messages.AnswerReceived)
	require.True(t, ok)
	assert.Equal(t, "why is the sky blue?", gotQuestion)
	assert.Equal(t, "an answer", answer.Answer)
	assert.NoError(t, answer.Err)
}
