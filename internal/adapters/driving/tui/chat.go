package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/styles"
)

// transcriptReserve is the number of rows kept for the header, input,
// and status bar around the conversation viewport.
const transcriptReserve = 8

// Chat is the conversational UI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Chat struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the UI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// input is the question entry field.
	input *input.QuestionInput

	// transcript is the scrollable conversation.
	transcript *transcript.Transcript

	// statusbar shows state and keybinding hints.
	statusbar *status.Bar

	// spinner animates while an answer is pending.
	spinner spinner.Model

	// thinking is true while a question is in flight.
	thinking bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the UI has initialised.
	ready bool
}

// Ensure Chat implements tea.Model.
var _ tea.Model = (*Chat)(nil)

// NewChat creates a new chat UI with the given ports.
func NewChat(ports *Ports) (*Chat, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &Chat{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		transcript: transcript.New(s),
		statusbar:  status.NewBar(s, km),
		spinner:    sp,
	}, nil
}

// WithContext sets the context for the chat.
func (c *Chat) WithContext(ctx context.Context) *Chat {
	c.ctx = ctx
	return c
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (c *Chat) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("quaero - Document Chat"),
		c.input.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetDimensions(msg.Width, msg.Height)
		return c, nil

	case tea.KeyMsg:
		return c.handleKeyMsg(msg)

	case messages.AnswerReceived:
		c.handleAnswerReceived(msg)
		return c, c.input.Focus()

	case messages.ErrorOccurred:
		c.err = msg.Err
		c.statusbar.SetState(status.StateError)
		c.statusbar.SetMessage(msg.Err.Error())
		return c, nil

	case messages.Quit:
		return c, tea.Quit

	case spinner.TickMsg:
		if !c.thinking {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		c.transcript.SetThinkingFrame(c.spinner.View())
		return c, cmd
	}

	// Forward remaining messages to the components.
	var cmds []tea.Cmd

	var inputCmd tea.Cmd
	c.input, inputCmd = c.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var transcriptCmd tea.Cmd
	c.transcript, transcriptCmd = c.transcript.Update(msg)
	if transcriptCmd != nil {
		cmds = append(cmds, transcriptCmd)
	}

	return c, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input. Scrolling keys drive the
// transcript; everything else belongs to the input field.
func (c *Chat) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return c, tea.Quit

	case tea.KeyUp:
		c.transcript.ScrollUp()
		return c, nil

	case tea.KeyDown:
		c.transcript.ScrollDown()
		return c, nil

	case tea.KeyPgUp:
		c.transcript.PageUp()
		return c, nil

	case tea.KeyPgDown:
		c.transcript.PageDown()
		return c, nil

	case tea.KeyCtrlL:
		c.transcript.Clear()
		c.statusbar.Clear()
		c.err = nil
		return c, nil

	case tea.KeyEnter:
		return c, c.submit()
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit sends the current question to the assistant.
// One question is in flight at a time.
func (c *Chat) submit() tea.Cmd {
	if c.thinking {
		return nil
	}

	question := strings.TrimSpace(c.input.Value())
	if question == "" {
		return nil
	}

	c.input.Reset()
	c.input.Blur()
	c.thinking = true
	c.err = nil

	c.transcript.Begin(question)
	c.transcript.SetThinkingFrame(c.spinner.View())
	c.statusbar.SetState(status.StateThinking)

	return tea.Batch(c.askQuestion(question), c.spinner.Tick)
}

// askQuestion performs the ask asynchronously.
func (c *Chat) askQuestion(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := c.ports.Assistant.Ask(c.ctx, question, 0)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// handleAnswerReceived folds the answer into the conversation.
func (c *Chat) handleAnswerReceived(msg messages.AnswerReceived) {
	c.thinking = false
	c.transcript.Complete(msg.Answer, msg.Err)

	if msg.Err != nil {
		c.err = msg.Err
		c.statusbar.SetState(status.StateError)
		c.statusbar.SetMessage(msg.Err.Error())
		return
	}

	c.err = nil
	c.statusbar.SetState(status.StateReady)
	c.statusbar.SetTurnCount(len(c.transcript.Turns()))
}

// View implements tea.Model.
// It renders the chat as a string.
func (c *Chat) View() string {
	if !c.ready {
		return "Initialising..."
	}

	header := c.styles.Title.Render("Quaero Chat")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		c.transcript.View(),
		"",
		c.input.View(),
		c.statusbar.View(),
	)
}

// Run starts the chat UI.
func (c *Chat) Run() error {
	p := tea.NewProgram(c, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Question returns the current input value.
func (c *Chat) Question() string {
	return c.input.Value()
}

// Turns returns the conversation so far.
func (c *Chat) Turns() []transcript.Turn {
	return c.transcript.Turns()
}

// Thinking returns whether a question is in flight.
func (c *Chat) Thinking() bool {
	return c.thinking
}

// Err returns the last error that occurred.
func (c *Chat) Err() error {
	return c.err
}

// Ready returns whether the UI has been initialised.
func (c *Chat) Ready() bool {
	return c.ready
}

// SetDimensions sets the terminal dimensions.
func (c *Chat) SetDimensions(width, height int) {
	c.width = width
	c.height = height
	c.ready = true

	c.input.SetWidth(width)
	c.statusbar.SetWidth(width)

	transcriptHeight := height - transcriptReserve
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	c.transcript.SetDimensions(width, transcriptHeight)
}
