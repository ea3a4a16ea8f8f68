// Package transcript provides the scrollable conversation component for
// the chat UI.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/tui/styles"
)

const welcomeText = "Ask a question about the documents you have ingested."

// Turn is one question/answer exchange in the conversation.
// A turn with Done == false is still waiting for its answer.
type Turn struct {
	Question string
	Answer   string
	Err      error
	Done     bool
}

// Transcript renders the conversation in a scrollable viewport.
type Transcript struct {
	viewport viewport.Model
	styles   *styles.Styles
	turns    []Turn

	// thinkingFrame is the current spinner frame rendered for a
	// pending turn.
	thinkingFrame string

	width  int
	height int
}

// New creates a new transcript component.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	vp := viewport.New(80, 14)

	return &Transcript{
		viewport: vp,
		styles:   s,
		width:    80,
		height:   14,
	}
}

// Init initialises the transcript.
func (t *Transcript) Init() tea.Cmd {
	return nil
}

// Update forwards non-key messages to the viewport. Key handling is the
// chat model's job so that typing never scrolls the conversation.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return t, nil
	}

	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the transcript.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// Begin appends a pending turn for the given question and scrolls to it.
func (t *Transcript) Begin(question string) {
	t.turns = append(t.turns, Turn{Question: question})
	t.render()
	t.viewport.GotoBottom()
}

// Complete fills in the answer of the most recent pending turn and
// scrolls to it. It is a no-op when no turn is pending.
func (t *Transcript) Complete(answer string, err error) {
	for i := len(t.turns) - 1; i >= 0; i-- {
		if !t.turns[i].Done {
			t.turns[i].Answer = answer
			t.turns[i].Err = err
			t.turns[i].Done = true
			break
		}
	}
	t.render()
	t.viewport.GotoBottom()
}

// SetThinkingFrame updates the spinner frame shown for a pending turn.
// The scroll position is preserved so ticking does not fight the user.
func (t *Transcript) SetThinkingFrame(frame string) {
	t.thinkingFrame = frame
	t.render()
}

// Clear removes all turns from the conversation.
func (t *Transcript) Clear() {
	t.turns = nil
	t.thinkingFrame = ""
	t.render()
	t.viewport.GotoTop()
}

// Turns returns the conversation so far.
func (t *Transcript) Turns() []Turn {
	return t.turns
}

// ScrollUp scrolls the conversation up one line.
func (t *Transcript) ScrollUp() {
	t.viewport.LineUp(1)
}

// ScrollDown scrolls the conversation down one line.
func (t *Transcript) ScrollDown() {
	t.viewport.LineDown(1)
}

// PageUp scrolls the conversation up one page.
func (t *Transcript) PageUp() {
	t.viewport.ViewUp()
}

// PageDown scrolls the conversation down one page.
func (t *Transcript) PageDown() {
	t.viewport.ViewDown()
}

// AtBottom reports whether the viewport is scrolled to the bottom.
func (t *Transcript) AtBottom() bool {
	return t.viewport.AtBottom()
}

// SetDimensions sets the transcript dimensions.
func (t *Transcript) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.viewport.Width = width
	t.viewport.Height = height
	t.render()
}

// Width returns the current width.
func (t *Transcript) Width() int {
	return t.width
}

// Height returns the current height.
func (t *Transcript) Height() int {
	return t.height
}

// render rebuilds the viewport content from the turns.
func (t *Transcript) render() {
	wrap := lipgloss.NewStyle().Width(t.width)

	if len(t.turns) == 0 {
		t.viewport.SetContent(wrap.Render(t.styles.Muted.Render(welcomeText)))
		return
	}

	blocks := make([]string, 0, len(t.turns))
	for _, turn := range t.turns {
		blocks = append(blocks, wrap.Render(t.renderTurn(turn)))
	}

	t.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

// renderTurn renders a single exchange.
func (t *Transcript) renderTurn(turn Turn) string {
	question := t.styles.UserLabel.Render("You: ") +
		t.styles.Normal.Render(turn.Question)

	label := t.styles.AssistantLabel.Render("Quaero: ")

	var answer string
	switch {
	case !turn.Done:
		frame := t.thinkingFrame
		if frame != "" {
			frame += " "
		}
		answer = label + frame + t.styles.Muted.Render("Thinking...")
	case turn.Err != nil:
		answer = label + t.styles.Error.Render("Error: "+turn.Err.Error())
	default:
		answer = label + t.styles.Normal.Render(turn.Answer)
	}

	return question + "\n" + answer
}
