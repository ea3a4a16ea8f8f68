// Package messages defines Bubbletea message types for the chat UI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// QuestionSubmitted is sent when the user submits a question.
type QuestionSubmitted struct {
	Question string
}

// AnswerReceived carries the assistant's answer back to the model.
type AnswerReceived struct {
	Question string
	Answer   string
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
