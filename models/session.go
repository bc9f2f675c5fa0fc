package models

import "time"

// Mode is the conversation mode of a session.
type Mode string

const (
	ModeChat    Mode = "chat"
	ModeBooking Mode = "booking"
)

// Turn roles, replayed verbatim to the LLM collaborator.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of the conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BookingState accumulates the answers of one booking attempt. Fields are
// pointers so "set" is explicit: a zero-valued answer (a 0-hour duration) is
// still set. Completion checks must never rely on truthiness.
type BookingState struct {
	Vehicle               *string    `json:"vehicle,omitempty"`
	Duration              *float64   `json:"duration,omitempty"`
	Datetime              *time.Time `json:"datetime,omitempty"`
	Name                  *string    `json:"name,omitempty"`
	Phone                 *string    `json:"phone,omitempty"`
	ConfirmationRequested bool       `json:"confirmationRequested"`
}

// Complete reports whether every answer has been collected, field by field.
func (b *BookingState) Complete() bool {
	return b.Vehicle != nil && b.Duration != nil && b.Datetime != nil &&
		b.Name != nil && b.Phone != nil
}

// ConversationSession holds everything persisted between turns of one caller.
type ConversationSession struct {
	Mode    Mode          `json:"mode"`
	History []Turn        `json:"history"`
	Booking *BookingState `json:"booking,omitempty"`
}

// NewConversationSession returns a fresh session in chat mode.
func NewConversationSession() *ConversationSession {
	return &ConversationSession{Mode: ModeChat}
}

// AppendTurn records one turn at the end of the history.
func (s *ConversationSession) AppendTurn(role, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content})
}

// LatestUserMessage returns the content of the most recent user turn.
func (s *ConversationSession) LatestUserMessage() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleUser {
			return s.History[i].Content
		}
	}
	return ""
}
