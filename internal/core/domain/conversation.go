package domain

import (
	"strings"
	"time"
)

// Role identifies who authored a conversation message.
type Role string

const (
	// RoleUser marks a question typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks an answer or error produced for the user.
	RoleAssistant Role = "assistant"
)

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Fixed assistant texts.
const (
	// NoResultsNotice is shown when the backend answers with an empty result list.
	NoResultsNotice = "No results found for your query."

	// answerSeparator joins multiple results into one assistant message.
	answerSeparator = "\n\n"

	// timestampLayout is the display format of message timestamps.
	timestampLayout = "15:04"
)

// DefaultTopK is the number of passages requested per question.
const DefaultTopK = 5

// ConversationMessage is one immutable entry in the conversation log.
type ConversationMessage struct {
	// Role is the author of the message.
	Role Role

	// Content is the message text.
	Content string

	// Timestamp is the display time the message was created (HH:MM).
	Timestamp string
}

// NewConversationMessage creates a message stamped with the given time.
func NewConversationMessage(role Role, content string, at time.Time) ConversationMessage {
	return ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: FormatTimestamp(at),
	}
}

// ConversationState is a snapshot of the query workflow.
type ConversationState struct {
	// Messages is the conversation log in display order.
	Messages []ConversationMessage

	// Pending is true while a question is awaiting its answer.
	Pending bool
}

// QueryAnswer is the successful payload of a search request.
type QueryAnswer struct {
	Results []string `json:"results"`
}

// FormatTimestamp renders t as a message timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// FormatAnswer renders search results as the content of an assistant message.
func FormatAnswer(results []string) string {
	if len(results) == 0 {
		return NoResultsNotice
	}
	return strings.Join(results, answerSeparator)
}

// FormatQueryFailure renders a failed search as the content of an assistant message.
func FormatQueryFailure(err error) string {
	return "Error: " + UserMessage(err) + ". Please check that the backend is running."
}
