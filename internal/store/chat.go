package store

import "time"

// ChatMessage is one transcript record. IDs for optimistic records are
// client-generated and unique within the session; the Engine never
// sees them.
type ChatMessage struct {
	ID               string
	Role             string // "user" or "assistant"
	Content          string
	Emotion          string
	EmotionIntensity float64
	Timestamp        time.Time
}

// ChatState backs one chat session with a loaded character
type ChatState struct {
	Loading bool
	Sending bool
	Error   string

	Messages []ChatMessage
	Draft    string
}

// NewChatState returns the initial chat state (loading history)
func NewChatState() ChatState {
	return ChatState{Loading: true}
}

// Chat events

type ChatSetLoading struct{ Loading bool }
type ChatSetSending struct{ Sending bool }
type ChatSetError struct{ Error string }
type ChatSetMessages struct{ Messages []ChatMessage }
type ChatAppendMessage struct{ Message ChatMessage }
type ChatSetDraft struct{ Draft string }

// Apply transitions the chat state. Unrecognized events return the
// state unchanged.
func (s ChatState) Apply(ev Event) ChatState {
	switch ev := ev.(type) {
	case ChatSetLoading:
		s.Loading = ev.Loading
	case ChatSetSending:
		s.Sending = ev.Sending
	case ChatSetError:
		s.Error = ev.Error
	case ChatSetMessages:
		s.Messages = ev.Messages
	case ChatAppendMessage:
		messages := make([]ChatMessage, len(s.Messages), len(s.Messages)+1)
		copy(messages, s.Messages)
		s.Messages = append(messages, ev.Message)
	case ChatSetDraft:
		s.Draft = ev.Draft
	}
	return s
}
