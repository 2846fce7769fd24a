package controller

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lettucelabs/lettucectl/internal/engine"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// Persona is the local user identity a chat session speaks as. The
// UserID must be stable across sessions so the Engine keeps one
// history per user.
type Persona struct {
	UserID      string
	Name        string
	Description string
}

// DefaultPersona returns an anonymous identity with a fresh random id
func DefaultPersona() Persona {
	return Persona{UserID: uuid.NewString(), Name: "User"}
}

// Chat drives one conversation with a loaded character
type Chat struct {
	*screen[store.ChatState]
	gw      Gateway
	slug    string
	persona Persona
}

// NewChat returns a chat controller for the character at slug,
// speaking as persona.
func NewChat(gw Gateway, slug string, persona Persona) *Chat {
	if persona.UserID == "" {
		persona = DefaultPersona()
	}
	return &Chat{
		screen:  newScreen(store.NewChatState()),
		gw:      gw,
		slug:    slug,
		persona: persona,
	}
}

// historyLimit mirrors the original client's page size
const historyLimit = 50

// LoadHistory fetches the transcript for this persona. A failure just
// starts the session fresh; the history endpoint may not exist yet.
func (c *Chat) LoadHistory() {
	defer c.dispatch(store.ChatSetLoading{})

	raw, err := c.gw.ChatHistory(c.ctx, c.slug, c.persona.UserID, historyLimit)
	if err != nil {
		return
	}

	messages := make([]store.ChatMessage, 0, len(raw))
	for _, m := range raw {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		msg := store.ChatMessage{
			ID:      m.ID,
			Role:    m.Role,
			Content: m.Content,
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if ts, err := time.Parse(time.RFC3339, m.Timestamp); err == nil {
			msg.Timestamp = ts
		}
		messages = append(messages, msg)
	}
	c.dispatch(store.ChatSetMessages{Messages: messages})
}

// SetDraft replaces the compose-box text
func (c *Chat) SetDraft(text string) {
	c.dispatch(store.ChatSetDraft{Draft: text})
}

// Send submits the current draft. The user's message is appended to
// the transcript before the call and stays there even if the call
// fails; the reply is appended on success. The failed draft is not
// restored to the compose box.
func (c *Chat) Send() {
	state := c.State()
	text := strings.TrimSpace(state.Draft)
	if text == "" || state.Sending {
		return
	}

	c.dispatch(store.ChatSetDraft{})
	c.dispatch(store.ChatSetError{})
	c.dispatch(store.ChatAppendMessage{Message: store.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   text,
		Timestamp: time.Now(),
	}})
	c.dispatch(store.ChatSetSending{Sending: true})
	defer c.dispatch(store.ChatSetSending{})

	reply, err := c.gw.Chat(c.ctx, c.slug, engine.ChatRequest{
		Message:         text,
		UserID:          c.persona.UserID,
		UserName:        c.persona.Name,
		UserDescription: c.persona.Description,
	})
	if err != nil {
		c.dispatch(store.ChatSetError{Error: engine.Detail(err)})
		return
	}

	msg := store.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   reply.Response,
		Emotion:   reply.Emotion,
		Timestamp: time.Now(),
	}
	if reply.EmotionIntensity != nil {
		msg.EmotionIntensity = *reply.EmotionIntensity
	}
	c.dispatch(store.ChatAppendMessage{Message: msg})
}
