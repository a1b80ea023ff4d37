package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	StoryGenerate  = "events:story:generate"
	StoryGenerated = "events:story:generated"
	StoryFailed    = "events:story:failed"
	StoryImages    = "events:story:images"
	StoryNarration = "events:story:narration"
)

// StoryEvent is the payload pushed to the frontend for story lifecycle changes
type StoryEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "storynarrator/events/session"

// WithSession returns a derived context annotated with the given session key
// so event emitters can automatically scope payloads.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateStoryEvent(eventType EventType, message string) StoryEvent {
	return StoryEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithMetadata returns a copy of the event with the key set in its metadata.
func (e StoryEvent) WithMetadata(key, value string) StoryEvent {
	md := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		md[k] = v
	}
	md[key] = value
	e.Metadata = md
	return e
}

// NewInfo creates an info StoryEvent.
func NewInfo(message string) StoryEvent {
	return CreateStoryEvent(EventInfo, message)
}

// NewWarn creates a warn StoryEvent.
func NewWarn(message string) StoryEvent {
	return CreateStoryEvent(EventWarn, message)
}

// NewError creates an error StoryEvent.
func NewError(message string) StoryEvent {
	return CreateStoryEvent(EventError, message)
}

// NewSuccess creates a success StoryEvent.
func NewSuccess(message string) StoryEvent {
	return CreateStoryEvent(EventSuccess, message)
}
