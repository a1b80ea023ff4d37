package services

import (
	"sync"

	"github.com/google/uuid"
)

// StorySession is the in-memory history of one user session. It is append
// only until Reset and is never shared between sessions.
type StorySession struct {
	id string

	mu      sync.Mutex
	stories []string
}

func NewStorySession() *StorySession {
	return &StorySession{id: uuid.NewString()}
}

func (s *StorySession) ID() string {
	return s.id
}

// Append records a generated story verbatim.
func (s *StorySession) Append(story string) {
	s.mu.Lock()
	s.stories = append(s.stories, story)
	s.mu.Unlock()
}

// List returns a snapshot of the stories in insertion order.
func (s *StorySession) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.stories))
	copy(out, s.stories)
	return out
}

func (s *StorySession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stories)
}

// Reset drops the history; called when the session ends.
func (s *StorySession) Reset() {
	s.mu.Lock()
	s.stories = nil
	s.mu.Unlock()
}
