package models

import (
	"errors"
	"strings"
)

// Length is the optional story length selected in the UI.
type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

var ErrInvalidLength = errors.New("length must be 'Short', 'Medium', or 'Long'")

// Lengths lists the selectable lengths in display order.
func Lengths() []Length {
	return []Length{LengthShort, LengthMedium, LengthLong}
}

func (l Length) Valid() bool {
	for _, known := range Lengths() {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLength maps a UI value onto a Length. An empty value means no length was
// chosen and yields nil.
func ParseLength(raw string) (*Length, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, l := range Lengths() {
		if strings.EqualFold(raw, string(l)) {
			length := l
			return &length, nil
		}
	}
	return nil, ErrInvalidLength
}

// GenerationRequest is built fresh for every generate action.
type GenerationRequest struct {
	Language string   `json:"language"`
	Interest string   `json:"interest"`
	Length   *Length  `json:"length,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// GenerationResult holds either the generated text or the failure message.
type GenerationResult struct {
	OK      bool   `json:"ok"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

func Success(text string) GenerationResult {
	return GenerationResult{OK: true, Text: text}
}

func Failure(message string) GenerationResult {
	return GenerationResult{OK: false, Message: message}
}

func (r GenerationResult) IsSuccess() bool {
	return r.OK
}

// DownloadArtifact is the file offered to the user for a generated story.
type DownloadArtifact struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

// StoryOutcome is what a generate action returns to the UI.
// Artifact is nil when the generation failed.
type StoryOutcome struct {
	Prompt   string            `json:"prompt"`
	Result   GenerationResult  `json:"result"`
	Artifact *DownloadArtifact `json:"artifact,omitempty"`
	Images   []string          `json:"images"`
}
