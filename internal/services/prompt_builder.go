package services

import (
	"fmt"
	"strings"

	"storynarrator/internal/models"
)

// BuildPrompt renders the instruction sent to the model. It is deterministic
// and passes keyword text through untouched.
func BuildPrompt(req models.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Generate a ")
	if req.Length != nil {
		b.WriteString(strings.ToLower(string(*req.Length)))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "story in %s about %s.", req.Language, req.Interest)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, " Include keywords: %s.", strings.Join(req.Keywords, ", "))
	}
	return b.String()
}

// ParseKeywords splits the comma-separated keyword field, dropping blanks.
func ParseKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
