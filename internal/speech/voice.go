// Package speech narrates stories through a text-to-speech engine.
package speech

import "strings"

// Voice is one synthesis voice as enumerated by the engine.
type Voice struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// SelectVoice returns the first voice, in enumeration order, that declares a
// language tag containing language (case-insensitive). It stops at the first
// match. Note that tags are usually locale codes ("te", "ta-IN") so a display
// name like "Telugu" only matches engines that spell languages out.
func SelectVoice(voices []Voice, language string) (Voice, bool) {
	want := strings.ToLower(strings.TrimSpace(language))
	if want == "" {
		return Voice{}, false
	}
	for _, v := range voices {
		for _, tag := range v.Languages {
			if strings.Contains(strings.ToLower(tag), want) {
				return v, true
			}
		}
	}
	return Voice{}, false
}
