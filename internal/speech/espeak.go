package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"storynarrator/internal/llm/client"
)

// EspeakEngine drives the espeak-ng command line synthesizer.
type EspeakEngine struct {
	runner client.Runner
	binary string

	mu    sync.Mutex
	voice string
}

func NewEspeakEngine(runner client.Runner, binary string) *EspeakEngine {
	if runner == nil {
		runner = client.NewExecRunner()
	}
	if strings.TrimSpace(binary) == "" {
		binary = "espeak-ng"
	}
	return &EspeakEngine{runner: runner, binary: binary}
}

func (e *EspeakEngine) Voices(ctx context.Context) ([]Voice, error) {
	out, err := e.runner.Run(ctx, client.Command{Name: e.binary, Args: []string{"--voices"}})
	if err != nil {
		return nil, fmt.Errorf("%s --voices: %w", e.binary, commandError(out, err))
	}
	return parseEspeakVoices(out.Stdout), nil
}

func (e *EspeakEngine) SetVoice(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("voice id is required")
	}
	e.mu.Lock()
	e.voice = id
	e.mu.Unlock()
	return nil
}

func (e *EspeakEngine) ResetVoice() {
	e.mu.Lock()
	e.voice = ""
	e.mu.Unlock()
}

// Voice returns the selected voice id; empty means the espeak default.
func (e *EspeakEngine) Voice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voice
}

// Say feeds text on stdin so story content is never parsed as flags.
func (e *EspeakEngine) Say(ctx context.Context, text string) error {
	args := []string{"--stdin"}
	if v := e.Voice(); v != "" {
		args = append(args, "-v", v)
	}
	out, err := e.runner.Run(ctx, client.Command{
		Name:  e.binary,
		Args:  args,
		Stdin: strings.NewReader(text),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", e.binary, commandError(out, err))
	}
	return nil
}

func commandError(out client.Output, err error) error {
	if msg := strings.TrimSpace(out.Stderr); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// parseEspeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US     (en 3)
func parseEspeakVoices(table string) []Voice {
	var voices []Voice
	s := bufio.NewScanner(strings.NewReader(table))
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}
		v := Voice{
			ID:        fields[1],
			Name:      strings.ReplaceAll(fields[3], "_", " "),
			Languages: []string{fields[1]},
		}
		if len(fields) > 5 {
			v.Languages = append(v.Languages, parseOtherLanguages(strings.Join(fields[5:], " "))...)
		}
		voices = append(voices, v)
	}
	return voices
}

// parseOtherLanguages turns "(en 3)(en-gb 2)" into ["en", "en-gb"].
func parseOtherLanguages(s string) []string {
	var langs []string
	for _, group := range strings.FieldsFunc(s, func(r rune) bool { return r == '(' || r == ')' }) {
		parts := strings.Fields(group)
		if len(parts) > 0 {
			langs = append(langs, parts[0])
		}
	}
	return langs
}
