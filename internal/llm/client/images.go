package client

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ImageResult carries the image references and, separately, the reason none
// were produced. Callers that only want the degraded view use Images.
type ImageResult struct {
	References []string
	Err        error
}

// Images returns the references, or an empty slice when the fetch failed.
func (r ImageResult) Images() []string {
	if r.Err != nil || r.References == nil {
		return []string{}
	}
	return r.References
}

type ImageFetcher interface {
	Fetch(ctx context.Context, prompt string) ImageResult
}

// ProcessImageFetcher asks a second ollama model for one image reference per
// line of output.
type ProcessImageFetcher struct {
	runner Runner
	binary string
	model  string
}

func NewProcessImageFetcher(runner Runner, binary, model string) *ProcessImageFetcher {
	if runner == nil {
		runner = NewExecRunner()
	}
	if strings.TrimSpace(binary) == "" {
		binary = "ollama"
	}
	return &ProcessImageFetcher{runner: runner, binary: binary, model: model}
}

func (f *ProcessImageFetcher) Fetch(ctx context.Context, prompt string) ImageResult {
	out, err := f.runner.Run(ctx, Command{
		Name: f.binary,
		Args: []string{"run", f.model, prompt},
	})
	if err != nil {
		log.Printf("images: %s run %s failed: %v", f.binary, f.model, err)
		return ImageResult{References: []string{}, Err: fmt.Errorf("image model %s: %w", f.model, err)}
	}

	text := strings.TrimSpace(out.Stdout)
	if text == "" {
		return ImageResult{References: []string{}}
	}
	return ImageResult{References: strings.Split(text, "\n")}
}
