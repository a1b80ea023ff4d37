package client

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImageFetcher_SplitsLines(t *testing.T) {
	f := NewProcessImageFetcher(helperArgsRunner{helperRunner(t)}, os.Args[0], "images")

	res := f.Fetch(context.Background(), "Generate a story in English about space.")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"https://img/1.png", "https://img/2.png"}, res.Images())
}

func TestProcessImageFetcher_FailureIsEmpty(t *testing.T) {
	f := NewProcessImageFetcher(helperArgsRunner{helperRunner(t)}, os.Args[0], "fail")

	res := f.Fetch(context.Background(), "prompt")
	assert.Error(t, res.Err)
	assert.NotNil(t, res.Images())
	assert.Empty(t, res.Images())
}

func TestProcessImageFetcher_UsesImageModel(t *testing.T) {
	runner := &fakeRunner{err: errors.New("boom")}
	f := NewProcessImageFetcher(runner, "", "image_model")

	res := f.Fetch(context.Background(), "prompt")
	assert.Empty(t, res.Images())
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "ollama", runner.calls[0].Name)
	assert.Equal(t, []string{"run", "image_model", "prompt"}, runner.calls[0].Args)
}

func TestProcessImageFetcher_EmptyOutput(t *testing.T) {
	runner := &fakeRunner{out: Output{Stdout: "\n  \n"}}

	res := NewProcessImageFetcher(runner, "ollama", "image_model").Fetch(context.Background(), "prompt")
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Images())
}

func TestImageResult_ImagesHidesPartialOutputOnError(t *testing.T) {
	res := ImageResult{References: []string{"a"}, Err: errors.New("late failure")}
	assert.Empty(t, res.Images())
}
