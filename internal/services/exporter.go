package services

import (
	"fmt"
	"os"
	"path/filepath"

	"storynarrator/internal/models"
	"storynarrator/internal/utils"
)

const StoryMimeType = "text/plain"

// BuildDownload names the story file after its language and interest. Two
// stories with the same pair get the same filename.
func BuildDownload(story, language, interest string) models.DownloadArtifact {
	return models.DownloadArtifact{
		Filename: fmt.Sprintf("%s_%s_story.txt", language, interest),
		Content:  story,
		MimeType: StoryMimeType,
	}
}

// WriteArtifact stores the artifact under dir using its own filename and
// returns the written path.
func WriteArtifact(dir string, artifact models.DownloadArtifact) (string, error) {
	if !utils.DirectoryExists(dir) {
		return "", fmt.Errorf("directory does not exist: %s", dir)
	}
	path := filepath.Join(dir, artifact.Filename)
	if err := WriteArtifactTo(path, artifact); err != nil {
		return "", err
	}
	return path, nil
}

// WriteArtifactTo stores the artifact content at path, replacing any file there.
func WriteArtifactTo(path string, artifact models.DownloadArtifact) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	if err := os.WriteFile(path, []byte(artifact.Content), 0644); err != nil {
		return fmt.Errorf("write story file: %w", err)
	}
	return nil
}
