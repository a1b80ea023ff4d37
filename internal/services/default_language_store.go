package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	// DefaultLanguagePath is resolved against the working directory.
	DefaultLanguagePath = "default_language.json"
	FallbackLanguage    = "English"
)

type defaultLanguageDoc struct {
	DefaultLanguage string `json:"default_language"`
}

// LanguageLoad is the effective default language together with the read
// error that was swallowed to produce it, if any. A missing file is not an
// error.
type LanguageLoad struct {
	Language string
	Err      error
}

// DefaultLanguageStore persists the default language as a single JSON
// document. Writes replace the whole file; the last writer wins.
type DefaultLanguageStore struct {
	path string
}

func NewDefaultLanguageStore(path string) *DefaultLanguageStore {
	if strings.TrimSpace(path) == "" {
		path = DefaultLanguagePath
	}
	return &DefaultLanguageStore{path: path}
}

func (s *DefaultLanguageStore) Path() string {
	return s.path
}

// Load never fails: any problem reading the document yields English.
func (s *DefaultLanguageStore) Load() LanguageLoad {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LanguageLoad{Language: FallbackLanguage}
		}
		return LanguageLoad{Language: FallbackLanguage, Err: fmt.Errorf("read %s: %w", s.path, err)}
	}

	var doc defaultLanguageDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return LanguageLoad{Language: FallbackLanguage, Err: fmt.Errorf("parse %s: %w", s.path, err)}
	}
	if strings.TrimSpace(doc.DefaultLanguage) == "" {
		return LanguageLoad{Language: FallbackLanguage}
	}
	return LanguageLoad{Language: doc.DefaultLanguage}
}

func (s *DefaultLanguageStore) LoadDefaultLanguage() string {
	return s.Load().Language
}

func (s *DefaultLanguageStore) SaveDefaultLanguage(language string) error {
	data, err := json.Marshal(defaultLanguageDoc{DefaultLanguage: language})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("save default language: %w", err)
	}
	return nil
}
