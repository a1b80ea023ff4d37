package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"storynarrator/internal/assets"
	"storynarrator/internal/models"
)

var (
	ErrInvalidLanguage = errors.New("unsupported language")
	ErrInvalidInterest = errors.New("unsupported interest")
)

type CatalogService interface {
	Startup(ctx context.Context) error
	Catalog() models.Catalog
	ListModelGroups() []models.LLMModelGroup
	GetModel(modelKey string) (*models.LLMModel, error)
	HasProvider(providerID string) bool
	ValidateLanguage(language string) error
	ValidateRequest(req models.GenerationRequest) error
}

type catalogService struct {
	data []byte
	ctx  context.Context

	mu            sync.RWMutex
	languages     []string
	interests     []string
	providerOrder []string
	providerNames map[string]string
	models        map[string]*catalogModel
}

type catalogModel struct {
	Key         string
	ProviderID  string
	Provider    string
	DisplayName string
	APIName     string
	Images      bool
}

type rawCatalogFile struct {
	Languages []string      `json:"languages"`
	Interests []string      `json:"interests"`
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Images      bool   `json:"images,omitempty"`
}

// NewCatalogService reads the embedded catalog unless data is given.
func NewCatalogService(data []byte) CatalogService {
	if data == nil {
		data = assets.CatalogData
	}
	return &catalogService{
		data:          data,
		models:        make(map[string]*catalogModel),
		providerNames: make(map[string]string),
	}
}

func (s *catalogService) Startup(ctx context.Context) error {
	s.ctx = ctx

	var parsed rawCatalogFile
	if err := json.Unmarshal(s.data, &parsed); err != nil {
		return fmt.Errorf("parse catalog asset: %w", err)
	}
	if len(parsed.Languages) == 0 || len(parsed.Interests) == 0 {
		return fmt.Errorf("catalog asset must list languages and interests")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.languages = trimAll(parsed.Languages)
	s.interests = trimAll(parsed.Interests)
	s.providerOrder = make([]string, 0, len(parsed.Providers))
	for _, provider := range parsed.Providers {
		providerID := strings.TrimSpace(provider.ID)
		if providerID == "" {
			continue
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		s.providerNames[providerID] = providerName
		s.providerOrder = append(s.providerOrder, providerID)
		for _, mdl := range provider.Models {
			key := computeModelKey(providerID, mdl.APIName)
			s.models[key] = &catalogModel{
				Key:         key,
				ProviderID:  providerID,
				Provider:    providerName,
				DisplayName: strings.TrimSpace(mdl.DisplayName),
				APIName:     strings.TrimSpace(mdl.APIName),
				Images:      mdl.Images,
			}
		}
	}
	return nil
}

func (s *catalogService) Catalog() models.Catalog {
	s.mu.RLock()
	languages := append([]string(nil), s.languages...)
	interests := append([]string(nil), s.interests...)
	s.mu.RUnlock()

	return models.Catalog{
		Languages: languages,
		Interests: interests,
		Lengths:   models.Lengths(),
		Providers: s.ListModelGroups(),
	}
}

func (s *catalogService) ListModelGroups() []models.LLMModelGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.LLMModelGroup, 0, len(s.providerOrder))
	for _, providerID := range s.providerOrder {
		group := models.LLMModelGroup{
			ProviderID:   providerID,
			ProviderName: s.providerName(providerID),
		}
		var modelsForProvider []models.LLMModel
		for _, mdl := range s.models {
			if mdl.ProviderID != providerID {
				continue
			}
			modelsForProvider = append(modelsForProvider, s.toLLMModel(mdl))
		}
		sort.SliceStable(modelsForProvider, func(i, j int) bool {
			return strings.ToLower(modelsForProvider[i].DisplayName) < strings.ToLower(modelsForProvider[j].DisplayName)
		})
		group.Models = modelsForProvider
		groups = append(groups, group)
	}
	return groups
}

func (s *catalogService) GetModel(modelKey string) (*models.LLMModel, error) {
	modelKey = strings.TrimSpace(modelKey)
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	catalog, ok := s.models[modelKey]
	if !ok {
		return nil, fmt.Errorf("model %s not found", modelKey)
	}
	model := s.toLLMModel(catalog)
	return &model, nil
}

func (s *catalogService) HasProvider(providerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.providerNames[strings.TrimSpace(providerID)]
	return ok
}

func (s *catalogService) ValidateLanguage(language string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !contains(s.languages, language) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, language)
	}
	return nil
}

func (s *catalogService) ValidateRequest(req models.GenerationRequest) error {
	if err := s.ValidateLanguage(req.Language); err != nil {
		return err
	}

	s.mu.RLock()
	known := contains(s.interests, req.Interest)
	s.mu.RUnlock()
	if !known {
		return fmt.Errorf("%w: %q", ErrInvalidInterest, req.Interest)
	}

	if req.Length != nil && !req.Length.Valid() {
		return models.ErrInvalidLength
	}
	return nil
}

func (s *catalogService) providerName(providerID string) string {
	if name, ok := s.providerNames[providerID]; ok && strings.TrimSpace(name) != "" {
		return name
	}
	return providerID
}

func (s *catalogService) toLLMModel(mdl *catalogModel) models.LLMModel {
	return models.LLMModel{
		Key:          mdl.Key,
		DisplayName:  mdl.DisplayName,
		APIName:      mdl.APIName,
		ProviderID:   mdl.ProviderID,
		ProviderName: mdl.Provider,
		Images:       mdl.Images,
	}
}

func computeModelKey(providerID, apiName string) string {
	return strings.TrimSpace(providerID) + "|" + strings.TrimSpace(apiName)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
