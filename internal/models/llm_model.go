package models

// LLMModel represents a single language model option exposed to the UI.
type LLMModel struct {
	Key          string `json:"key"`
	DisplayName  string `json:"displayName"`
	APIName      string `json:"apiName"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	Images       bool   `json:"images,omitempty"`
}

// LLMModelGroup groups models by their provider for presentation.
type LLMModelGroup struct {
	ProviderID   string     `json:"providerId"`
	ProviderName string     `json:"providerName"`
	Models       []LLMModel `json:"models"`
}

// Catalog is the set of choices the UI offers for a story.
type Catalog struct {
	Languages []string        `json:"languages"`
	Interests []string        `json:"interests"`
	Lengths   []Length        `json:"lengths"`
	Providers []LLMModelGroup `json:"providers"`
}
