package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectVoice_FirstMatchInEnumerationOrder(t *testing.T) {
	voices := []Voice{
		{ID: "fr", Languages: []string{"fr-FR"}},
		{ID: "te-1", Languages: []string{"te-IN"}},
		{ID: "te-2", Languages: []string{"te-XX"}},
	}

	v, ok := SelectVoice(voices, "TE")
	assert.True(t, ok)
	assert.Equal(t, "te-1", v.ID)
}

func TestSelectVoice_LanguageNameAgainstLocaleTags(t *testing.T) {
	voices := []Voice{
		{ID: "fr", Languages: []string{"fr-FR"}},
		{ID: "te-1", Languages: []string{"te-IN"}},
	}

	_, ok := SelectVoice(voices, "Telugu")
	assert.False(t, ok)
}

func TestSelectVoice_CaseInsensitiveContains(t *testing.T) {
	voices := []Voice{
		{ID: "a", Languages: []string{"de"}},
		{ID: "b", Languages: []string{"hi", "Tamil-IN"}},
	}

	v, ok := SelectVoice(voices, "tamil")
	assert.True(t, ok)
	assert.Equal(t, "b", v.ID)
}

func TestSelectVoice_EmptyInputs(t *testing.T) {
	_, ok := SelectVoice(nil, "English")
	assert.False(t, ok)

	_, ok = SelectVoice([]Voice{{ID: "en", Languages: []string{"en"}}}, "  ")
	assert.False(t, ok)
}
