package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleHash_Stable(t *testing.T) {
	first := TitleHash("Ausbildung Elektroniker", "Müller GmbH", "Berlin")
	second := TitleHash("Ausbildung Elektroniker", "Müller GmbH", "Berlin")

	assert.Equal(t, first, second)
	assert.Len(t, first, 16)
}

func TestTitleHash_InsensitiveToNoise(t *testing.T) {
	base := TitleHash("Ausbildung Elektroniker", "Müller GmbH", "Berlin")

	tests := []struct {
		name    string
		title   string
		company string
		city    string
	}{
		{"case", "AUSBILDUNG ELEKTRONIKER", "MÜLLER GMBH", "BERLIN"},
		{"whitespace", "  Ausbildung   Elektroniker ", "Müller  GmbH", " Berlin "},
		{"punctuation", "Ausbildung Elektroniker!", "Müller GmbH.", "Berlin,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, base, TitleHash(tt.title, tt.company, tt.city))
		})
	}
}

func TestTitleHash_StrictAboutCompanyAndCity(t *testing.T) {
	base := TitleHash("Ausbildung Elektroniker", "Müller GmbH", "Berlin")

	assert.NotEqual(t, base, TitleHash("Ausbildung Elektroniker", "Schmidt AG", "Berlin"))
	assert.NotEqual(t, base, TitleHash("Ausbildung Elektroniker", "Müller GmbH", "Hamburg"))
}

func TestURLHash(t *testing.T) {
	first := URLHash("https://example.com/jobs/123")
	second := URLHash(" https://example.com/jobs/123 ")

	assert.Equal(t, first, second)
	assert.Len(t, first, 16)
	assert.NotEqual(t, first, URLHash("https://example.com/jobs/124"))
}
