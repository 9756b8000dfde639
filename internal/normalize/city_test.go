package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"table hit", "Berlin, Berlin", "Berlin"},
		{"table hit case insensitive", "MÜNCHEN, BAYERN", "München"},
		{"english variant", "Munich, Bavaria", "München"},
		{"miss with comma", "Castrop-Rauxel, Nordrhein-Westfalen", "Castrop-Rauxel"},
		{"miss without comma", "Heidelberg", "Heidelberg"},
		{"surrounding whitespace", "  Hamburg, Hamburg  ", "Hamburg"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, City(tt.raw))
		})
	}
}
