package normalize

import (
	"testing"

	"github.com/jonesrussell/gojobs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalary(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantMin  float64
		wantMax  float64
		wantUnit domain.SalaryUnit
		wantNil  bool
	}{
		{"range with euro grouping", "1.100 - 1.300 € pro Monat", 1100, 1300, domain.SalaryMonth, false},
		{"single value repeats", "ab 1.050 € monatlich", 1050, 1050, domain.SalaryMonth, false},
		{"hourly", "14,50 € pro Stunde", 14.5, 14.5, domain.SalaryHour, false},
		{"yearly", "45.000 € im Jahr", 45000, 45000, domain.SalaryYear, false},
		{"decimal with comma", "12,80 - 15,20 €/h", 12.8, 15.2, domain.SalaryHour, false},
		{"no numbers", "Vergütung nach Tarif", 0, 0, domain.SalaryMonth, true},
		{"empty", "", 0, 0, domain.SalaryMonth, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax, gotUnit := Salary(tt.raw)
			assert.Equal(t, tt.wantUnit, gotUnit)
			if tt.wantNil {
				assert.Nil(t, gotMin)
				assert.Nil(t, gotMax)
				return
			}
			require.NotNil(t, gotMin)
			require.NotNil(t, gotMax)
			assert.InDelta(t, tt.wantMin, *gotMin, 0.001)
			assert.InDelta(t, tt.wantMax, *gotMax, 0.001)
		})
	}
}

func TestStructuredSalary(t *testing.T) {
	t.Run("annual figures divide by twelve", func(t *testing.T) {
		gotMin, gotMax, unit := StructuredSalary(36000, 48000)
		require.NotNil(t, gotMin)
		require.NotNil(t, gotMax)
		assert.InDelta(t, 3000, *gotMin, 0.001)
		assert.InDelta(t, 4000, *gotMax, 0.001)
		assert.Equal(t, domain.SalaryMonth, unit)
	})

	t.Run("small figures pass through", func(t *testing.T) {
		gotMin, gotMax, unit := StructuredSalary(450, 450)
		require.NotNil(t, gotMin)
		assert.InDelta(t, 450, *gotMin, 0.001)
		assert.InDelta(t, 450, *gotMax, 0.001)
		assert.Equal(t, domain.SalaryMonth, unit)
	})

	t.Run("zero min repeats max", func(t *testing.T) {
		gotMin, gotMax, _ := StructuredSalary(0, 24000)
		require.NotNil(t, gotMin)
		assert.InDelta(t, 2000, *gotMin, 0.001)
		assert.InDelta(t, 2000, *gotMax, 0.001)
	})

	t.Run("both zero yields nils", func(t *testing.T) {
		gotMin, gotMax, unit := StructuredSalary(0, 0)
		assert.Nil(t, gotMin)
		assert.Nil(t, gotMax)
		assert.Equal(t, domain.SalaryMonth, unit)
	})
}
