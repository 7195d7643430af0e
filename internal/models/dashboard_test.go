package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePercentage(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"middle", 78, false},
		{"full", 100, false},
		{"negative", -0.1, true},
		{"over", 100.5, true},
		{"NaN", math.NaN(), true},
		{"Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePercentage(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPercentageOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMetric_Validate(t *testing.T) {
	valid := Metric{
		Label:      "Revenue",
		Value:      "$12,400",
		Percentage: 78,
		Trend:      TrendUp,
		ChangeText: "+4% since last week",
		ColorTag:   ColorBlue,
	}
	assert.NoError(t, valid.Validate())

	noLabel := valid
	noLabel.Label = ""
	assert.ErrorIs(t, noLabel.Validate(), ErrEmptyLabel)

	badPct := valid
	badPct.Percentage = 120
	assert.ErrorIs(t, badPct.Validate(), ErrPercentageOutOfRange)

	badTrend := valid
	badTrend.Trend = "sideways"
	assert.ErrorIs(t, badTrend.Validate(), ErrInvalidTrend)

	badColor := valid
	badColor.ColorTag = "purple"
	assert.ErrorIs(t, badColor.Validate(), ErrInvalidColor)
}

func TestRating_Validate(t *testing.T) {
	assert.NoError(t, Rating{Stars: 5, Percentage: 45}.Validate())
	assert.NoError(t, Rating{Stars: 1, Percentage: 0}.Validate())
	assert.ErrorIs(t, Rating{Stars: 0, Percentage: 10}.Validate(), ErrInvalidStars)
	assert.ErrorIs(t, Rating{Stars: 6, Percentage: 10}.Validate(), ErrInvalidStars)
	assert.ErrorIs(t, Rating{Stars: 3, Percentage: -1}.Validate(), ErrPercentageOutOfRange)
}
