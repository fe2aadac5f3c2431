package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/leaflet-go/pkg/leaflet/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      Value
		wantText   string
		wantNumber *float64
		wantStatus models.ValueStatus
	}{
		{"number", NumberValue(12.5), "12.5", ptr(12.5), models.StatusOK},
		{"integer number", NumberValue(3), "3", ptr(3.0), models.StatusOK},
		{"decimal comma", TextValue("3,4"), "3,4", ptr(3.4), models.StatusOK},
		{"numeric text with spaces", TextValue("  0.25 "), "0.25", ptr(0.25), models.StatusOK},
		{"not detected", TextValue("n.d."), "n.d.", nil, models.StatusND},
		{"not detected upper case", TextValue(" N.D. "), "N.D.", nil, models.StatusND},
		{"separator", TextValue("-"), "-", nil, models.StatusSeparator},
		{"free text", TextValue("< 0.1"), "< 0.1", nil, models.StatusText},
		{"infinity stays text", TextValue("Inf"), "Inf", nil, models.StatusText},
		{"nan stays text", TextValue("NaN"), "NaN", nil, models.StatusText},
		{"boolean", BoolValue(true), "True", nil, models.StatusText},
		{"date", DateValue(time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)), "2027-03-31 00:00:00", nil, models.StatusText},
		{"date with time", DateValue(time.Date(2027, 3, 31, 8, 30, 0, 0, time.UTC)), "2027-03-31 08:30:00", nil, models.StatusText},
		{"date with microseconds", DateValue(time.Date(2027, 3, 31, 8, 30, 0, 250000000, time.UTC)), "2027-03-31 08:30:00.250000", nil, models.StatusText},
		{"boolean false", BoolValue(false), "False", nil, models.StatusText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			require.NotNil(t, got.Text)
			assert.Equal(t, tt.wantText, *got.Text)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantNumber == nil {
				assert.Nil(t, got.Number)
			} else {
				require.NotNil(t, got.Number)
				assert.InDelta(t, *tt.wantNumber, *got.Number, 1e-12)
			}
		})
	}
}

func TestNormalizeBlank(t *testing.T) {
	for _, v := range []Value{{}, TextValue(""), TextValue("   \t")} {
		got := Normalize(v)
		assert.Nil(t, got.Text)
		assert.Nil(t, got.Number)
		assert.Equal(t, models.StatusBlank, got.Status)
	}
}

func TestNormalizeNumberOnlyWhenOK(t *testing.T) {
	inputs := []Value{
		{}, TextValue("n.d."), TextValue("-"), TextValue("abc"), TextValue("1,2,3"),
		NumberValue(-4), TextValue("7"), BoolValue(false),
	}
	for _, v := range inputs {
		got := Normalize(v)
		assert.Equal(t, got.Status == models.StatusOK, got.Number != nil, "value %+v", v)
	}
}

func TestNormalizeNumberRoundTrip(t *testing.T) {
	for _, n := range []float64{0, 1, -2.5, 0.1, 123456.789, 1e-7} {
		got := Normalize(NumberValue(n))
		require.NotNil(t, got.Number)
		assert.Equal(t, n, *got.Number)

		again := Normalize(TextValue(*got.Text))
		require.NotNil(t, again.Number)
		assert.Equal(t, n, *again.Number)
	}
}

func TestDisplayText(t *testing.T) {
	assert.Nil(t, DisplayText(Value{}))
	assert.Nil(t, DisplayText(TextValue("  ")))
	assert.Equal(t, "mg/L", *DisplayText(TextValue(" mg/L ")))
	assert.Equal(t, "42", *DisplayText(NumberValue(42)))
	assert.Equal(t, "False", *DisplayText(BoolValue(false)))
	assert.Equal(t, "2025-01-15 00:00:00", *DisplayText(DateValue(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))))
}

func ptr(f float64) *float64 { return &f }
