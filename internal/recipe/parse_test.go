package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		raw  string
		want Line
	}{
		{"1 lb ground beef", Line{Raw: "1 lb ground beef", Quantity: 1, Unit: "lb", Name: "ground beef"}},
		{"2 cups rice", Line{Raw: "2 cups rice", Quantity: 2, Unit: "cup", Name: "rice"}},
		{"1/2 cup milk", Line{Raw: "1/2 cup milk", Quantity: 0.5, Unit: "cup", Name: "milk"}},
		{"1.5 lbs chicken thighs", Line{Raw: "1.5 lbs chicken thighs", Quantity: 1.5, Unit: "lb", Name: "chicken thighs"}},
		{"8 fl oz chicken broth", Line{Raw: "8 fl oz chicken broth", Quantity: 8, Unit: "fl oz", Name: "chicken broth"}},
		{"2 onions", Line{Raw: "2 onions", Quantity: 2, Name: "onions"}},
		{"3 cloves garlic", Line{Raw: "3 cloves garlic", Quantity: 3, Unit: "clove", Name: "garlic"}},
		{"salt", Line{Raw: "salt", Name: "salt"}},
		{"  olive oil  ", Line{Raw: "olive oil", Name: "olive oil"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.raw))
		})
	}
}

func TestParseLineBadFraction(t *testing.T) {
	got := ParseLine("1/0 cup flour")
	// Division by zero quantity falls back to "no quantity".
	assert.Equal(t, 0.0, got.Quantity)
	assert.Equal(t, "cup", got.Unit)
	assert.Equal(t, "flour", got.Name)
}

func TestParseLinesSkipsBlanks(t *testing.T) {
	lines := ParseLines([]string{"1 lb ground beef", "", "   ", "salt"})
	assert.Len(t, lines, 2)
	assert.Equal(t, "ground beef", lines[0].Name)
	assert.Equal(t, "salt", lines[1].Name)
}
