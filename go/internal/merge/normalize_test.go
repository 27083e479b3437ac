package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Derrick Henry", "derrick henry"},
		{"strips punctuation", "A.J. Brown", "aj brown"},
		{"strips apostrophe", "Ja'Marr Chase", "jamarr chase"},
		{"collapses whitespace", "  Saquon   Barkley ", "saquon barkley"},
		{"strips jr suffix", "Odell Beckham Jr.", "odell beckham"},
		{"strips sr suffix", "Marvin Harrison Sr", "marvin harrison"},
		{"strips roman numerals", "Kenneth Walker III", "kenneth walker"},
		{"strips iv", "Dorian Thompson-Robinson IV", "dorian thompsonrobinson"},
		{"strips diacritics", "Tremón Smith", "tremon smith"},
		{"suffix only name survives", "Jr", "jr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeNameGroupsVariants(t *testing.T) {
	assert.Equal(t, NormalizeName("Derrick Henry"), NormalizeName("Derrick Henry Jr."))
	assert.Equal(t, NormalizeName("D.K. Metcalf"), NormalizeName("DK Metcalf"))
}
