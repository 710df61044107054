package astro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPicker(i int) Picker {
	return func(n int) int { return i }
}

func TestGenerateUnknownSign(t *testing.T) {
	g := NewAffirmationGenerator(fixedPicker(0))
	assert.Equal(t, GenericAffirmation, g.Generate("unknown", FullMoon))
}

func TestGenerateSignOnly(t *testing.T) {
	g := NewAffirmationGenerator(fixedPicker(2))
	got := g.Generate(Taurus, "")
	assert.Equal(t, "Cenim svoj komfor i stvaram harmoniju oko sebe.", got)

	got = g.Generate(Taurus, "blue_moon")
	assert.Equal(t, "Cenim svoj komfor i stvaram harmoniju oko sebe.", got)
}

func TestGenerateWithPhase(t *testing.T) {
	g := NewAffirmationGenerator(fixedPicker(0))
	got := g.Generate(Leo, NewMoon)
	assert.Equal(t,
		"Moje samopouzdanje zrači iz mene i inspiriše druge. Kao Lav, započinjem nove projekte sa svežom energijom i jasnom vizijom.",
		got)
}

func TestGenerateClampsBadPicker(t *testing.T) {
	g := NewAffirmationGenerator(fixedPicker(99))
	assert.Equal(t, "Moja hrabrost mi otvara nova vrata uspeha.", g.Generate(Aries, ""))
}

func TestGenerateDrawsFromPools(t *testing.T) {
	g := NewAffirmationGenerator(nil)
	for _, s := range Signs() {
		for _, p := range MoonPhases() {
			got := g.Generate(s.ID, p.ID)

			var signPart string
			for _, candidate := range SignAffirmations(s.ID) {
				if strings.HasPrefix(got, candidate+" ") {
					signPart = candidate
				}
			}
			require.NotEmptyf(t, signPart, "%q does not start with a %s sentence", got, s.ID)
			assert.Contains(t, PhaseAffirmations(s.ID, p.ID), strings.TrimPrefix(got, signPart+" "))
		}
	}
}

func TestAffirmationPoolSizes(t *testing.T) {
	for _, s := range Signs() {
		assert.Len(t, SignAffirmations(s.ID), 5, s.ID)
	}
	for _, p := range MoonPhases() {
		assert.Len(t, PhaseAffirmations(Aries, p.ID), 3, p.ID)
	}
}
