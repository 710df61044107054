package astro

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateElementCompatibility(t *testing.T) {
	tests := []struct {
		a, b Element
		want int
	}{
		{Fire, Fire, 80},
		{Fire, Air, 90},
		{Air, Fire, 90},
		{Earth, Water, 90},
		{Fire, Water, 50},
		{Earth, Air, 50},
		{Air, Water, 40},
		{Fire, Earth, 40},
		{Earth, Earth, 70},
		{Element("ether"), Fire, 50},
	}
	for _, tt := range tests {
		t.Run(string(tt.a)+"/"+string(tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateElementCompatibility(tt.a, tt.b))
		})
	}
}

func TestElementMatrixIsSymmetric(t *testing.T) {
	all := []Element{Fire, Earth, Air, Water}
	for _, a := range all {
		for _, b := range all {
			assert.Equal(t, CalculateElementCompatibility(a, b), CalculateElementCompatibility(b, a))
		}
	}
}

func TestGetCompatibilityInsightsScores(t *testing.T) {
	tests := []struct {
		a, b                                         SignID
		score, chemistry, communication, stability int
	}{
		{Aries, Leo, 80, 88, 83, 78},
		{Gemini, Gemini, 79, 88, 74, 80},
		{Aries, Cancer, 60, 55, 62, 70},
	}
	for _, tt := range tests {
		t.Run(string(tt.a)+"-"+string(tt.b), func(t *testing.T) {
			got, err := GetCompatibilityInsights(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.chemistry, got.Chemistry)
			assert.Equal(t, tt.communication, got.Communication)
			assert.Equal(t, tt.stability, got.Stability)
		})
	}
}

func TestGetCompatibilityInsightsTexts(t *testing.T) {
	got, err := GetCompatibilityInsights(Aries, Cancer)
	require.NoError(t, err)

	assert.Contains(t, got.Overview, "Odnos između Ovan i Rak zahteva rad")

	want := []string{
		"Sličan pristup životnim situacijama (Kardinal kvalitet)",
		"Mogućnost učenja i proširivanja perspektive kroz različitosti",
		"Kreativni pristup rešavanju problema zajedno",
	}
	if diff := cmp.Diff(want, got.Strengths); diff != "" {
		t.Errorf("strengths mismatch (-want +got):\n%s", diff)
	}

	wantChallenges := []string{
		"Elementi Vatra i Voda mogu biti u konfliktu",
		"Moguća borba za dominaciju i kontrolu (oba kardinalna znaka)",
		"Povremeni nesporazumi zbog različitih perspektiva",
		"Potreba za aktivnim radom na komunikaciji",
	}
	if diff := cmp.Diff(wantChallenges, got.Challenges); diff != "" {
		t.Errorf("challenges mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCompatibilityInsightsSharedRuler(t *testing.T) {
	got, err := GetCompatibilityInsights(Aries, Scorpio)
	require.NoError(t, err)
	assert.Contains(t, got.Strengths, "Planetarna povezanost kroz vladare znakova stvara dublje razumevanje")
}

func TestGetCompatibilityInsightsIsDeterministic(t *testing.T) {
	for _, a := range Signs() {
		for _, b := range Signs() {
			first, err := GetCompatibilityInsights(a.ID, b.ID)
			require.NoError(t, err)
			second, err := GetCompatibilityInsights(a.ID, b.ID)
			require.NoError(t, err)

			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("%s/%s not deterministic:\n%s", a.ID, b.ID, diff)
			}
			for _, v := range []int{first.Score, first.Chemistry, first.Communication, first.Stability} {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 100)
			}
		}
	}
}

func TestGetCompatibilityInsightsUnknownSign(t *testing.T) {
	_, err := GetCompatibilityInsights(Aries, "dragon")
	require.ErrorIs(t, err, ErrUnknownSign)
	assert.Contains(t, err.Error(), `"dragon"`)

	_, err = GetCompatibilityInsights("", Leo)
	assert.ErrorIs(t, err, ErrUnknownSign)
}
