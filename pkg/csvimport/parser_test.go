package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskbases/riskbases/pkg/riskscore"
)

func TestParseDutchHeaders(t *testing.T) {
	text := "titel,categorie,beschrijving,kans,impact,actie\n" +
		"Vergunning vertraagd,vergunningen,Omschrijving,3,4,Vooroverleg plannen\n"

	result := Parse(text)
	require.Len(t, result.Risks, 1)
	assert.Empty(t, result.Warnings)

	r := result.Risks[0]
	assert.Equal(t, "Vergunning vertraagd", r.Title)
	assert.Equal(t, "vergunningen", r.Category)
	assert.Equal(t, 3, r.Probability)
	assert.Equal(t, 4, r.Impact)
	assert.Equal(t, "Vooroverleg plannen", r.Action)
	assert.Equal(t, 12, r.Score)
	assert.Equal(t, riskscore.BandHigh, r.Band)
}

func TestParseEnglishHeadersAnyOrder(t *testing.T) {
	text := "impact,action,title,probability\n2,Review contract,Scope creep,4\n"

	result := Parse(text)
	require.Len(t, result.Risks, 1)
	assert.Equal(t, "Scope creep", result.Risks[0].Title)
	assert.Equal(t, 4, result.Risks[0].Probability)
	assert.Equal(t, 2, result.Risks[0].Impact)
	assert.Equal(t, "Review contract", result.Risks[0].Action)
}

func TestParseQuotedFieldWithComma(t *testing.T) {
	text := "titel,kans,impact\n\"Delay, longer than a month\",2,3\n"

	result := Parse(text)
	require.Len(t, result.Risks, 1)
	assert.Equal(t, "Delay, longer than a month", result.Risks[0].Title)
}

func TestParseSkipsAndClamps(t *testing.T) {
	// Row 2 has an out-of-range probability (clamped to 5 before scoring),
	// row 3 has no title (skipped). Two warnings, two risks.
	text := "titel,kans,impact\nA,3,4\nB,9,1\n,2,2"

	result := Parse(text)
	require.Len(t, result.Risks, 2)
	require.Len(t, result.Warnings, 2)

	assert.Equal(t, "A", result.Risks[0].Title)
	assert.Equal(t, 12, result.Risks[0].Score)
	assert.Equal(t, riskscore.BandHigh, result.Risks[0].Band)

	assert.Equal(t, "B", result.Risks[1].Title)
	assert.Equal(t, 5, result.Risks[1].Probability)
	assert.Equal(t, 5, result.Risks[1].Score)
	assert.Equal(t, riskscore.BandLow, result.Risks[1].Band)

	assert.Contains(t, result.Warnings[0], "row 2")
	assert.Contains(t, result.Warnings[0], "clamped to 5")
	assert.Contains(t, result.Warnings[1], "row 3")
	assert.Contains(t, result.Warnings[1], "skipped")
}

func TestParseNonNumericScaleDefaults(t *testing.T) {
	text := "title,probability,impact\nFlood risk,high,\n"

	result := Parse(text)
	require.Len(t, result.Risks, 1)
	assert.Equal(t, 3, result.Risks[0].Probability)
	assert.Equal(t, 3, result.Risks[0].Impact)
	// Only the non-numeric cell warns; the empty cell is simply the default.
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "not a number")
}

func TestParseClampInvariant(t *testing.T) {
	text := "title,probability,impact\nA,-2,99\nB,abc,0\nC,5,1\n"

	result := Parse(text)
	require.Len(t, result.Risks, 3)
	for _, r := range result.Risks {
		assert.GreaterOrEqual(t, r.Probability, 1)
		assert.LessOrEqual(t, r.Probability, 5)
		assert.GreaterOrEqual(t, r.Impact, 1)
		assert.LessOrEqual(t, r.Impact, 5)
	}
}

func TestParseRejectsHeaderOnly(t *testing.T) {
	result := Parse("titel,kans,impact\n")
	assert.Empty(t, result.Risks)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "at least one data row")
}

func TestParseRejectsMissingTitleColumn(t *testing.T) {
	result := Parse("categorie,kans,impact\nfoo,1,2\n")
	assert.Empty(t, result.Risks)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "title column")
}

func TestParseIsPure(t *testing.T) {
	text := "titel,kans,impact\nA,3,4\nB,9,1\n,2,2"
	first := Parse(text)
	second := Parse(text)
	assert.Equal(t, first, second)
}

func TestTemplateRoundTrip(t *testing.T) {
	text := Template()
	dataRows := len(strings.Split(strings.TrimRight(text, "\n"), "\n")) - 1

	result := Parse(text)
	assert.Len(t, result.Risks, dataRows)
	assert.Empty(t, result.Warnings)
}
