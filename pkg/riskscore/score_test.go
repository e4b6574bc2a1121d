package riskscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDomain(t *testing.T) {
	for p := 1; p <= 5; p++ {
		for i := 1; i <= 5; i++ {
			score := Score(p, i)
			assert.Equal(t, p*i, score)
			assert.GreaterOrEqual(t, score, 1)
			assert.LessOrEqual(t, score, 25)
		}
	}
}

func TestScoreClampsOutOfRangeInput(t *testing.T) {
	assert.Equal(t, 5, Score(9, 1))
	assert.Equal(t, 25, Score(9, 9))
	assert.Equal(t, 1, Score(0, -3))
}

func TestClassifyBands(t *testing.T) {
	expected := map[int]Band{
		1: BandLow, 4: BandLow, 5: BandLow,
		6: BandMedium, 9: BandMedium, 10: BandMedium,
		12: BandHigh, 15: BandHigh,
		16: BandCritical, 20: BandCritical, 25: BandCritical,
	}
	for score, band := range expected {
		assert.Equal(t, band, Classify(score), "score %d", score)
	}
}

// The banding must be total and monotonic over the whole integer score
// domain: a higher score never maps to a lower band.
func TestClassifyMonotonic(t *testing.T) {
	order := map[Band]int{BandLow: 0, BandMedium: 1, BandHigh: 2, BandCritical: 3}
	prev := 0
	for score := 1; score <= 25; score++ {
		rank, ok := order[Classify(score)]
		assert.True(t, ok, "score %d has no band", score)
		assert.GreaterOrEqual(t, rank, prev, "band rank dropped at score %d", score)
		prev = rank
	}
}

func TestIsCritical(t *testing.T) {
	assert.False(t, IsCritical(15))
	assert.True(t, IsCritical(16))
	assert.True(t, IsCritical(25))
}
