package verify

import (
	"testing"
	"time"

	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/stretchr/testify/assert"
)

func TestMockVerifierConfidenceBands(t *testing.T) {
	v := NewMockVerifier(42)
	now := time.Now()

	for i := 0; i < 50; i++ {
		result := v.VerifyAstroPhoto(models.CategoryNebula, "", now)
		assert.GreaterOrEqual(t, result.Confidence, 0.70)
		assert.LessOrEqual(t, result.Confidence, 0.95)
		assert.Equal(t, "Analyzed against astronomical database", result.Reason)
	}

	for _, category := range []models.Category{models.CategoryMoon, models.CategoryPlanet} {
		for i := 0; i < 50; i++ {
			result := v.VerifyAstroPhoto(category, "", now)
			assert.GreaterOrEqual(t, result.Confidence, 0.80)
			assert.LessOrEqual(t, result.Confidence, 0.98)
			assert.Equal(t, "High confidence for planetary objects", result.Reason)
		}
	}

	for i := 0; i < 50; i++ {
		result := v.VerifyAstroPhoto(models.CategoryEclipse, "", now)
		assert.GreaterOrEqual(t, result.Confidence, 0.90)
		assert.LessOrEqual(t, result.Confidence, 0.99)
		assert.Equal(t, "Eclipse patterns matched", result.Reason)
	}
}

func TestMockVerifierDeterministicWithSeed(t *testing.T) {
	a := NewMockVerifier(7)
	b := NewMockVerifier(7)
	now := time.Now()

	for i := 0; i < 20; i++ {
		assert.Equal(t,
			a.VerifyAstroPhoto(models.CategoryStars, "", now),
			b.VerifyAstroPhoto(models.CategoryStars, "", now),
		)
	}
}

func TestMockVerifierRoundsToTwoDecimals(t *testing.T) {
	v := NewMockVerifier(1)
	result := v.VerifyAstroPhoto(models.CategoryGalaxy, "", time.Now())
	scaled := result.Confidence * 100
	assert.InDelta(t, scaled, float64(int(scaled+0.5)), 1e-9)
}

func TestStaticVerifier(t *testing.T) {
	fake := Static{Result: Result{Verified: true, Confidence: 0.93, Reason: "fixture"}}
	got := fake.VerifyAstroPhoto(models.CategoryMoon, "backyard", time.Now())
	assert.Equal(t, fake.Result, got)
}
