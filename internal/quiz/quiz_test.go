package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	// 5'9" at 180lb is the stock example: BMI 26.6.
	assert.InDelta(t, 26.6, BMI(69, 180), 0.1)
	assert.Zero(t, BMI(0, 180))
}

func TestScore(t *testing.T) {
	t.Run("requires height and weight", func(t *testing.T) {
		_, err := Score(Answers{HeightIn: 69})
		assert.Error(t, err)
	})

	t.Run("rejects minors", func(t *testing.T) {
		_, err := Score(Answers{HeightIn: 69, WeightLb: 180, Age: 16})
		assert.Error(t, err)
	})

	t.Run("overweight active with a modest goal scores high", func(t *testing.T) {
		yes := true
		r, err := Score(Answers{
			HeightIn:  69,
			WeightLb:  210,
			Age:       40,
			Activity:  "active",
			GoalLb:    25, // under 15% of body weight
			TriedGLP1: &yes,
		})
		require.NoError(t, err)
		assert.Equal(t, "obese", r.BMIBand)
		assert.Equal(t, 100, r.Readiness) // 50+25+15+15+10, clamped
	})

	t.Run("underweight scores near zero", func(t *testing.T) {
		r, err := Score(Answers{HeightIn: 69, WeightLb: 115, Age: 30})
		require.NoError(t, err)
		assert.Equal(t, "underweight", r.BMIBand)
		assert.Equal(t, 10, r.Readiness)
		assert.Contains(t, r.Note, "not indicated")
	})

	t.Run("goal realism bands on fraction of body weight", func(t *testing.T) {
		modest, err := Score(Answers{HeightIn: 69, WeightLb: 200, GoalLb: 20}) // 10%
		require.NoError(t, err)
		stretch, err := Score(Answers{HeightIn: 69, WeightLb: 200, GoalLb: 40}) // 20%
		require.NoError(t, err)
		extreme, err := Score(Answers{HeightIn: 69, WeightLb: 200, GoalLb: 80}) // 40%
		require.NoError(t, err)

		assert.Greater(t, modest.Readiness, stretch.Readiness)
		assert.Greater(t, stretch.Readiness, extreme.Readiness)
		assert.Equal(t, 10, modest.Readiness-stretch.Readiness)
		assert.Equal(t, 15, stretch.Readiness-extreme.Readiness)
	})
}

func TestInfer(t *testing.T) {
	t.Run("full sentence", func(t *testing.T) {
		a := Infer("I'm a 38 year old woman, 5'6\", about 190 lbs, desk job, want to lose 30 pounds. Tried Ozempic last year.")
		assert.Equal(t, "female", a.Sex)
		assert.Equal(t, 38, a.Age)
		assert.Equal(t, 66.0, a.HeightIn)
		assert.Equal(t, 190.0, a.WeightLb)
		assert.Equal(t, "sedentary", a.Activity)
		assert.Equal(t, 30.0, a.GoalLb)
		require.NotNil(t, a.TriedGLP1)
		assert.True(t, *a.TriedGLP1)
	})

	t.Run("metric units convert", func(t *testing.T) {
		a := Infer("male, 175 cm, 95 kg, want to drop 10 kilos")
		assert.Equal(t, "male", a.Sex)
		assert.InDelta(t, 68.9, a.HeightIn, 0.1)
		assert.InDelta(t, 209.4, a.WeightLb, 0.1)
		assert.InDelta(t, 22.0, a.GoalLb, 0.1)
	})

	t.Run("activity keywords", func(t *testing.T) {
		assert.Equal(t, "active", Infer("I hit the gym most days").Activity)
		assert.Equal(t, "light", Infer("I go walking in the evenings").Activity)
	})

	t.Run("empty text infers nothing", func(t *testing.T) {
		assert.Equal(t, Answers{}, Infer("hello"))
	})
}
