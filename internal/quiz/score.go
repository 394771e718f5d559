// Package quiz implements the weight-loss quiz: keyword inference over
// freeform text plus a BMI-based readiness score.
package quiz

import "fmt"

// Answers are the quiz fields. Zero values mean unanswered.
type Answers struct {
	Sex       string  `json:"sex,omitempty"`
	Age       int     `json:"age,omitempty"`
	HeightIn  float64 `json:"height_in,omitempty"`
	WeightLb  float64 `json:"weight_lb,omitempty"`
	Activity  string  `json:"activity,omitempty"` // sedentary, light, moderate, active
	GoalLb    float64 `json:"goal_lb,omitempty"`
	TriedGLP1 *bool   `json:"tried_glp1,omitempty"`
}

// Result is the scored quiz outcome.
type Result struct {
	BMI       float64 `json:"bmi"`
	BMIBand   string  `json:"bmi_band"`
	Readiness int     `json:"readiness"` // 0..100
	Note      string  `json:"note"`
}

// BMI computes body mass index from imperial units.
func BMI(heightIn, weightLb float64) float64 {
	if heightIn <= 0 {
		return 0
	}
	return 703 * weightLb / (heightIn * heightIn)
}

func bmiBand(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "healthy"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// Score turns a set of answers into a readiness result. Height, weight and
// age are required; everything else just shifts the score.
func Score(a Answers) (Result, error) {
	if a.HeightIn <= 0 || a.WeightLb <= 0 {
		return Result{}, fmt.Errorf("height and weight are required")
	}
	if a.Age > 0 && a.Age < 18 {
		return Result{}, fmt.Errorf("this quiz is for adults")
	}

	bmi := BMI(a.HeightIn, a.WeightLb)
	band := bmiBand(bmi)

	score := 50
	switch band {
	case "underweight":
		score -= 40
	case "healthy":
		score += 5
	case "overweight":
		score += 20
	case "obese":
		score += 25
	}

	switch a.Activity {
	case "light":
		score += 5
	case "moderate":
		score += 10
	case "active":
		score += 15
	}

	// Goal realism: losing more than a quarter of body weight is an
	// outsized target for a self-guided program.
	if a.GoalLb > 0 {
		ratio := a.GoalLb / a.WeightLb
		switch {
		case ratio <= 0.15:
			score += 15
		case ratio <= 0.25:
			score += 5
		default:
			score -= 10
		}
	}

	if a.TriedGLP1 != nil && *a.TriedGLP1 {
		score += 10
	}
	if a.Age > 75 {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{
		BMI:       bmi,
		BMIBand:   band,
		Readiness: score,
		Note:      bandNote(band),
	}, nil
}

func bandNote(band string) string {
	switch band {
	case "underweight":
		return "Weight loss is not indicated at this BMI."
	case "healthy":
		return "BMI is in the healthy range; focus on maintenance."
	case "overweight":
		return "A structured program is a reasonable fit."
	default:
		return "A supervised program is strongly recommended."
	}
}
