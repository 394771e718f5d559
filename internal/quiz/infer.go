package quiz

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	feetInchesRe = regexp.MustCompile(`(\d)\s*'\s*(\d{1,2})\s*"?`)
	feetWordRe   = regexp.MustCompile(`(\d)\s*(?:ft|feet|foot)\s*(\d{1,2})?`)
	cmRe         = regexp.MustCompile(`(\d{2,3})\s*cm`)
	poundsRe     = regexp.MustCompile(`(\d{2,3})\s*(?:lbs?|pounds)`)
	kgRe         = regexp.MustCompile(`(\d{2,3})\s*(?:kgs?|kilos?|kilograms?)`)
	ageRe        = regexp.MustCompile(`\b(\d{2})\s*(?:years?\s*old|yo\b|y/o)`)
	agePrefixRe  = regexp.MustCompile(`(?:age|i'?m)\s+(\d{2})\b`)
	goalRe       = regexp.MustCompile(`(?:lose|losing|drop)\s+(?:about\s+|around\s+)?(\d{1,3})\s*(lbs?|pounds|kgs?|kilos?)?`)
)

var glp1Words = []string{
	"glp", "ozempic", "wegovy", "semaglutide", "mounjaro", "zepbound", "tirzepatide", "saxenda", "liraglutide",
}

// Infer fills quiz answers from freeform text. It never errors; fields the
// text doesn't mention stay zero.
func Infer(text string) Answers {
	lower := strings.ToLower(text)
	var a Answers

	switch {
	case hasAny(lower, "female", "woman", "she/her"):
		a.Sex = "female"
	case hasAny(lower, "male", "man", "he/him"):
		a.Sex = "male"
	}

	if m := feetInchesRe.FindStringSubmatch(lower); m != nil {
		ft, _ := strconv.Atoi(m[1])
		in, _ := strconv.Atoi(m[2])
		a.HeightIn = float64(ft*12 + in)
	} else if m := feetWordRe.FindStringSubmatch(lower); m != nil {
		ft, _ := strconv.Atoi(m[1])
		in := 0
		if m[2] != "" {
			in, _ = strconv.Atoi(m[2])
		}
		a.HeightIn = float64(ft*12 + in)
	} else if m := cmRe.FindStringSubmatch(lower); m != nil {
		cm, _ := strconv.ParseFloat(m[1], 64)
		if cm >= 100 && cm <= 230 {
			a.HeightIn = cm / 2.54
		}
	}

	if m := poundsRe.FindStringSubmatch(lower); m != nil {
		a.WeightLb, _ = strconv.ParseFloat(m[1], 64)
	} else if m := kgRe.FindStringSubmatch(lower); m != nil {
		kg, _ := strconv.ParseFloat(m[1], 64)
		a.WeightLb = kg * 2.20462
	}

	if m := ageRe.FindStringSubmatch(lower); m != nil {
		a.Age, _ = strconv.Atoi(m[1])
	} else if m := agePrefixRe.FindStringSubmatch(lower); m != nil {
		a.Age, _ = strconv.Atoi(m[1])
	}

	if m := goalRe.FindStringSubmatch(lower); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		if strings.HasPrefix(m[2], "k") {
			v *= 2.20462
		}
		a.GoalLb = v
	}

	for _, w := range glp1Words {
		if strings.Contains(lower, w) {
			yes := true
			a.TriedGLP1 = &yes
			break
		}
	}

	switch {
	case hasAny(lower, "sedentary", "desk job", "don't exercise", "no exercise", "couch"):
		a.Activity = "sedentary"
	case hasAny(lower, "gym", "workout", "work out", "run ", "running", "very active", "train"):
		a.Activity = "active"
	case hasAny(lower, "walk", "walking", "light exercise", "somewhat active"):
		a.Activity = "light"
	case hasAny(lower, "moderate", "a few times a week"):
		a.Activity = "moderate"
	}

	return a
}

func hasAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
