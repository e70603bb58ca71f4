package carbon

import "math"

// Emission factors in kg CO2 per unit (km, kWh, kg or item depending on the
// activity). Values follow the commonly published averages used by the app's
// activity form.
var co2Factors = map[string]map[string]float64{
	"transport": {
		"car":   0.21,
		"bus":   0.089,
		"train": 0.041,
		"plane": 0.255,
		"bike":  0,
		"walk":  0,
	},
	"energy": {
		"electricity": 0.5,
		"gas":         2.0,
		"heating":     0.3,
	},
	"food": {
		"meat":       27.0,
		"dairy":      3.2,
		"vegetables": 2.0,
		"grains":     1.4,
	},
	"waste": {
		"plastic": 2.5,
		"paper":   0.8,
		"organic": 0.5,
	},
	"shopping": {
		"clothing":    15.0,
		"electronics": 50.0,
		"general":     5.0,
	},
	"other": {
		"default": 1.0,
	},
}

var Categories = []string{"transport", "energy", "food", "waste", "shopping", "other"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Calculate derives the CO2 mass for an activity. Unknown categories fall back
// to "other", unknown activity types to the category's "default" factor or 1.0.
// The result is rounded to 2 decimal places, matching what gets stored.
func Calculate(category, activityType string, amount float64) float64 {
	factors, ok := co2Factors[category]
	if !ok {
		factors = co2Factors["other"]
	}

	factor, ok := factors[activityType]
	if !ok {
		if def, hasDefault := factors["default"]; hasDefault {
			factor = def
		} else {
			factor = 1.0
		}
	}

	return Round2(factor * amount)
}

// Round2 rounds to 2 decimal places. Used at the presentation boundary for
// sums and at resolution time for derived entry values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
