package carbon

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxDescriptionLength = 200

// EntryInput is the raw entry submission. A client sends either an explicit
// CO2 mass or an activityType+amount pair to derive one; ResolveCO2 collapses
// the two forms to a single number before anything is persisted.
type EntryInput struct {
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	ActivityType string   `json:"activityType"`
	Amount       *float64 `json:"amount"`
	CO2Kg        *float64 `json:"co2kg"`
}

// ValidationError reports a rejected entry submission.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the non-numeric fields of a submission.
func (in *EntryInput) Validate() error {
	if in.Category == "" || strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Message: "Please provide category and description"}
	}

	if !ValidCategory(in.Category) {
		return &ValidationError{Message: fmt.Sprintf("Unknown category %q", in.Category)}
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Description)) > maxDescriptionLength {
		return &ValidationError{Message: "Description cannot be more than 200 characters"}
	}

	return nil
}

// ResolveCO2 picks the explicit form when present (zero is a legal value),
// otherwise derives from the factor table. Having neither is a validation
// error.
func (in *EntryInput) ResolveCO2() (float64, error) {
	if in.CO2Kg != nil {
		if *in.CO2Kg < 0 {
			return 0, &ValidationError{Message: "CO2 cannot be negative"}
		}
		return *in.CO2Kg, nil
	}

	if in.ActivityType != "" && in.Amount != nil {
		if *in.Amount < 0 {
			return 0, &ValidationError{Message: "Amount cannot be negative"}
		}
		return Calculate(in.Category, in.ActivityType, *in.Amount), nil
	}

	return 0, &ValidationError{Message: "Please provide CO2 value or activity details"}
}
