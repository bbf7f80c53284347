package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"email.required":                   "Email is required",
	"email.email":                      "Email must be a valid email address",
	"phone.required":                   "Mobile phone number is required",
	"communication_frequency.required": "Please select a communication frequency",
	"communication_frequency.oneof":    "Invalid communication frequency selected",
	"discovery_source.required":        "Please select where you discovered GGR",
	"preferred_platform.required":      "Please select your preferred platform",
	"satisfaction_rating.required":     "Please rate your satisfaction",
	"satisfaction_rating.integer":      "Rating must be a whole number",
	"satisfaction_rating.rating":       "Rating must be between 1 and 5",
	"content_preferences.required":     "Please select at least one content type",
	"content_preferences.min":          "Please select at least one content type",
	"would_share.required":             "Please indicate if you would share content",
	"would_share.oneof":                "Invalid selection for sharing preference",
	"consent_agreed.required":          "You must agree to the terms to continue",
	"consent_agreed.accepted":          "You must agree to the terms to continue",
}

var labels = map[string]string{
	"email":                     "Email",
	"phone":                     "Phone",
	"discovery_source":          "Discovery source",
	"discovery_source_other":    "Other discovery source",
	"preferred_platform":        "Preferred platform",
	"content_preferences":       "Content type",
	"content_preferences_other": "Other content type",
}

func message(field string, fe validator.FieldError) string {
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}

	// content_preferences.N -> content_preferences
	base := field
	if i := strings.Index(field, "."); i >= 0 {
		base = field[:i]
	}
	label, ok := labels[base]
	if !ok {
		label = strings.ReplaceAll(base, "_", " ")
	}

	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s may not be greater than %s characters", label, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "oneof":
		return fmt.Sprintf("Invalid %s selected", strings.ToLower(label))
	}
	return fmt.Sprintf("%s is invalid", label)
}
