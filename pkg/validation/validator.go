// Package validation checks raw subscription input and turns it into a typed
// models.Submission.
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ggrmusic/ggr-web/pkg/models"
)

// Errors maps a form field name to its human-readable messages.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// First returns the first message recorded for field.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) add(field, message string) {
	for _, existing := range e[field] {
		if existing == message {
			return
		}
	}
	e[field] = append(e[field], message)
}

// Validator enforces the subscription form rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the wire name rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "integer", func(fl validator.FieldLevel) bool {
		_, err := models.FlexString(fl.Field().String()).Int()
		return err == nil
	})
	mustRegister(v, "rating", func(fl validator.FieldLevel) bool {
		n, err := models.FlexString(fl.Field().String()).Int()
		return err == nil && n >= 1 && n <= 5
	})
	mustRegister(v, "accepted", func(fl validator.FieldLevel) bool {
		return models.FlexString(fl.Field().String()).Accepted()
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate normalizes in and checks every field. It returns a typed Submission
// when the input is valid, or Errors with one entry per failing field.
func (v *Validator) Validate(in models.SubscriptionInput) (models.Submission, Errors) {
	in.Normalize()

	if err := v.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return models.Submission{}, Errors{"form": {err.Error()}}
		}
		errs := Errors{}
		for _, fe := range verrs {
			field := fieldName(fe)
			errs.add(field, message(field, fe))
		}
		return models.Submission{}, errs
	}

	// Both have passed the integer and accepted rules above.
	rating, _ := in.SatisfactionRating.Int()

	return models.Submission{
		Email:                  in.Email,
		Phone:                  in.Phone,
		CommunicationFrequency: in.CommunicationFrequency,
		DiscoverySource:        models.NewChoice(in.DiscoverySource, in.DiscoverySourceOther),
		PreferredPlatform:      in.PreferredPlatform,
		SatisfactionRating:     rating,
		ContentPreferences:     models.NewMultiChoice(in.ContentPreferences, in.ContentPreferencesOther),
		WouldShare:             in.WouldShare,
		ConsentAgreed:          true,
	}, nil
}

// fieldName turns "SubscriptionInput.content_preferences[2]" into
// "content_preferences.2".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.NewReplacer("[", ".", "]", "").Replace(ns)
	return ns
}
