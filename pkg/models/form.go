package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OtherKey is the selection key that enables a free-text "other" answer.
const OtherKey = "other"

// SubscriptionInput represents the raw data coming from the subscription form.
// Form posts and JSON bodies bind onto the same struct.
type SubscriptionInput struct {
	Email                   string     `json:"email" form:"email" validate:"required,email,max=255"`
	Phone                   string     `json:"phone" form:"phone" validate:"required,max=20"`
	CommunicationFrequency  string     `json:"communication_frequency" form:"communication_frequency" validate:"required,oneof=weekly biweekly urgent_only"`
	DiscoverySource         string     `json:"discovery_source" form:"discovery_source" validate:"required,max=100"`
	DiscoverySourceOther    string     `json:"discovery_source_other" form:"discovery_source_other" validate:"max=255"`
	PreferredPlatform       string     `json:"preferred_platform" form:"preferred_platform" validate:"required,max=100"`
	SatisfactionRating      FlexString `json:"satisfaction_rating" form:"satisfaction_rating" validate:"required,integer,rating"`
	ContentPreferences      []string   `json:"content_preferences" form:"content_preferences" validate:"required,min=1,dive,max=100"`
	ContentPreferencesOther string     `json:"content_preferences_other" form:"content_preferences_other" validate:"max=255"`
	WouldShare              string     `json:"would_share" form:"would_share" validate:"required,oneof=yes maybe no"`
	ConsentAgreed           FlexString `json:"consent_agreed" form:"consent_agreed" validate:"required,accepted"`
}

// Normalize trims every string field and drops blank preference entries.
func (in *SubscriptionInput) Normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.CommunicationFrequency = strings.TrimSpace(in.CommunicationFrequency)
	in.DiscoverySource = strings.TrimSpace(in.DiscoverySource)
	in.DiscoverySourceOther = strings.TrimSpace(in.DiscoverySourceOther)
	in.PreferredPlatform = strings.TrimSpace(in.PreferredPlatform)
	in.SatisfactionRating = FlexString(strings.TrimSpace(string(in.SatisfactionRating)))
	in.ContentPreferencesOther = strings.TrimSpace(in.ContentPreferencesOther)
	in.WouldShare = strings.TrimSpace(in.WouldShare)
	in.ConsentAgreed = FlexString(strings.TrimSpace(string(in.ConsentAgreed)))

	if in.ContentPreferences == nil {
		return
	}
	prefs := make([]string, 0, len(in.ContentPreferences))
	for _, p := range in.ContentPreferences {
		if p = strings.TrimSpace(p); p != "" {
			prefs = append(prefs, p)
		}
	}
	in.ContentPreferences = prefs
}

// Values flattens the input back into form values so a rejected form can be
// re-rendered with what the visitor typed.
func (in SubscriptionInput) Values() map[string][]string {
	out := map[string][]string{
		"email":                     {in.Email},
		"phone":                     {in.Phone},
		"communication_frequency":   {in.CommunicationFrequency},
		"discovery_source":          {in.DiscoverySource},
		"discovery_source_other":    {in.DiscoverySourceOther},
		"preferred_platform":        {in.PreferredPlatform},
		"satisfaction_rating":       {string(in.SatisfactionRating)},
		"content_preferences_other": {in.ContentPreferencesOther},
		"would_share":               {in.WouldShare},
		"consent_agreed":            {string(in.ConsentAgreed)},
	}
	if len(in.ContentPreferences) > 0 {
		out["content_preferences"] = append([]string(nil), in.ContentPreferences...)
	}
	return out
}

// FlexString accepts a JSON string, number, boolean or null and keeps its
// textual form, so typed JSON clients and HTML forms validate the same way.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*f = FlexString(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported value %s", data)
		}
		*f = FlexString(n.String())
	}
	return nil
}

// Int parses the value as a base-10 integer.
func (f FlexString) Int() (int, error) {
	return strconv.Atoi(string(f))
}

// Accepted reports whether the value is one of the affirmative checkbox
// values browsers and API clients send.
func (f FlexString) Accepted() bool {
	switch strings.ToLower(string(f)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Choice is a single selection whose "other" answer is only carried when
// the selected key is OtherKey.
type Choice struct {
	Key   string
	Other string
}

// NewChoice builds a Choice, discarding other text for non-other keys.
func NewChoice(key, other string) Choice {
	if key != OtherKey {
		other = ""
	}
	return Choice{Key: key, Other: other}
}

// MultiChoice is a checkbox group with an optional "other" answer.
type MultiChoice struct {
	Keys  []string
	Other string
}

// NewMultiChoice builds a MultiChoice, discarding other text unless
// OtherKey is among the selected keys.
func NewMultiChoice(keys []string, other string) MultiChoice {
	mc := MultiChoice{Keys: append([]string(nil), keys...)}
	for _, k := range keys {
		if k == OtherKey {
			mc.Other = other
			break
		}
	}
	return mc
}

// Submission is a validated subscription form.
type Submission struct {
	Email                  string
	Phone                  string
	CommunicationFrequency string
	DiscoverySource        Choice
	PreferredPlatform      string
	SatisfactionRating     int
	ContentPreferences     MultiChoice
	WouldShare             string
	ConsentAgreed          bool
}

// OutboundRecord is the display-ready row sent to the spreadsheet webhook.
// Field order matches the sheet's column order.
type OutboundRecord struct {
	Timestamp               string `json:"timestamp"`
	Email                   string `json:"email"`
	Phone                   string `json:"phone"`
	CommunicationFrequency  string `json:"communication_frequency"`
	DiscoverySource         string `json:"discovery_source"`
	DiscoverySourceOther    string `json:"discovery_source_other"`
	PreferredPlatform       string `json:"preferred_platform"`
	SatisfactionRating      int    `json:"satisfaction_rating"`
	ContentPreferences      string `json:"content_preferences"`
	ContentPreferencesOther string `json:"content_preferences_other"`
	WouldShare              string `json:"would_share"`
	ConsentAgreed           string `json:"consent_agreed"`
	IPAddress               string `json:"ip_address"`
}
