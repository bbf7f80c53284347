// Package format maps stored form keys to the labels written to the
// subscriber spreadsheet.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var communicationFrequencies = map[string]string{
	"weekly":      "Weekly Updates",
	"biweekly":    "Bi-weekly Updates",
	"urgent_only": "Urgent Only",
}

var discoverySources = map[string]string{
	"instagram":                "Instagram",
	"youtube":                  "YouTube",
	"live_event___performance": "Live event / performance",
	"friend_or_word_of_mouth":  "Friend or word of mouth",
	"search__google__etc.":     "Search (Google, etc.)",
	"other":                    "Other",
}

var preferredPlatforms = map[string]string{
	"instagram":            "Instagram",
	"tiktok":               "TikTok",
	"youtube":              "YouTube",
	"facebook":             "Facebook",
	"x__formally_twitter_": "X (Formally Twitter)",
	"short_form_video__reels___tiktok___shorts_": "Short-form video",
	"long_form_video__youtube_":                  "Long-form video",
	"live_streams":                               "Live Streams",
}

var contentPreferences = map[string]string{
	"behind_the_scenes_footage":        "Behind-the-scenes footage",
	"exclusive_interviews_with_talent": "Exclusive interviews with talent",
	"giveaways_and_contests":           "Giveaways and contests",
	"event_highlights_and_recaps":      "Event highlights and recaps",
	"upcoming_schedule_previews":       "Upcoming schedule previews",
	"fan_spotlights_and_interactions":  "Fan spotlights and interactions",
	"other":                            "Other",
}

// CommunicationFrequency returns the label for a frequency key.
func CommunicationFrequency(key string) string {
	return lookup(communicationFrequencies, key)
}

// DiscoverySource returns the label for a discovery source key.
func DiscoverySource(key string) string {
	return lookup(discoverySources, key)
}

// PreferredPlatform returns the label for a platform key.
func PreferredPlatform(key string) string {
	return lookup(preferredPlatforms, key)
}

// ContentPreference returns the label for a single content preference key.
func ContentPreference(key string) string {
	return lookup(contentPreferences, key)
}

// ContentPreferences labels each key and joins them with ", ".
func ContentPreferences(keys []string) string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, ContentPreference(k))
	}
	return strings.Join(out, ", ")
}

// Capitalize upper-cases the first letter of s, as used for would_share.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// YesNo renders a boolean the way the sheet expects it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func lookup(table map[string]string, key string) string {
	if label, ok := table[key]; ok {
		return label
	}
	return Humanize(key)
}

// Humanize turns an unknown key such as "abc_def" into "Abc Def". Letters
// after the first of each word are left alone.
func Humanize(key string) string {
	// cases.Caser is stateful, so each call gets its own.
	title := cases.Title(language.English, cases.NoLower)
	return title.String(strings.ReplaceAll(key, "_", " "))
}
