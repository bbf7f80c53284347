package web

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/ggrmusic/ggr-web/pkg/carousel"
	"github.com/ggrmusic/ggr-web/pkg/config"
	"github.com/ggrmusic/ggr-web/pkg/content"
	"github.com/ggrmusic/ggr-web/pkg/flash"
	"github.com/ggrmusic/ggr-web/pkg/format"
)

var currentYear = func() int { return time.Now().Year() }

// Page is the data every template receives.
type Page struct {
	Title              string
	Theme              string
	Site               *content.Site
	Flash              *flash.Flash
	CarouselIntervalMS int64
	Form               *Form
	Gallery            *GalleryView
}

// NewPage fills the fields shared by all pages.
func NewPage(title string, site *content.Site, interval time.Duration) Page {
	return Page{
		Title:              title,
		Theme:              config.Theme,
		Site:               site,
		CarouselIntervalMS: interval.Milliseconds(),
	}
}

// Form exposes previous input and field errors to the subscription template.
type Form struct {
	Old    map[string][]string
	Errors map[string][]string

	CommunicationFrequencies []format.Option
	DiscoverySources         []format.Option
	PreferredPlatforms       []format.Option
	ContentPreferences       []format.Option
	WouldShare               []format.Option
	Ratings                  []int
}

// NewForm builds the form view. Email pre-fills the email field when there
// is no previous input.
func NewForm(old, errs map[string][]string, email string) *Form {
	if old == nil {
		old = map[string][]string{}
	}
	if len(old["email"]) == 0 && email != "" {
		old["email"] = []string{email}
	}
	return &Form{
		Old:                      old,
		Errors:                   errs,
		CommunicationFrequencies: format.CommunicationFrequencyOptions,
		DiscoverySources:         format.DiscoverySourceOptions,
		PreferredPlatforms:       format.PreferredPlatformOptions,
		ContentPreferences:       format.ContentPreferenceOptions,
		WouldShare:               format.WouldShareOptions,
		Ratings:                  []int{1, 2, 3, 4, 5},
	}
}

// Value returns the previous value of a field.
func (f *Form) Value(field string) string {
	if v := f.Old[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Checked reports whether value was among the previous values of field.
func (f *Form) Checked(field string, value any) bool {
	return slices.Contains(f.Old[field], fmt.Sprint(value))
}

// Error returns the first error for field, falling back to errors reported
// against its elements (content_preferences.0 and so on).
func (f *Form) Error(field string) string {
	if msgs := f.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	for _, key := range slices.Sorted(maps.Keys(f.Errors)) {
		if strings.HasPrefix(key, field+".") && len(f.Errors[key]) > 0 {
			return f.Errors[key][0]
		}
	}
	return ""
}

// SetHero selects the landing page carousel on the gallery page.
const SetHero = "hero"

// GalleryView is the server-rendered lightbox.
type GalleryView struct {
	Set    string
	State  carousel.State
	Slides []carousel.Slide
	Open   bool
}

// Link returns the gallery URL that applies action to the open image.
func (g *GalleryView) Link(action string) string {
	q := lightboxQuery(g.Set, g.State.Index)
	q.Set("action", action)
	return "/gallery?" + q.Encode()
}

// Href returns the gallery URL that opens the lightbox at index i.
func (g *GalleryView) Href(i int) string {
	return LightboxURL(g.Set, i)
}

// LightboxURL returns the gallery URL that opens slide i of set.
func LightboxURL(set string, i int) string {
	return "/gallery?" + lightboxQuery(set, i).Encode()
}

func lightboxQuery(set string, i int) url.Values {
	q := url.Values{}
	q.Set("open", "1")
	q.Set("i", fmt.Sprint(i))
	if set != "" {
		q.Set("set", set)
	}
	return q
}

// Position is the 1-based counter shown in the lightbox.
func (g *GalleryView) Position() string {
	return fmt.Sprintf("%d / %d", g.State.Index+1, len(g.Slides))
}
