// Package content loads the site copy, carousel slides and shows list.
package content

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/ggrmusic/ggr-web/pkg/carousel"
)

//go:embed data/site.yaml
var embedded embed.FS

// Show is one entry on the shows page.
type Show struct {
	Title string `yaml:"title"`
	Image string `yaml:"image"`
	Alt   string `yaml:"alt"`
	// Description is HTML; it is sanitized on load.
	Description string `yaml:"description"`
}

// SafeDescription returns the sanitized description for templates.
func (s Show) SafeDescription() template.HTML {
	return template.HTML(s.Description)
}

// Offering is a service blurb on the landing page.
type Offering struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Social is a footer link.
type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Site is everything the page templates render.
type Site struct {
	Name      string           `yaml:"name"`
	Tagline   string           `yaml:"tagline"`
	Hero      []carousel.Slide `yaml:"hero"`
	Gallery   []carousel.Slide `yaml:"gallery"`
	Shows     []Show           `yaml:"shows"`
	Offerings []Offering       `yaml:"offerings"`
	Socials   []Social         `yaml:"socials"`
}

// Default loads the site content compiled into the binary.
func Default() (*Site, error) {
	return Load(embedded, "data/site.yaml")
}

// Load reads and validates a site file from fsys.
func Load(fsys fs.FS, name string) (*Site, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes site YAML, sanitizes show descriptions and checks that the
// carousels are usable.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}

	if len(site.Hero) == 0 {
		return nil, fmt.Errorf("site content: hero: %w", carousel.ErrNoSlides)
	}
	if len(site.Gallery) == 0 {
		return nil, fmt.Errorf("site content: gallery: %w", carousel.ErrNoSlides)
	}
	for i, s := range append(append([]carousel.Slide(nil), site.Hero...), site.Gallery...) {
		if strings.TrimSpace(s.Image) == "" {
			return nil, fmt.Errorf("site content: slide %d has no image", i)
		}
	}

	policy := bluemonday.UGCPolicy()
	for i := range site.Shows {
		site.Shows[i].Description = policy.Sanitize(site.Shows[i].Description)
	}

	return &site, nil
}
