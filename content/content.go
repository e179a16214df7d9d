// Package content holds the static copy of the site: hero text, projects,
// work history, testimonials and contact links. It is compiled into the
// binary from site.yaml.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saritsop/portfolio/accordion"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

var ErrInvalidContent = goerr.New("invalid site content")

type Site struct {
	Owner        Owner         `yaml:"owner"`
	Nav          []Link        `yaml:"nav"`
	Hero         Hero          `yaml:"hero"`
	Projects     []Project     `yaml:"projects"`
	About        About         `yaml:"about"`
	History      []HistoryItem `yaml:"history"`
	Testimonials []Testimonial `yaml:"testimonials"`
	Contact      Contact       `yaml:"contact"`
}

type Owner struct {
	ShortName string `yaml:"short_name"`
	FullName  string `yaml:"full_name"`
}

type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Hero struct {
	Headline string   `yaml:"headline"`
	Tagline  string   `yaml:"tagline"`
	Intro    Markdown `yaml:"intro"`
	Resume   string   `yaml:"resume"`
}

type Project struct {
	Title string `yaml:"title"`
	Blurb string `yaml:"blurb"`
	Href  string `yaml:"href"`
	Image string `yaml:"image"`
	Tag   string `yaml:"tag"`
}

type About struct {
	Lead string   `yaml:"lead"`
	Rest string   `yaml:"rest"`
	Body Markdown `yaml:"body"`
}

type HistoryItem struct {
	ID           string   `yaml:"id"`
	Year         string   `yaml:"year"`
	Organization string   `yaml:"organization"`
	Role         string   `yaml:"role"`
	Body         Markdown `yaml:"body"`
}

type Testimonial struct {
	Name  string   `yaml:"name"`
	URL   string   `yaml:"url"`
	Title string   `yaml:"title"`
	Quote Markdown `yaml:"quote"`
}

type Contact struct {
	Lead     string `yaml:"lead"`
	Rest     string `yaml:"rest"`
	Blurb    string `yaml:"blurb"`
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedin"`
}

// Markdown is prose authored as Markdown.
type Markdown string

var md = goldmark.New()

// HTML renders the text with goldmark. Raw HTML in the source is not
// passed through.
func (m Markdown) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(m), &buf); err != nil {
		return "", goerr.Wrap(err, "render markdown")
	}
	return template.HTML(buf.String()), nil
}

// Load parses the embedded site.yaml.
func Load() (*Site, error) {
	return Parse(siteYAML)
}

func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, goerr.Wrap(err, "decode site content")
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) Validate() error {
	if s.Owner.ShortName == "" {
		return goerr.Wrap(ErrInvalidContent, "owner short_name is required")
	}
	for i, p := range s.Projects {
		if p.Title == "" || p.Href == "" {
			return goerr.Wrap(ErrInvalidContent, "project needs title and href", goerr.V("position", i))
		}
	}
	if _, err := accordion.New(accordion.MultiOpen, s.HistoryItems()); err != nil {
		return goerr.Wrap(errors.Join(ErrInvalidContent, err), "invalid history")
	}
	return nil
}

// HistoryItems returns the history entries in display order. Bodies are
// left as Markdown source.
func (s *Site) HistoryItems() []accordion.Item {
	out := make([]accordion.Item, len(s.History))
	for i, h := range s.History {
		out[i] = accordion.Item{
			ID:           h.ID,
			Year:         h.Year,
			Organization: h.Organization,
			Role:         h.Role,
			Body:         string(h.Body),
		}
	}
	return out
}

// AssetURL joins base and p. Absolute URLs and mailto links are
// returned unchanged.
func AssetURL(base, p string) string {
	if strings.Contains(p, "://") || strings.HasPrefix(p, "mailto:") {
		return p
	}
	base = strings.TrimSuffix(base, "/")
	return base + "/" + strings.TrimPrefix(p, "/")
}
