package main

import (
	"html/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saritsop/portfolio/content"
	"github.com/saritsop/portfolio/reveal"
)

// siteView is the site content with Markdown rendered and asset paths
// resolved. It is built once at startup.
type siteView struct {
	*content.Site
	Resume       string
	HeroIntro    template.HTML
	AboutBody    template.HTML
	Projects     []content.Project
	Testimonials []testimonialView
	historyHTML  map[string]template.HTML
}

type testimonialView struct {
	content.Testimonial
	QuoteHTML template.HTML
}

func newSiteView(site *content.Site, assetsPath string) (*siteView, error) {
	v := &siteView{
		Site:        site,
		Resume:      content.AssetURL(assetsPath, site.Hero.Resume),
		historyHTML: make(map[string]template.HTML, len(site.History)),
	}

	var err error
	if v.HeroIntro, err = site.Hero.Intro.HTML(); err != nil {
		return nil, goerr.Wrap(err, "hero intro")
	}
	if v.AboutBody, err = site.About.Body.HTML(); err != nil {
		return nil, goerr.Wrap(err, "about body")
	}

	for _, p := range site.Projects {
		p.Href = content.AssetURL(assetsPath, p.Href)
		p.Image = content.AssetURL(assetsPath, p.Image)
		v.Projects = append(v.Projects, p)
	}
	for _, t := range site.Testimonials {
		quote, err := t.Quote.HTML()
		if err != nil {
			return nil, goerr.Wrap(err, "testimonial quote", goerr.V("name", t.Name))
		}
		v.Testimonials = append(v.Testimonials, testimonialView{Testimonial: t, QuoteHTML: quote})
	}
	for _, h := range site.History {
		body, err := h.Body.HTML()
		if err != nil {
			return nil, goerr.Wrap(err, "history body", goerr.V("id", h.ID))
		}
		v.historyHTML[h.ID] = body
	}
	return v, nil
}

// pageData is shared by every fragment of one page load.
type pageData struct {
	PageID      string
	Site        *siteView
	ContactForm bool
	Year        int
}

// sectionView renders one section inside its reveal wrapper.
type sectionView struct {
	*pageData
	Name       string
	Classes    string
	DelayMs    int64
	Observing  bool
	Threshold  float64
	RootMargin string
	History    historyView
}

type historyView struct {
	PageID string
	Items  []historyItemView
}

type historyItemView struct {
	ID           string
	Year         string
	Organization string
	Role         string
	Body         template.HTML
	Open         bool
}

type indexView struct {
	*pageData
	Sections []sectionView
}

func (s *server) pageData(p *page) *pageData {
	return &pageData{
		PageID:      p.id,
		Site:        s.site,
		ContactForm: s.mailer != nil,
		Year:        time.Now().Year(),
	}
}

// Callers hold p.mu.
func (s *server) historyView(p *page) historyView {
	v := historyView{PageID: p.id}
	for _, it := range p.history.Items() {
		v.Items = append(v.Items, historyItemView{
			ID:           it.ID,
			Year:         it.Year,
			Organization: it.Organization,
			Role:         it.Role,
			Body:         s.site.historyHTML[it.ID],
			Open:         p.history.IsOpen(it.ID),
		})
	}
	return v
}

// Callers hold p.mu.
func (s *server) sectionView(data *pageData, p *page, name string, ctrl *reveal.Controller) sectionView {
	opts := ctrl.Options()
	v := sectionView{
		pageData:   data,
		Name:       name,
		Classes:    ctrl.Classes(),
		DelayMs:    opts.DelayMillis(),
		Observing:  ctrl.Observing(),
		Threshold:  opts.Threshold,
		RootMargin: opts.RootMargin,
	}
	if name == "history" {
		v.History = s.historyView(p)
	}
	return v
}

// Callers hold p.mu.
func (s *server) indexView(p *page) indexView {
	data := s.pageData(p)
	v := indexView{pageData: data}
	for _, sec := range sections {
		ctrl, _ := p.reveal(sec.name)
		v.Sections = append(v.Sections, s.sectionView(data, p, sec.name, ctrl))
	}
	return v
}
