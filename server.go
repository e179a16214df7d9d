package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saritsop/portfolio/content"
	"github.com/saritsop/portfolio/reveal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type server struct {
	cfg    Config
	site   *siteView
	pages  *pageStore
	mailer mailer
	tmpl   *template.Template
	static fs.FS
	ips    *ipHasher
}

// newServer wires the site content into a server. A nil mailer disables
// the contact form.
func newServer(cfg Config, site *content.Site, m mailer) (*server, error) {
	view, err := newSiteView(site, cfg.AssetsPath)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "parse templates")
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, goerr.Wrap(err, "open embedded static files")
	}

	ips, err := newIPHasher()
	if err != nil {
		return nil, goerr.Wrap(err, "generate ip hashing salt")
	}

	return &server{
		cfg:    cfg,
		site:   view,
		pages:  newPageStore(cfg.PageTTL, cfg.PageMax, cfg.RevealOptions(), cfg.AccordionPolicy, site.HistoryItems()),
		mailer: m,
		tmpl:   tmpl,
		static: static,
		ips:    ips,
	}, nil
}

func (s *server) routes(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger, s.ips))
	r.SetHTMLTemplate(s.tmpl)

	r.StaticFS("/static", http.FS(s.static))
	r.Static(s.cfg.AssetsPath, s.cfg.AssetsDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/", s.handleIndex)

	// HTMX endpoints; every response is a fragment of the page
	pg := r.Group("/page/:sid")
	pg.POST("/sections/:name/visibility", s.handleVisibility)
	pg.POST("/history/:id/toggle", s.handleToggle)

	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)

	return r
}

func (s *server) handleIndex(c *gin.Context) {
	p, err := s.pages.create()
	if err != nil {
		ctxlog.From(c.Request.Context()).Error("Failed to create page", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	p.mu.Lock()
	view := s.indexView(p)
	p.mu.Unlock()

	c.HTML(http.StatusOK, "index", view)
}

// page looks up the page of the request. An unknown or expired page
// tells HTMX to reload, which starts a fresh page.
func (s *server) page(c *gin.Context) (*page, bool) {
	p, ok := s.pages.get(c.Param("sid"))
	if !ok {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusGone)
		return nil, false
	}
	return p, true
}

type visibilityForm struct {
	Ratio        float64 `form:"ratio" binding:"min=0,max=1"`
	Intersecting bool    `form:"intersecting"`
}

func (s *server) handleVisibility(c *gin.Context) {
	var form visibilityForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid visibility report")
		return
	}

	p, ok := s.page(c)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	name := c.Param("name")
	ctrl, ok := p.reveal(name)
	if !ok {
		c.String(http.StatusNotFound, "unknown section")
		return
	}

	shown, observing := ctrl.Shown(), ctrl.Observing()
	p.observer.deliver(sectionElement(name), reveal.Entry{Ratio: form.Ratio, Intersecting: form.Intersecting})

	// Nothing changed, so HTMX keeps the element and its observer.
	if ctrl.Shown() == shown && ctrl.Observing() == observing {
		c.Status(http.StatusNoContent)
		return
	}

	ctxlog.From(c.Request.Context()).Debug("Section visibility changed",
		"page", p.id,
		"section", name,
		"shown", ctrl.Shown(),
		"observing", ctrl.Observing(),
	)
	c.HTML(http.StatusOK, "reveal", s.sectionView(s.pageData(p), p, name, ctrl))
}

func (s *server) handleToggle(c *gin.Context) {
	p, ok := s.page(c)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	id := c.Param("id")
	if !p.history.Has(id) {
		c.String(http.StatusNotFound, "unknown history item")
		return
	}
	p.history.Toggle(id)

	c.HTML(http.StatusOK, "history-list", s.historyView(p))
}

func (s *server) handleContactForm(c *gin.Context) {
	if s.mailer == nil {
		c.String(http.StatusNotFound, "contact form disabled")
		return
	}
	c.HTML(http.StatusOK, "contact-form", gin.H{
		"title": "Contact Me",
	})
}

func (s *server) handleContact(c *gin.Context) {
	if s.mailer == nil {
		c.String(http.StatusNotFound, "contact form disabled")
		return
	}

	var msg contactMessage
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		ctxlog.From(c.Request.Context()).Error("Failed to send contact email", "error", err)
		c.HTML(http.StatusOK, "contact-error", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
