package content_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saritsop/portfolio/accordion"
	"github.com/saritsop/portfolio/content"
)

func TestLoadEmbeddedSite(t *testing.T) {
	site, err := content.Load()
	gt.NoError(t, err).Required()

	gt.Equal(t, site.Owner.ShortName, "Sarit")
	gt.Equal(t, len(site.Projects), 4)
	gt.Equal(t, len(site.Testimonials), 3)

	items := site.HistoryItems()
	gt.Equal(t, len(items), 7)
	gt.Equal(t, items[0].ID, "exp-1")
	gt.Equal(t, items[2].Organization, "QunaSys")

	_, err = accordion.New(accordion.SingleOpen, items)
	gt.NoError(t, err)
}

func TestParseRejectsDuplicateHistory(t *testing.T) {
	data := []byte(`
owner:
  short_name: A
history:
  - id: exp-1
    organization: X
  - id: exp-1
    organization: Y
`)
	_, err := content.Parse(data)
	gt.True(t, errors.Is(err, content.ErrInvalidContent))
	gt.True(t, errors.Is(err, accordion.ErrDuplicateID))
}

func TestParseRequiresOwner(t *testing.T) {
	_, err := content.Parse([]byte("projects: []\n"))
	gt.True(t, errors.Is(err, content.ErrInvalidContent))
}

func TestParseRejectsProjectWithoutHref(t *testing.T) {
	data := []byte(`
owner:
  short_name: A
projects:
  - title: Orcha
`)
	_, err := content.Parse(data)
	gt.True(t, errors.Is(err, content.ErrInvalidContent))
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := content.Parse([]byte("owner: ["))
	gt.Error(t, err)
}

func TestMarkdownHTML(t *testing.T) {
	html, err := content.Markdown("saves *clarity* for later").HTML()
	gt.NoError(t, err).Required()
	gt.S(t, string(html)).Contains("<em>clarity</em>")

	html, err = content.Markdown("<script>alert(1)</script>").HTML()
	gt.NoError(t, err).Required()
	gt.S(t, string(html)).NotContains("<script>")
}

func TestAssetURL(t *testing.T) {
	gt.Equal(t, content.AssetURL("/assets", "Thumbnail_SM.png"), "/assets/Thumbnail_SM.png")
	gt.Equal(t, content.AssetURL("/assets/", "/sample.pdf"), "/assets/sample.pdf")
	gt.Equal(t, content.AssetURL("", "resume.pdf"), "/resume.pdf")
	gt.Equal(t, content.AssetURL("/assets", "https://example.com/a.png"), "https://example.com/a.png")
	gt.Equal(t, content.AssetURL("/assets", "mailto:a@example.com"), "mailto:a@example.com")
}
