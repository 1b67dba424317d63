package probe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/mailsleuth/internal/model"
)

// negativeMarkers are phrases that sites put in the title of soft-404 pages
// served with status 200.
var negativeMarkers = []string{
	"not found",
	"404",
	"page doesn't exist",
	"error",
}

// untitledSampleSize is how much visible text is checked for negative
// markers when a page has no title.
const untitledSampleSize = 512

// Page is the parsed view of a fetched document.
type Page struct {
	Title       string
	Description string

	// Text is the visible text of the body with whitespace collapsed.
	Text string

	doc *goquery.Document
}

// ParsePage parses body. Malformed HTML is tolerated; an error is returned
// only when the reader fails, which cannot happen for a string.
func ParsePage(body string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, noscript, template").Remove()

	p := &Page{
		Title: collapseSpace(doc.Find("title").First().Text()),
		Text:  collapseSpace(doc.Find("body").Text()),
		doc:   doc,
	}
	p.Description = firstMeta(doc,
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[name="twitter:description"]`,
	)
	return p, nil
}

// IsProfile reports whether a response with the given status and page is a
// positive match.
func IsProfile(status int, p *Page) bool {
	if status != 200 || p == nil {
		return false
	}

	sample := p.Title
	if sample == "" {
		sample = p.Text
		if len(sample) > untitledSampleSize {
			sample = sample[:untitledSampleSize]
		}
	}
	return !containsNegativeMarker(sample)
}

func containsNegativeMarker(s string) bool {
	s = strings.ToLower(s)
	for _, m := range negativeMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// fieldRule extracts one field with a CSS selector.
type fieldRule struct {
	field    string
	selector string
}

// extractionRules are the platform-specific fields read from a matched page.
var extractionRules = map[model.Platform][]fieldRule{
	model.PlatformGitHub: {
		{field: "repos", selector: "span.Counter"},
		{field: "contributions", selector: "h2.f4.text-normal.mb-2"},
		{field: "bio", selector: "div.p-note.user-profile-bio"},
	},
	model.PlatformLinkedIn: {
		{field: "headline", selector: "div.text-body-medium"},
		{field: "location", selector: "span.text-body-small.inline.t-black--light.break-words"},
	},
	model.PlatformTwitter: {
		{field: "followers", selector: "span.followers-count"},
		{field: "bio", selector: "div.bio"},
	},
}

// Extract returns the fields that could be read from p for platform. Missing
// elements are skipped; the result is never nil.
func Extract(platform model.Platform, p *Page) map[string]string {
	fields := make(map[string]string)
	if p == nil || p.doc == nil {
		return fields
	}

	if p.Description != "" {
		fields["description"] = p.Description
	}
	for _, rule := range extractionRules[platform] {
		v := collapseSpace(p.doc.Find(rule.selector).First().Text())
		if v != "" {
			fields[rule.field] = v
		}
	}
	return fields
}

func firstMeta(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = collapseSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
