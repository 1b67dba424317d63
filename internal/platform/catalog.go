package platform

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/nao1215/mailsleuth/internal/model"
)

// Template is one profile URL pattern. Pattern contains a single %s that is
// replaced with the path-escaped username of Variant.
type Template struct {
	Pattern string
	Variant Variant
}

// Entry lists the templates of one platform in rank order.
type Entry struct {
	Platform  model.Platform
	Templates []Template
}

// Catalog is an ordered, immutable set of platform entries.
type Catalog struct {
	entries []Entry
}

// NewCatalog creates a catalog from entries. Entry order is preserved and is
// the order of the probe results in the final report.
func NewCatalog(entries ...Entry) *Catalog {
	return &Catalog{entries: slices.Clone(entries)}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return NewCatalog(defaultEntries...)
}

// Platforms returns the platforms of the catalog in order.
func (c *Catalog) Platforms() []model.Platform {
	platforms := make([]model.Platform, len(c.entries))
	for i, e := range c.entries {
		platforms[i] = e.Platform
	}
	return platforms
}

// Len returns the number of platforms in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Without returns a copy of the catalog lacking the given platforms.
func (c *Catalog) Without(platforms ...model.Platform) *Catalog {
	kept := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !slices.Contains(platforms, e.Platform) {
			kept = append(kept, e)
		}
	}
	return &Catalog{entries: kept}
}

// CandidatesFor generates candidate URLs for id, one group per platform in
// catalog order. Within a group, VariantRank follows template order. Templates
// whose variant cannot be built for id are skipped, and a URL identical to an
// earlier candidate of the same platform is dropped.
func (c *Catalog) CandidatesFor(id model.EmailIdentity) []model.PlatformCandidates {
	groups := make([]model.PlatformCandidates, 0, len(c.entries))
	for _, e := range c.entries {
		group := model.PlatformCandidates{
			Platform:   e.Platform,
			Candidates: make([]model.CandidateURL, 0, len(e.Templates)),
		}
		for _, tmpl := range e.Templates {
			username, ok := tmpl.Variant.Username(id)
			if !ok {
				continue
			}
			u := fmt.Sprintf(tmpl.Pattern, url.PathEscape(username))
			if containsURL(group.Candidates, u) {
				continue
			}
			group.Candidates = append(group.Candidates, model.CandidateURL{
				Platform:    e.Platform,
				URL:         u,
				VariantRank: len(group.Candidates),
			})
		}
		groups = append(groups, group)
	}
	return groups
}

func containsURL(candidates []model.CandidateURL, u string) bool {
	for _, c := range candidates {
		if c.URL == u {
			return true
		}
	}
	return false
}

// defaultEntries mirror the profile URL layouts of each site. The raw local
// part is always tried first; name combinations follow the forms each site
// commonly uses for handles.
var defaultEntries = []Entry{
	{model.PlatformLinkedIn, []Template{
		{"https://www.linkedin.com/in/%s", VariantRaw},
		{"https://www.linkedin.com/in/%s", VariantAllHyphen},
		{"https://www.linkedin.com/in/%s", VariantHyphen},
	}},
	{model.PlatformTwitter, []Template{
		{"https://twitter.com/%s", VariantRaw},
		{"https://twitter.com/%s", VariantUnderscore},
	}},
	{model.PlatformGitHub, []Template{
		{"https://github.com/%s", VariantRaw},
		{"https://github.com/%s", VariantConcat},
		{"https://github.com/%s", VariantHyphen},
	}},
	{model.PlatformInstagram, []Template{
		{"https://www.instagram.com/%s", VariantRaw},
		{"https://www.instagram.com/%s", VariantUnderscore},
	}},
	{model.PlatformMedium, []Template{
		{"https://medium.com/@%s", VariantRaw},
		{"https://medium.com/@%s", VariantDot},
	}},
	{model.PlatformDevTo, []Template{
		{"https://dev.to/%s", VariantRaw},
		{"https://dev.to/%s", VariantConcat},
	}},
	{model.PlatformStackOverflow, []Template{
		{"https://stackoverflow.com/users/%s", VariantRaw},
		{"https://stackoverflow.com/users/%s", VariantAllHyphen},
	}},
	{model.PlatformBehance, []Template{
		{"https://www.behance.net/%s", VariantRaw},
		{"https://www.behance.net/%s", VariantConcat},
	}},
	{model.PlatformDribbble, []Template{
		{"https://dribbble.com/%s", VariantRaw},
		{"https://dribbble.com/%s", VariantConcat},
	}},
	{model.PlatformFacebook, []Template{
		{"https://www.facebook.com/%s", VariantRaw},
		{"https://www.facebook.com/%s", VariantAllDot},
	}},
	{model.PlatformYouTube, []Template{
		{"https://www.youtube.com/@%s", VariantRaw},
		{"https://www.youtube.com/@%s", VariantConcat},
	}},
	{model.PlatformReddit, []Template{
		{"https://www.reddit.com/user/%s", VariantRaw},
		{"https://www.reddit.com/user/%s", VariantUnderscore},
	}},
	{model.PlatformKaggle, []Template{
		{"https://www.kaggle.com/%s", VariantRaw},
		{"https://www.kaggle.com/%s", VariantConcat},
	}},
	{model.PlatformPyPI, []Template{
		{"https://pypi.org/user/%s/", VariantRaw},
		{"https://pypi.org/user/%s/", VariantConcat},
	}},
	{model.PlatformNpm, []Template{
		{"https://www.npmjs.com/~%s", VariantRaw},
		{"https://www.npmjs.com/~%s", VariantConcat},
	}},
	{model.PlatformRubyGems, []Template{
		{"https://rubygems.org/profiles/%s", VariantRaw},
		{"https://rubygems.org/profiles/%s", VariantConcat},
	}},
	{model.PlatformDockerHub, []Template{
		{"https://hub.docker.com/u/%s", VariantRaw},
		{"https://hub.docker.com/u/%s", VariantConcat},
	}},
	{model.PlatformGitLab, []Template{
		{"https://gitlab.com/%s", VariantRaw},
		{"https://gitlab.com/%s", VariantDot},
		{"https://gitlab.com/%s", VariantConcat},
	}},
	{model.PlatformWordPress, []Template{
		{"https://wordpress.org/support/users/%s/", VariantRaw},
		{"https://wordpress.org/support/users/%s/", VariantConcat},
	}},
}
