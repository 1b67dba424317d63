package probe

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/mailsleuth/internal/model"
)

// maxLinkedProfiles bounds the links kept per page.
const maxLinkedProfiles = 20

// linkPattern recognizes a profile URL on one network. The first submatch
// is the handle.
type linkPattern struct {
	network string
	hosts   []string
	re      *regexp.Regexp
}

// linkPatterns match profile root URLs only; deep links such as posts or
// repositories are ignored. Mastodon matches any host and must stay last.
var linkPatterns = []linkPattern{
	{"twitter", []string{"twitter.com", "x.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.|mobile\.)?(?:twitter|x)\.com/@?([A-Za-z0-9_]{1,15})/?(?:[?#].*)?$`)},
	{"facebook", []string{"facebook.com", "fb.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.|m\.)?(?:facebook|fb)\.com/([A-Za-z0-9.]{5,})/?(?:[?#].*)?$`)},
	{"instagram", []string{"instagram.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?instagram\.com/([A-Za-z0-9_.]{1,30})/?(?:[?#].*)?$`)},
	{"linkedin", []string{"linkedin.com"},
		regexp.MustCompile(`(?i)^https?://(?:[a-z]{2,3}\.|www\.)?linkedin\.com/in/([A-Za-z0-9_%-]+)/?(?:[?#].*)?$`)},
	{"github", []string{"github.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?github\.com/([A-Za-z0-9-]{1,39})/?(?:[?#].*)?$`)},
	{"gitlab", []string{"gitlab.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?gitlab\.com/([A-Za-z0-9_.-]+)/?(?:[?#].*)?$`)},
	{"youtube", []string{"youtube.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.|m\.)?youtube\.com/(?:@|c/|user/|channel/)([A-Za-z0-9_.-]+)/?(?:[?#].*)?$`)},
	{"telegram", []string{"t.me", "telegram.me"},
		regexp.MustCompile(`(?i)^https?://(?:t|telegram)\.me/([A-Za-z0-9_]{5,})/?(?:[?#].*)?$`)},
	{"reddit", []string{"reddit.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.|old\.)?reddit\.com/(?:u|user)/([A-Za-z0-9_-]+)/?(?:[?#].*)?$`)},
	{"tiktok", []string{"tiktok.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?tiktok\.com/@([A-Za-z0-9_.]+)/?(?:[?#].*)?$`)},
	{"keybase", []string{"keybase.io"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?keybase\.io/([A-Za-z0-9_]+)/?(?:[?#].*)?$`)},
	{"patreon", []string{"patreon.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?patreon\.com/([A-Za-z0-9_]+)/?(?:[?#].*)?$`)},
	{"medium", []string{"medium.com"},
		regexp.MustCompile(`(?i)^https?://(?:www\.)?medium\.com/@([A-Za-z0-9_.-]+)/?(?:[?#].*)?$`)},
	{"mastodon", nil,
		regexp.MustCompile(`(?i)^https?://[A-Za-z0-9.-]+\.[a-z]{2,}/@([A-Za-z0-9_]+)/?(?:[?#].*)?$`)},
}

// reservedHandles are site paths that look like handles in navigation and
// share buttons.
var reservedHandles = map[string]bool{
	"about": true, "blog": true, "company": true, "contact": true,
	"enterprise": true, "events": true, "explore": true, "features": true,
	"groups": true, "hashtag": true, "help": true, "home": true,
	"i": true, "intent": true, "jobs": true, "join": true,
	"legal": true, "login": true, "marketplace": true, "messages": true,
	"notifications": true, "orgs": true, "pages": true, "policies": true,
	"pricing": true, "privacy": true, "search": true, "security": true,
	"settings": true, "share": true, "sharer": true, "sharer.php": true,
	"signup": true, "sponsors": true, "terms": true, "topics": true,
	"tos": true, "watch": true,
}

// LinkedProfiles returns the accounts on other networks that p links to, in
// document order. Links back to the network of pageURL are skipped, as are
// duplicates.
func LinkedProfiles(p *Page, pageURL string) []model.LinkedProfile {
	if p == nil || p.doc == nil {
		return nil
	}
	self := networkOf(pageURL)

	var links []model.LinkedProfile
	seen := make(map[string]bool)

	p.doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)

		for _, lp := range linkPatterns {
			m := lp.re.FindStringSubmatch(href)
			if m == nil {
				continue
			}
			handle := m[1]
			key := lp.network + "/" + strings.ToLower(handle)
			if lp.network == self || reservedHandles[strings.ToLower(handle)] || seen[key] {
				break
			}
			seen[key] = true
			links = append(links, model.LinkedProfile{Network: lp.network, Handle: handle, URL: href})
			break
		}
		return len(links) < maxLinkedProfiles
	})
	return links
}

// networkOf returns the network hosting rawURL, or "" when unknown.
func networkOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, lp := range linkPatterns {
		for _, h := range lp.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return lp.network
			}
		}
	}
	return ""
}
