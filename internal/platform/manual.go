package platform

import (
	"net/url"

	"github.com/nao1215/mailsleuth/internal/model"
)

// Titles of the manual check lists.
const (
	BreachCheckTitle  = "Check these breach databases manually"
	TechPresenceTitle = "Check technical presence"
)

// ManualChecks returns breach-database and technical-presence URLs for the
// address. They are listed in the report for a human to open; the tool never
// requests them, since the breach sites require interactive use.
func ManualChecks(email, username string) []model.ManualCheck {
	q := url.QueryEscape(email)
	p := url.PathEscape(email)
	u := url.PathEscape(username)

	return []model.ManualCheck{
		{
			Title: BreachCheckTitle,
			URLs: []string{
				"https://haveibeenpwned.com/account/" + p,
				"https://ghostproject.fr/search/" + p,
				"https://dehashed.com/search?query=" + q,
				"https://intelx.io/?s=" + q,
				"https://leakcheck.io/search?query=" + q,
			},
		},
		{
			Title: TechPresenceTitle,
			URLs: []string{
				"https://npm.io/~" + u,
				"https://rubygems.org/profiles/" + u,
				"https://hub.docker.com/u/" + u,
				"https://wordpress.org/support/users/" + u,
				"https://gitlab.com/" + u,
			},
		},
	}
}
