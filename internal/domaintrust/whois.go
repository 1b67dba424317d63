package domaintrust

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/nao1215/mailsleuth/internal/model"
)

// DefaultWhoisTimeout bounds one WHOIS query, including the referral to the
// registrar's server.
const DefaultWhoisTimeout = 10 * time.Second

// WhoisRecord is the registration data used for scoring and reporting.
type WhoisRecord struct {
	CreatedDate  *time.Time
	Organization string
	Country      string
	Registrar    string
}

// WhoisClient looks up registration data for a domain.
type WhoisClient interface {
	Lookup(ctx context.Context, domain string) (WhoisRecord, error)
}

// Whois is the WhoisClient backed by github.com/likexian/whois.
type Whois struct {
	client *whois.Client
}

// NewWhois creates a Whois client. A non-positive timeout selects
// DefaultWhoisTimeout.
func NewWhois(timeout time.Duration) *Whois {
	if timeout <= 0 {
		timeout = DefaultWhoisTimeout
	}
	return &Whois{client: whois.NewClient().SetTimeout(timeout)}
}

// Lookup queries WHOIS for domain and parses the answer. Failures wrap
// model.ErrLookup.
func (w *Whois) Lookup(ctx context.Context, domain string) (WhoisRecord, error) {
	type answer struct {
		raw string
		err error
	}

	// The whois client has no context support; abandon it on cancellation.
	ch := make(chan answer, 1)
	go func() {
		raw, err := w.client.Whois(domain)
		ch <- answer{raw: raw, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return WhoisRecord{}, fmt.Errorf("%w: whois %s: %w", model.ErrLookup, domain, ctx.Err())
	case a = <-ch:
	}
	if a.err != nil {
		return WhoisRecord{}, fmt.Errorf("%w: whois %s: %w", model.ErrLookup, domain, a.err)
	}

	return ParseWhois(a.raw)
}

// ParseWhois extracts a WhoisRecord from a raw WHOIS answer.
func ParseWhois(raw string) (WhoisRecord, error) {
	info, err := whoisparser.Parse(raw)
	if err != nil {
		return WhoisRecord{}, fmt.Errorf("%w: parse whois answer: %w", model.ErrLookup, err)
	}

	var rec WhoisRecord
	if info.Domain != nil {
		switch {
		case info.Domain.CreatedDateInTime != nil:
			t := info.Domain.CreatedDateInTime.UTC()
			rec.CreatedDate = &t
		case info.Domain.CreatedDate != "":
			if t, err := ParseCreationDate(info.Domain.CreatedDate); err == nil {
				rec.CreatedDate = &t
			}
		}
	}
	if info.Registrant != nil {
		rec.Organization = strings.TrimSpace(info.Registrant.Organization)
		rec.Country = strings.TrimSpace(info.Registrant.Country)
	}
	if info.Registrar != nil {
		rec.Registrar = strings.TrimSpace(info.Registrar.Name)
		if rec.Registrar == "" {
			rec.Registrar = strings.TrimSpace(info.Registrar.Organization)
		}
	}
	return rec, nil
}

// creationDateLayouts are the date formats seen in registry answers that
// whois-parser does not normalize itself.
var creationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
}

// ParseCreationDate parses a WHOIS creation date. When a registry reports
// several dates separated by commas or spaces, the first parseable one is
// used.
func ParseCreationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	candidates := []string{s}
	if i := strings.IndexAny(s, ","); i > 0 {
		candidates = append(candidates, strings.TrimSpace(s[:i]))
	}
	if f := strings.Fields(s); len(f) > 1 {
		candidates = append(candidates, f[0])
	}

	for _, c := range candidates {
		for _, layout := range creationDateLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t.UTC(), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized creation date %q", model.ErrParse, s)
}
