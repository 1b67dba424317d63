package domaintrust

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/nao1215/mailsleuth/internal/model"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each lookup step.
const DefaultTimeout = 10 * time.Second

// Analyzer builds a DomainProfile from WHOIS and DNS.
type Analyzer struct {
	whois    WhoisClient
	resolver Resolver
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout sets the per-step timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer.
func New(whoisClient WhoisClient, resolver Resolver, opts ...Option) *Analyzer {
	a := &Analyzer{
		whois:    whoisClient,
		resolver: resolver,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze looks up domain. It never fails; each step that errors leaves its
// part of the profile empty.
func (a *Analyzer) Analyze(ctx context.Context, domain string) model.DomainProfile {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	profile := model.DomainProfile{
		Domain:     domain,
		MXRecords:  []string{},
		TXTRecords: []string{},
	}

	var (
		rec      WhoisRecord
		whoisErr error
		mx       []string
		txt      []string
		dmarc    []string
	)

	// A plain Group: a failed step must not cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		rec, whoisErr = a.lookupWhois(ctx, domain)
		return nil
	})
	g.Go(func() error {
		mx = a.lookupDNS(ctx, domain, dns.TypeMX)
		return nil
	})
	g.Go(func() error {
		txt = a.lookupDNS(ctx, domain, dns.TypeTXT)
		return nil
	})
	g.Go(func() error {
		dmarc = a.lookupDNS(ctx, "_dmarc."+domain, dns.TypeTXT)
		return nil
	})
	_ = g.Wait() //nolint:errcheck // steps never return errors

	if whoisErr != nil {
		profile.WhoisError = model.NewProbeError(whoisErr)
	} else {
		profile.RegistrationDate = rec.CreatedDate
		profile.Organization = rec.Organization
		profile.Country = rec.Country
		profile.Registrar = rec.Registrar
	}

	if mx != nil {
		profile.MXRecords = mx
	}
	if txt != nil {
		profile.TXTRecords = txt
	}
	for _, r := range profile.TXTRecords {
		if strings.Contains(r, model.SPFMarker) {
			profile.SPFRecord = r
			profile.HasSPF = true
			break
		}
	}
	for _, r := range dmarc {
		if strings.Contains(r, model.DMARCMarker) {
			profile.DMARCRecord = r
			profile.HasDMARC = true
			break
		}
	}

	a.logger.Debug("domain analyzed",
		"domain", domain,
		"mx", len(profile.MXRecords),
		"spf", profile.HasSPF,
		"dmarc", profile.HasDMARC,
		"whois_ok", whoisErr == nil,
	)
	return profile
}

// lookupWhois queries the registrable domain, since WHOIS servers only know
// about registrations and mail often comes from a subdomain.
func (a *Analyzer) lookupWhois(ctx context.Context, domain string) (WhoisRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		registrable = domain
	}

	rec, err := a.whois.Lookup(ctx, registrable)
	if err != nil {
		a.logger.Debug("whois lookup failed", "domain", registrable, "error", err)
		return WhoisRecord{}, err
	}
	return rec, nil
}

func (a *Analyzer) lookupDNS(ctx context.Context, name string, rrtype uint16) []string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	records, err := a.resolver.Lookup(ctx, name, rrtype)
	if err != nil {
		a.logger.Debug("dns lookup failed",
			"name", name,
			"type", dns.TypeToString[rrtype],
			"error", err,
		)
		return nil
	}
	return records
}
