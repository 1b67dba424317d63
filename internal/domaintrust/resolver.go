package domaintrust

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/nao1215/mailsleuth/internal/model"
)

// DefaultDNSTimeout bounds one DNS exchange.
const DefaultDNSTimeout = 5 * time.Second

// fallbackServer is used when /etc/resolv.conf is unavailable.
const fallbackServer = "8.8.8.8:53"

// ednsBufferSize is the UDP payload size advertised with EDNS0. TXT sets of
// large providers rarely fit in the classic 512 bytes.
const ednsBufferSize = 4096

// Resolver answers DNS questions. For TypeMX the answer is the exchange
// hosts ordered by preference; for TypeTXT each element is one record with
// its character strings joined.
type Resolver interface {
	Lookup(ctx context.Context, name string, rrtype uint16) ([]string, error)
}

// DNSResolver is the Resolver backed by github.com/miekg/dns. Queries go out
// over UDP with EDNS0 and are repeated over TCP when the answer is truncated.
type DNSResolver struct {
	client    *dns.Client
	tcpClient *dns.Client
	servers   []string
}

// ResolverOption configures a DNSResolver.
type ResolverOption func(*DNSResolver)

// WithServers sets the name servers to query, as host or host:port.
func WithServers(servers ...string) ResolverOption {
	return func(r *DNSResolver) {
		var out []string
		for _, s := range servers {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			if _, _, err := net.SplitHostPort(s); err != nil {
				s = net.JoinHostPort(s, "53")
			}
			out = append(out, s)
		}
		if len(out) > 0 {
			r.servers = out
		}
	}
}

// WithDNSTimeout sets the exchange timeout.
func WithDNSTimeout(d time.Duration) ResolverOption {
	return func(r *DNSResolver) {
		if d > 0 {
			r.client.Timeout = d
			r.tcpClient.Timeout = d
		}
	}
}

// NewDNSResolver creates a resolver that uses the system name servers unless
// WithServers is given.
func NewDNSResolver(opts ...ResolverOption) *DNSResolver {
	r := &DNSResolver{
		client:    &dns.Client{Net: "udp", Timeout: DefaultDNSTimeout},
		tcpClient: &dns.Client{Net: "tcp", Timeout: DefaultDNSTimeout},
		servers:   systemServers(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func systemServers() []string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return []string{fallbackServer}
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, net.JoinHostPort(s, conf.Port))
	}
	return servers
}

// errNoAnswer is returned when every server failed.
var errNoAnswer = errors.New("no name server answered")

// Lookup implements Resolver. Servers are tried in order until one answers.
// NXDOMAIN and empty answers are not errors.
func (r *DNSResolver) Lookup(ctx context.Context, name string, rrtype uint16) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), rrtype)
	msg.RecursionDesired = true
	msg.SetEdns0(ednsBufferSize, false)

	lastErr := errNoAnswer
	for _, server := range r.servers {
		in, err := r.exchange(ctx, msg, server)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		switch in.Rcode {
		case dns.RcodeSuccess, dns.RcodeNameError:
			return answers(in, rrtype), nil
		default:
			lastErr = fmt.Errorf("rcode %s", dns.RcodeToString[in.Rcode])
		}
	}
	return nil, fmt.Errorf("%w: %s %s: %w", model.ErrLookup, dns.TypeToString[rrtype], name, lastErr)
}

// exchange queries server over UDP and falls back to TCP on truncation.
func (r *DNSResolver) exchange(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
	in, _, err := r.client.ExchangeContext(ctx, msg, server)
	if in == nil || !in.Truncated {
		return in, err
	}
	in, _, err = r.tcpClient.ExchangeContext(ctx, msg, server)
	return in, err
}

func answers(in *dns.Msg, rrtype uint16) []string {
	out := []string{}
	switch rrtype {
	case dns.TypeMX:
		var mxs []*dns.MX
		for _, rr := range in.Answer {
			if mx, ok := rr.(*dns.MX); ok {
				mxs = append(mxs, mx)
			}
		}
		sort.SliceStable(mxs, func(i, j int) bool {
			return mxs[i].Preference < mxs[j].Preference
		})
		for _, mx := range mxs {
			out = append(out, strings.TrimSuffix(mx.Mx, "."))
		}
	case dns.TypeTXT:
		for _, rr := range in.Answer {
			if txt, ok := rr.(*dns.TXT); ok {
				out = append(out, strings.Join(txt.Txt, ""))
			}
		}
	default:
		for _, rr := range in.Answer {
			if rr.Header().Rrtype == rrtype {
				out = append(out, strings.TrimPrefix(rr.String(), rr.Header().String()))
			}
		}
	}
	return out
}
