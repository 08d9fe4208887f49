package lookup

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/miekg/dns"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

const fallbackResolver = "8.8.8.8:53"

// WhoisClient queries a WHOIS server for raw registration data
type WhoisClient interface {
	Whois(domain string, servers ...string) (string, error)
}

func newWhoisClient(timeout time.Duration) WhoisClient {
	return whois.NewClient().SetTimeout(timeout)
}

// DomainRecord holds resolution and registration data for a domain
type DomainRecord struct {
	Domain      string
	Registrable string
	IPv4        []string
	IPv6        []string
	Registrar   string
	Created     string
	Expires     string
	NameServers []string
}

// Render formats the record for the result area
func (d *DomainRecord) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "IP: %s\n", orNA(strings.Join(d.IPv4, ", ")))
	if len(d.IPv6) > 0 {
		fmt.Fprintf(&b, "IPv6: %s\n", strings.Join(d.IPv6, ", "))
	}
	registrar := d.Registrar
	if registrar == "" {
		registrar = "Unknown"
	}
	fmt.Fprintf(&b, "Registrar: %s\n", registrar)
	fmt.Fprintf(&b, "Created: %s\n", orNA(d.Created))
	fmt.Fprintf(&b, "Expires: %s\n", orNA(d.Expires))
	fmt.Fprintf(&b, "Name Servers: %s", orNA(strings.Join(d.NameServers, ", ")))
	return b.String()
}

// NormalizeDomain strips scheme, path and port from input, converts it to
// its ASCII form and validates the result
func NormalizeDomain(input string) (string, error) {
	d := strings.TrimSpace(strings.ToLower(input))
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if host, _, err := net.SplitHostPort(d); err == nil {
		d = host
	}
	d = strings.TrimSuffix(d, ".")

	if d == "" {
		return "", ErrEmptyInput
	}

	ascii, err := idna.Lookup.ToASCII(d)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}

	if strings.HasPrefix(ascii, "-") || strings.HasSuffix(ascii, "-") {
		return "", fmt.Errorf("%w: cannot start or end with hyphen", ErrInvalidDomain)
	}
	if strings.HasPrefix(ascii, ".") || !strings.Contains(ascii, ".") {
		return "", fmt.Errorf("%w: %q is not a fully qualified name", ErrInvalidDomain, input)
	}
	if len(ascii) > 253 {
		return "", fmt.Errorf("%w: exceeds maximum length (253)", ErrInvalidDomain)
	}
	if net.ParseIP(ascii) != nil {
		return "", fmt.Errorf("%w: %q is an IP address", ErrInvalidDomain, input)
	}

	return ascii, nil
}

// resolverAddr returns the DNS server used for resolution
func (l *Lookups) resolverAddr() string {
	if l.opts.Resolver != "" {
		return l.opts.Resolver
	}
	if runtime.GOOS != "windows" {
		if cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(cfg.Servers) > 0 {
			return net.JoinHostPort(cfg.Servers[0], cfg.Port)
		}
	}
	return fallbackResolver
}

// Resolve returns the addresses of the given record type (A or AAAA)
func (l *Lookups) Resolve(ctx context.Context, domain string, qtype uint16) ([]string, error) {
	client := &dns.Client{Timeout: l.opts.DNSTimeout}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	in, _, err := client.ExchangeContext(ctx, msg, l.resolverAddr())
	if err != nil {
		return nil, fmt.Errorf("dns query failed: %w", err)
	}
	if in.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("dns query for %s returned %s", domain, dns.RcodeToString[in.Rcode])
	}

	var addrs []string
	for _, rr := range in.Answer {
		switch rec := rr.(type) {
		case *dns.A:
			addrs = append(addrs, rec.A.String())
		case *dns.AAAA:
			addrs = append(addrs, rec.AAAA.String())
		}
	}
	return addrs, nil
}

// whois runs the blocking WHOIS query and gives up when ctx is done. The
// abandoned query ends on its own timeout.
func (l *Lookups) whois(ctx context.Context, domain string) (string, error) {
	type reply struct {
		raw string
		err error
	}
	ch := make(chan reply, 1)
	go func() {
		raw, err := l.opts.Whois.Whois(domain)
		ch <- reply{raw, err}
	}()

	select {
	case r := <-ch:
		return r.raw, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// LookupDomain resolves the domain and fetches its registration data
func (l *Lookups) LookupDomain(ctx context.Context, input string) (*DomainRecord, error) {
	domain, err := NormalizeDomain(input)
	if err != nil {
		return nil, err
	}

	rec := &DomainRecord{Domain: domain, Registrable: domain}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
		rec.Registrable = etld1
	}

	rec.IPv4, err = l.Resolve(ctx, domain, dns.TypeA)
	if err != nil {
		return nil, err
	}
	// AAAA is informational only
	rec.IPv6, _ = l.Resolve(ctx, domain, dns.TypeAAAA)
	if len(rec.IPv4) == 0 && len(rec.IPv6) == 0 {
		return nil, fmt.Errorf("no addresses found for %s", domain)
	}

	raw, err := l.whois(ctx, rec.Registrable)
	if err != nil {
		return nil, fmt.Errorf("whois query failed: %w", err)
	}

	if info, err := whoisparser.Parse(raw); err == nil {
		if info.Registrar != nil {
			rec.Registrar = info.Registrar.Name
		}
		if info.Domain != nil {
			rec.Created = info.Domain.CreatedDate
			rec.Expires = info.Domain.ExpirationDate
			rec.NameServers = info.Domain.NameServers
		}
	}

	return rec, nil
}

// Domain is the DNS/WHOIS lookup function
func (l *Lookups) Domain(ctx context.Context, input string) Result {
	rec, err := l.LookupDomain(ctx, input)
	if err != nil {
		return Failed(err)
	}
	return Success(rec.Render())
}
