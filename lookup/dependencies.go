package lookup

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// DependencyStatus represents the status of a single external dependency
type DependencyStatus struct {
	Name        string `json:"name" yaml:"name"`
	Available   bool   `json:"available" yaml:"available"`
	Detail      string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description" yaml:"description"`
	InstallHint string `json:"install_hint,omitempty" yaml:"install_hint,omitempty"`
}

// DependencyChecker checks the services and tools the lookups rely on
type DependencyChecker struct {
	lookups *Lookups
	timeout time.Duration
	results map[string]*DependencyStatus
}

// NewDependencyChecker creates a checker for the given lookup set
func NewDependencyChecker(l *Lookups) *DependencyChecker {
	return &DependencyChecker{
		lookups: l,
		timeout: 3 * time.Second,
		results: make(map[string]*DependencyStatus),
	}
}

// CheckAll checks all dependencies and returns their statuses in a fixed order
func (dc *DependencyChecker) CheckAll(ctx context.Context) []*DependencyStatus {
	dc.checkBrowser()
	dc.checkIPAPI(ctx)
	dc.checkResolver(ctx)
	return []*DependencyStatus{dc.results["browser"], dc.results["ipapi"], dc.results["resolver"]}
}

// Missing returns the dependencies found unavailable by the last check
func (dc *DependencyChecker) Missing() []*DependencyStatus {
	var missing []*DependencyStatus
	for _, key := range []string{"browser", "ipapi", "resolver"} {
		if s := dc.results[key]; s != nil && !s.Available {
			missing = append(missing, s)
		}
	}
	return missing
}

// BrowserCommand returns the platform command that opens rawURL
func BrowserCommand(rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}

// checkBrowser checks that the URL opener used by dorks exists
func (dc *DependencyChecker) checkBrowser() {
	status := &DependencyStatus{
		Name:        "Browser opener",
		Description: "Opens dork searches in the default browser",
		InstallHint: browserInstallHint(),
	}

	name := BrowserCommand("").Args[0]
	if path, err := exec.LookPath(name); err == nil {
		status.Available = true
		status.Detail = path
	}

	dc.results["browser"] = status
}

// checkIPAPI checks that the geolocation endpoint answers
func (dc *DependencyChecker) checkIPAPI(ctx context.Context) {
	base := strings.TrimRight(dc.lookups.opts.IPAPIBaseURL, "/")
	status := &DependencyStatus{
		Name:        "Geolocation API",
		Required:    true,
		Description: "IP lookups (" + base + ")",
		InstallHint: "Check network access or set ip_api_base_url",
	}

	ctx, cancel := context.WithTimeout(ctx, dc.timeout)
	defer cancel()

	resp, err := dc.lookups.get(ctx, base+"/json/")
	if err != nil {
		status.Detail = err.Error()
	} else {
		drain(resp.Body)
		status.Available = true
		status.Detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	dc.results["ipapi"] = status
}

// checkResolver checks that the DNS server answers a root NS query
func (dc *DependencyChecker) checkResolver(ctx context.Context) {
	addr := dc.lookups.resolverAddr()
	status := &DependencyStatus{
		Name:        "DNS resolver",
		Required:    true,
		Description: "Domain lookups (" + addr + ")",
		InstallHint: "Check network access or set resolver",
	}

	ctx, cancel := context.WithTimeout(ctx, dc.timeout)
	defer cancel()

	client := &dns.Client{Timeout: dc.timeout}
	msg := new(dns.Msg)
	msg.SetQuestion(".", dns.TypeNS)
	msg.RecursionDesired = true

	in, rtt, err := client.ExchangeContext(ctx, msg, addr)
	if err != nil {
		status.Detail = err.Error()
	} else {
		status.Available = true
		status.Detail = fmt.Sprintf("%s in %s", dns.RcodeToString[in.Rcode], rtt.Round(time.Millisecond))
	}

	dc.results["resolver"] = status
}

// browserInstallHint returns platform-specific install instructions
func browserInstallHint() string {
	switch runtime.GOOS {
	case "linux":
		return "sudo apt install xdg-utils"
	default:
		return "Install a default web browser"
	}
}
