package synthesizer

import (
	"regexp"
	"strings"

	"github.com/miekg/dns"
	"github.com/weirlive/panw-object/internal/domain"
)

// Octet values are not range-checked: 999.1.1.1 is still a host.
var rxDottedQuad = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

var rxLabel = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_-]{0,61}[A-Za-z0-9_])?$`)

// Classify detects the object type of a raw entry from its shape. The second
// return value is false only when StrictFQDN is set and the entry falls
// through to FQDN without looking like a domain name.
func (s *Synthesizer) Classify(entry string) (domain.ObjectType, bool) {
	entry = strings.TrimSpace(entry)

	hasRange := strings.Contains(entry, "-")
	hasSlash := strings.Contains(entry, "/")

	switch s.policy.Detection {
	case DetectSubnetFirst:
		if hasSlash {
			return domain.TypeSubnet, true
		}
		if hasRange {
			return domain.TypeRange, true
		}
	default:
		if hasRange {
			return domain.TypeRange, true
		}
		if hasSlash {
			return domain.TypeSubnet, true
		}
	}

	if rxDottedQuad.MatchString(entry) {
		return domain.TypeHost, true
	}

	if s.policy.StrictFQDN && !isDomainName(entry) {
		return "", false
	}
	return domain.TypeFQDN, true
}

// isDomainName requires at least two labels made of letters, digits,
// hyphens and underscores.
func isDomainName(s string) bool {
	if _, ok := dns.IsDomainName(s); !ok {
		return false
	}
	labels := dns.SplitDomainName(s)
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !rxLabel.MatchString(label) {
			return false
		}
	}
	return true
}
