package synthesizer

import (
	"fmt"
	"strings"
)

// SanitizeMode selects how an entry is reduced to a name-safe suffix.
type SanitizeMode string

const (
	// SanitizePreserveDots keeps dots, so IPs and FQDNs stay readable in
	// object names (DMZ_HST_1.1.1.1).
	SanitizePreserveDots SanitizeMode = "preserve-dots"
	// SanitizeReplaceDots also turns dots into underscores (DMZ_HST_1_1_1_1).
	SanitizeReplaceDots SanitizeMode = "replace-dots"
)

// DetectionOrder is the precedence of shape checks used in auto mode.
type DetectionOrder string

const (
	// DetectRangeFirst checks '-', then '/', then dotted quad, else FQDN.
	DetectRangeFirst DetectionOrder = "range-first"
	// DetectSubnetFirst checks '/', then '-', then dotted quad, else FQDN.
	DetectSubnetFirst DetectionOrder = "subnet-first"
)

// RenameSource selects which part of an existing object name becomes the
// suffix of its new name.
type RenameSource string

const (
	// RenameFromName uses the whole original name.
	RenameFromName RenameSource = "name"
	// RenameFromLastSegment uses the text after the last underscore, so
	// "MyServer_192.168.1.10" becomes ZONE_OBJ_192.168.1.10.
	RenameFromLastSegment RenameSource = "last-segment"
)

// DefaultRenameType is the type code used for renamed objects, whose real
// type cannot be inferred from a bare name.
const DefaultRenameType = "OBJ"

// Policy holds the naming choices that differ between deployments.
type Policy struct {
	Sanitize   SanitizeMode   `json:"sanitize"`
	Detection  DetectionOrder `json:"detection"`
	RenameType string         `json:"rename_type"`
	RenameFrom RenameSource   `json:"rename_from"`
	TagGroups  bool           `json:"tag_groups"`
	StrictFQDN bool           `json:"strict_fqdn"`
}

// DefaultPolicy returns the canonical policy.
func DefaultPolicy() Policy {
	return Policy{
		Sanitize:   SanitizePreserveDots,
		Detection:  DetectRangeFirst,
		RenameType: DefaultRenameType,
		RenameFrom: RenameFromName,
		TagGroups:  true,
	}
}

// Validate checks that every named choice is known.
func (p Policy) Validate() error {
	switch p.Sanitize {
	case SanitizePreserveDots, SanitizeReplaceDots:
	default:
		return fmt.Errorf("unknown sanitize mode %q", p.Sanitize)
	}
	switch p.Detection {
	case DetectRangeFirst, DetectSubnetFirst:
	default:
		return fmt.Errorf("unknown detection order %q", p.Detection)
	}
	switch p.RenameFrom {
	case RenameFromName, RenameFromLastSegment:
	default:
		return fmt.Errorf("unknown rename source %q", p.RenameFrom)
	}
	if strings.TrimSpace(p.RenameType) == "" {
		return fmt.Errorf("rename type must not be empty")
	}
	return nil
}
