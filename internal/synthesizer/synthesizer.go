// Package synthesizer turns a generation request into an ordered batch of
// address-object directives.
//
// Synthesis is pure: the same request under the same policy always yields the
// same lines. Malformed entries never fail the run; each one is replaced by
// a single skip comment and processing continues with the next entry.
package synthesizer

import (
	"strings"

	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/panos"
)

// Synthesizer generates directives under a fixed policy. It holds no
// per-call state and is safe for concurrent use.
type Synthesizer struct {
	policy Policy
}

// New creates a new Synthesizer.
func New(policy Policy) *Synthesizer {
	return &Synthesizer{policy: policy}
}

// Policy returns the policy the synthesizer was built with.
func (s *Synthesizer) Policy() Policy {
	return s.policy
}

// batch accumulates the output of one Synthesize call.
type batch struct {
	req     *domain.Request
	zone    string
	lines   []string
	members []string
}

func (b *batch) emit(lines ...string) {
	b.lines = append(b.lines, lines...)
}

func (b *batch) skip(op domain.Operation, reason, entry string) {
	b.emit(panos.Comment("Skipping " + strings.ToUpper(string(op)) + ": " + reason + ": " + entry))
}

// Synthesize generates the directives for req.
func (s *Synthesizer) Synthesize(req domain.Request) domain.Result {
	entries := nonBlank(req.Entries)
	if len(entries) == 0 {
		return nothing("no entries supplied")
	}

	b := &batch{req: &req, zone: req.ZoneName()}

	switch req.Operation {
	case domain.OperationDelete:
		for _, entry := range entries {
			b.emit(panos.DeleteAddress(entry))
		}
		return domain.Result{Lines: b.lines}
	case domain.OperationCreate, domain.OperationRename:
	default:
		return nothing("unknown operation " + string(req.Operation))
	}

	if b.zone == "" {
		return nothing("zone name is required")
	}

	if req.Operation == domain.OperationCreate {
		b.emit(s.tagDeclarations(&req)...)
	}

	for _, entry := range entries {
		if req.Operation == domain.OperationCreate {
			s.create(b, entry)
		} else {
			s.rename(b, entry)
		}
	}

	if req.Group != nil && len(b.members) > 0 {
		b.emit(s.groupSection(b)...)
	}

	return domain.Result{Lines: b.lines}
}

// nonBlank trims every entry and drops the blank ones, keeping order.
func nonBlank(raw []string) []string {
	entries := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

func nothing(reason string) domain.Result {
	return domain.Result{Lines: []string{panos.Comment("Nothing to generate: " + reason)}}
}
