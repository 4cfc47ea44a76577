package synthesizer

import (
	"strings"

	"github.com/weirlive/panw-object/internal/panos"
)

// GroupName builds {ZONE}_ADG_{SUFFIX}, upper-cased. An empty suffix leaves
// the trailing underscore in place.
func (s *Synthesizer) GroupName(zone, suffix string) string {
	return strings.ToUpper(strings.TrimSpace(zone) + "_ADG_" + s.sanitize(strings.TrimSpace(suffix)))
}

// groupSection collects every emitted object into one static group.
// Members keep emission order and are not de-duplicated.
func (s *Synthesizer) groupSection(b *batch) []string {
	suffix := strings.TrimSpace(b.req.Group.Suffix)
	name := s.GroupName(b.zone, suffix)

	description := suffix
	if description == "" {
		description = "Address group for " + b.zone
	}

	lines := []string{
		panos.Comment("Address Group Configuration"),
		panos.GroupStatic(name, b.members),
		panos.GroupDescription(name, description),
	}
	if s.policy.TagGroups {
		if tag := b.req.EffectiveGroupTag(); tag != "" {
			lines = append(lines, panos.GroupTag(name, tag))
		}
	}
	return lines
}
