package synthesizer

import (
	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/panos"
)

// tagDeclarations returns the tag-definition preamble: one `set tag` per
// distinct tag that was requested with "create if missing".
func (s *Synthesizer) tagDeclarations(req *domain.Request) []string {
	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	if req.DeclareTag {
		add(req.EffectiveTag())
	}
	if req.Group != nil && req.Group.DeclareTag && s.policy.TagGroups {
		add(req.EffectiveGroupTag())
	}

	if len(tags) == 0 {
		return nil
	}

	lines := []string{panos.Comment("Tag Definitions")}
	for _, tag := range tags {
		lines = append(lines, panos.SetTag(tag))
	}
	return append(lines, "")
}
