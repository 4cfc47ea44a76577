package synthesizer

import (
	"strings"

	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/panos"
)

// create emits the definition, description and tag of one new object.
func (s *Synthesizer) create(b *batch, entry string) {
	typ := b.req.ObjectType
	if typ == "" || typ == domain.TypeAuto {
		var ok bool
		if typ, ok = s.Classify(entry); !ok {
			b.skip(domain.OperationCreate, "cannot classify entry", entry)
			return
		}
	}

	var kind, value string
	switch typ {
	case domain.TypeHost:
		kind, value = panos.KindNetmask, entry
		if !strings.Contains(value, "/") {
			value += "/32"
		}
	case domain.TypeSubnet:
		kind, value = panos.KindNetmask, entry
	case domain.TypeRange:
		kind, value = panos.KindRange, entry
	case domain.TypeFQDN:
		kind, value = panos.KindFQDN, entry
	default:
		b.skip(domain.OperationCreate, "unsupported object type "+string(typ), entry)
		return
	}

	suffix := s.sanitize(entry)
	if suffix == "" {
		b.skip(domain.OperationCreate, "empty name suffix after sanitization", entry)
		return
	}

	name := ObjectName(b.zone, string(typ), suffix)
	b.emit(panos.SetAddress(name, kind, value))
	s.describe(b, name, entry)
}

// rename emits the rename of an existing object to the naming convention,
// followed by its description and tag.
func (s *Synthesizer) rename(b *batch, entry string) {
	source := entry
	if s.policy.RenameFrom == RenameFromLastSegment {
		i := strings.LastIndex(entry, "_")
		if i == -1 {
			b.skip(domain.OperationRename, "malformed entry (expected OriginalName_Suffix)", entry)
			return
		}
		source = entry[i+1:]
	}

	suffix := s.sanitize(source)
	if suffix == "" {
		b.skip(domain.OperationRename, "empty name suffix after sanitization", entry)
		return
	}

	name := ObjectName(b.zone, s.policy.RenameType, suffix)
	b.emit(panos.RenameAddress(entry, name))
	s.describe(b, name, entry)
}

// describe finishes an object block: description, optional tag, separator.
// The object is recorded as a group member.
func (s *Synthesizer) describe(b *batch, name, entry string) {
	description := strings.TrimSpace(b.req.Description)
	if description == "" {
		description = entry
	}
	b.emit(panos.AddressDescription(name, description))
	if tag := b.req.EffectiveTag(); tag != "" {
		b.emit(panos.AddressTag(name, tag))
	}
	b.emit("")
	b.members = append(b.members, name)
}
