package domain

import "strings"

// Operation selects which directives are produced for each entry.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationRename Operation = "rename"
	OperationDelete Operation = "delete"
)

// ParseOperation maps user input to an Operation. Matching is case-insensitive.
func ParseOperation(s string) (Operation, bool) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(s))); op {
	case OperationCreate, OperationRename, OperationDelete:
		return op, true
	}
	return "", false
}

// ObjectType is the naming-convention type code of an address object.
type ObjectType string

const (
	TypeHost   ObjectType = "HST"
	TypeSubnet ObjectType = "SBN"
	TypeRange  ObjectType = "ADR"
	TypeFQDN   ObjectType = "FQDN"
	// TypeAuto classifies every entry by its shape.
	TypeAuto ObjectType = "AUTO"
)

// ParseObjectType maps user input to an ObjectType. Both the type codes and
// the long names (host, subnet, range, fqdn, auto) are accepted.
func ParseObjectType(s string) (ObjectType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hst", "host":
		return TypeHost, true
	case "sbn", "subnet":
		return TypeSubnet, true
	case "adr", "range", "address-range":
		return TypeRange, true
	case "fqdn", "domain":
		return TypeFQDN, true
	case "auto", "":
		return TypeAuto, true
	}
	return "", false
}

// GroupSpec requests that every emitted object be collected into one
// static address group.
type GroupSpec struct {
	Suffix     string `json:"suffix,omitempty" yaml:"suffix" toml:"suffix"`
	Tag        string `json:"tag,omitempty" yaml:"tag" toml:"tag" validate:"max=127"`
	DeclareTag bool   `json:"declare_tag,omitempty" yaml:"declare_tag" toml:"declare_tag"`
}

// Request is one generation submission.
type Request struct {
	Zone        string     `json:"zone" yaml:"zone" toml:"zone" validate:"required_unless=Operation delete,max=63"`
	Operation   Operation  `json:"operation" yaml:"operation" toml:"operation" validate:"required,oneof=create rename delete"`
	ObjectType  ObjectType `json:"object_type,omitempty" yaml:"object_type" toml:"object_type" validate:"omitempty,oneof=HST SBN ADR FQDN AUTO"`
	Tag         string     `json:"tag,omitempty" yaml:"tag" toml:"tag" validate:"max=127"`
	Description string     `json:"description,omitempty" yaml:"description" toml:"description" validate:"max=1023"`
	DeclareTag  bool       `json:"declare_tag,omitempty" yaml:"declare_tag" toml:"declare_tag"`
	Group       *GroupSpec `json:"group,omitempty" yaml:"group" toml:"group"`
	Entries     []string   `json:"entries" yaml:"entries" toml:"entries" validate:"required,entries"`
}

// ZoneName returns the trimmed zone name.
func (r *Request) ZoneName() string {
	return strings.TrimSpace(r.Zone)
}

// EffectiveTag is the tag attached to each object: the explicit tag, or the
// zone name when no tag was given.
func (r *Request) EffectiveTag() string {
	if tag := strings.TrimSpace(r.Tag); tag != "" {
		return tag
	}
	return r.ZoneName()
}

// EffectiveGroupTag is the tag attached to the address group. It falls back
// to the zone name like EffectiveTag does.
func (r *Request) EffectiveGroupTag() string {
	if r.Group != nil {
		if tag := strings.TrimSpace(r.Group.Tag); tag != "" {
			return tag
		}
	}
	return r.ZoneName()
}
