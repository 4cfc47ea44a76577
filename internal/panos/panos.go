// Package panos renders PAN-OS configuration-mode directives for address
// objects, address groups and tags.
//
// Every directive is produced from a fixed template so the grammar lives in
// one place. Callers pass already-constructed names; this package only
// quotes values where the CLI requires it.
package panos

import (
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	tmplTag              = "set tag {{tag}}"
	tmplAddressValue     = "set address {{name}} {{kind}} {{value}}"
	tmplAddressDesc      = `set address {{name}} description "{{text}}"`
	tmplAddressTag       = "set address {{name}} tag [ {{tag}} ]"
	tmplRenameAddress    = "rename address {{old}} to {{new}}"
	tmplDeleteAddress    = "delete address {{name}}"
	tmplGroupStatic      = "set address-group {{name}} static [ {{members}} ]"
	tmplGroupDescription = `set address-group {{name}} description "{{text}}"`
	tmplGroupTag         = "set address-group {{name}} tag [ {{tag}} ]"
	tmplComment          = "# {{text}}"
)

// Value kinds accepted by `set address`.
const (
	KindNetmask = "ip-netmask"
	KindRange   = "ip-range"
	KindFQDN    = "fqdn"
)

var templates = map[string]*fasttemplate.Template{}

func init() {
	for _, t := range []string{
		tmplTag, tmplAddressValue, tmplAddressDesc, tmplAddressTag,
		tmplRenameAddress, tmplDeleteAddress, tmplGroupStatic,
		tmplGroupDescription, tmplGroupTag, tmplComment,
	} {
		templates[t] = fasttemplate.New(t, "{{", "}}")
	}
}

func render(tmpl string, values map[string]interface{}) string {
	return templates[tmpl].ExecuteString(values)
}

// SetTag declares a tag.
func SetTag(tag string) string {
	return render(tmplTag, map[string]interface{}{"tag": quoteTag(tag)})
}

// SetAddress defines an address object value of the given kind.
func SetAddress(name, kind, value string) string {
	return render(tmplAddressValue, map[string]interface{}{"name": name, "kind": kind, "value": value})
}

// AddressDescription sets an address object's description.
func AddressDescription(name, text string) string {
	return render(tmplAddressDesc, map[string]interface{}{"name": name, "text": escapeQuotes(text)})
}

// AddressTag attaches a tag to an address object.
func AddressTag(name, tag string) string {
	return render(tmplAddressTag, map[string]interface{}{"name": name, "tag": quoteTag(tag)})
}

// RenameAddress renames an existing address object.
func RenameAddress(oldName, newName string) string {
	return render(tmplRenameAddress, map[string]interface{}{"old": oldName, "new": newName})
}

// DeleteAddress removes an address object by name.
func DeleteAddress(name string) string {
	return render(tmplDeleteAddress, map[string]interface{}{"name": name})
}

// GroupStatic defines a static address group with the members in order.
func GroupStatic(name string, members []string) string {
	return render(tmplGroupStatic, map[string]interface{}{"name": name, "members": strings.Join(members, " ")})
}

// GroupDescription sets an address group's description.
func GroupDescription(name, text string) string {
	return render(tmplGroupDescription, map[string]interface{}{"name": name, "text": escapeQuotes(text)})
}

// GroupTag attaches a tag to an address group.
func GroupTag(name, tag string) string {
	return render(tmplGroupTag, map[string]interface{}{"name": name, "tag": quoteTag(tag)})
}

// Comment renders a comment line. Comments are never sent to the device.
func Comment(text string) string {
	return render(tmplComment, map[string]interface{}{"text": text})
}

// escapeQuotes keeps a description inside its double quotes.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// quoteTag wraps tags containing whitespace, which the CLI would otherwise
// split into several tags.
func quoteTag(tag string) string {
	if strings.ContainsAny(tag, " \t") {
		return `"` + escapeQuotes(tag) + `"`
	}
	return tag
}
