package web

import (
	"net/http"
	"strings"

	"github.com/weirlive/panw-object/internal/batch"
	"github.com/weirlive/panw-object/internal/domain"
)

// FormValues mirrors the fields of the generator form.
type FormValues struct {
	Zone            string
	Tag             string
	Description     string
	Operation       string
	ObjectType      string
	DeclareTag      bool
	Group           bool
	GroupSuffix     string
	GroupTag        string
	DeclareGroupTag bool
	Entries         string
}

// Option is one choice in a select box.
type Option struct {
	Value string
	Label string
}

var operationOptions = []Option{
	{string(domain.OperationCreate), "Create new objects"},
	{string(domain.OperationRename), "Rename existing objects"},
	{string(domain.OperationDelete), "Delete objects"},
}

var objectTypeOptions = []Option{
	{string(domain.TypeAuto), "Auto-detect"},
	{string(domain.TypeHost), "Host (HST)"},
	{string(domain.TypeSubnet), "Subnet (SBN)"},
	{string(domain.TypeRange), "IP Range (ADR)"},
	{string(domain.TypeFQDN), "FQDN"},
}

var placeholders = map[string]string{
	string(domain.OperationCreate): `# Examples (one actual value per line):
# 192.168.1.10 (for Host)
# 10.10.0.0/16 (for Subnet)
# 172.16.1.5-172.16.1.20 (for Address Range)
# google.com (for FQDN)
#
# Paste one value per line.
# This value will be used for the object and its description.`,
	string(domain.OperationRename): `# Examples (OriginalObjectName_SuffixForNewName):
# MyServer_192.168.1.10
# CorpNet_10.10.0.0/16
#
# Paste one entry per line.
# The SuffixForNewName part is used to construct the new object name.`,
	string(domain.OperationDelete): `# Examples (one existing object name per line):
# DMZ_HST_192.168.1.10
# DMZ_SBN_10.10.0.0/16`,
}

func defaultForm() FormValues {
	return FormValues{
		Operation:  string(domain.OperationCreate),
		ObjectType: string(domain.TypeAuto),
	}
}

// readForm reads the submitted form. Unknown select values are kept as
// typed so validation can report them.
func readForm(r *http.Request) FormValues {
	checked := func(name string) bool {
		v := r.PostFormValue(name)
		return v != "" && v != "0" && v != "false"
	}

	f := FormValues{
		Zone:            r.PostFormValue("zone"),
		Tag:             r.PostFormValue("tag"),
		Description:     r.PostFormValue("description"),
		Operation:       r.PostFormValue("operation"),
		ObjectType:      r.PostFormValue("object_type"),
		DeclareTag:      checked("declare_tag"),
		Group:           checked("group"),
		GroupSuffix:     r.PostFormValue("group_suffix"),
		GroupTag:        r.PostFormValue("group_tag"),
		DeclareGroupTag: checked("declare_group_tag"),
		Entries:         r.PostFormValue("entries"),
	}
	if op, ok := domain.ParseOperation(f.Operation); ok {
		f.Operation = string(op)
	}
	if typ, ok := domain.ParseObjectType(f.ObjectType); ok {
		f.ObjectType = string(typ)
	}
	return f
}

// Request converts the form to a generation request.
func (f FormValues) Request() domain.Request {
	req := domain.Request{
		Zone:        f.Zone,
		Operation:   domain.Operation(f.Operation),
		ObjectType:  domain.ObjectType(f.ObjectType),
		Tag:         f.Tag,
		Description: f.Description,
		DeclareTag:  f.DeclareTag,
		Entries:     batch.SplitEntries(f.Entries),
	}
	if f.Group {
		req.Group = &domain.GroupSpec{
			Suffix:     f.GroupSuffix,
			Tag:        f.GroupTag,
			DeclareTag: f.DeclareGroupTag,
		}
	}
	return req
}

func placeholderFor(operation string) string {
	if p, ok := placeholders[strings.ToLower(operation)]; ok {
		return p
	}
	return placeholders[string(domain.OperationCreate)]
}
